// Package testutils provides shared fixtures for package tests.
package testutils

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/Black-And-White-Club/trip-scorer/config"
	"github.com/Black-And-White-Club/trip-scorer/db/bundb"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// NewTestDB opens a migrated in-memory sqlite store closed at test cleanup.
func NewTestDB(t testing.TB) *bun.DB {
	t.Helper()

	ctx := context.Background()
	db, err := bundb.Open(ctx, config.DatabaseConfig{Driver: bundb.DriverSQLite, DSN: "file::memory:"})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := bundb.MigrateAll(ctx, db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// RecordingPublisher is a message.Publisher that keeps every message.
type RecordingPublisher struct {
	mu       sync.Mutex
	messages map[string][]*message.Message
	Err      error
}

var _ message.Publisher = (*RecordingPublisher)(nil)

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{messages: make(map[string][]*message.Message)}
}

func (p *RecordingPublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.messages[topic] = append(p.messages[topic], messages...)
	return nil
}

func (p *RecordingPublisher) Close() error { return nil }

// Messages returns the messages published to topic.
func (p *RecordingPublisher) Messages(topic string) []*message.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*message.Message(nil), p.messages[topic]...)
}

// Count returns the number of messages published to topic.
func (p *RecordingPublisher) Count(topic string) int {
	return len(p.Messages(topic))
}

// DecodeLast unmarshals the most recent message on topic into dst.
func (p *RecordingPublisher) DecodeLast(t testing.TB, topic string, dst any) {
	t.Helper()
	msgs := p.Messages(topic)
	if len(msgs) == 0 {
		t.Fatalf("no messages published to %s", topic)
	}
	if err := json.Unmarshal(msgs[len(msgs)-1].Payload, dst); err != nil {
		t.Fatalf("decode %s payload: %v", topic, err)
	}
}
