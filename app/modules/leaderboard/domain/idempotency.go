package leaderboarddomain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"time"
)

// RoundVersion identifies one state of a round's raw data. Every score or
// achievement write moves UpdatedAt, so two equal versions always produce
// the same points.
type RoundVersion struct {
	RoundID   string
	UpdatedAt time.Time
}

// Key is the memo key for the round's computed points.
func (v RoundVersion) Key() string {
	return fmt.Sprintf("%s:%d", v.RoundID, v.UpdatedAt.UnixNano())
}

// ComputeStandingsHash digests the set of rounds feeding the standings. The
// result is independent of input order and changes whenever a round is
// added, removed or written to.
func ComputeStandingsHash(versions []RoundVersion) string {
	keys := make([]string, len(versions))
	for i, v := range versions {
		keys[i] = v.Key()
	}
	slices.Sort(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte(';')
	}

	hash := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(hash[:])
}
