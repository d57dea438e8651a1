//go:build integration

package testutils

import (
	"testing"

	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
)

// MustSucceed fails the test unless the operation returned a success.
func MustSucceed[S any](t *testing.T, res results.OperationResult[S, error], err error) S {
	t.Helper()
	if err != nil {
		t.Fatalf("operation error: %v", err)
	}
	if res.IsFailure() {
		t.Fatalf("operation failed: %v", *res.Failure)
	}
	return *res.Success
}
