package nav

import (
	"testing"

	"go.uber.org/goleak"
)

// The controller owns one timer per transition and no goroutines; guard
// chains run on the caller's goroutine. Verify nothing leaks across the
// package's tests.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
