// Package testutils provides shared test helpers.
package testutils

import (
	"go.uber.org/goleak"
)

// VerifyTestMain verifies no goroutines leak after all tests in a package run.
func VerifyTestMain(m goleak.TestingM) {
	goleak.VerifyTestMain(m)
}
