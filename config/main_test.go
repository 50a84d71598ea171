package config

import (
	"testing"

	"github.com/fieldnav/fieldnav/testutils"
)

func TestMain(m *testing.M) {
	testutils.VerifyTestMain(m)
}
