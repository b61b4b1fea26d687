// Package testhelper quiets global logging for test runs. Import it for its
// side effect:
//
//	import _ "github.com/mentatlab/mentat-agent/internal/testhelper"
package testhelper

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

// init disables logging for tests unless explicitly enabled with
// MENTAT_TEST_LOG.
func init() {
	if testing.Testing() && os.Getenv("MENTAT_TEST_LOG") == "" {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}
}
