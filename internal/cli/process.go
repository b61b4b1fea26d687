package cli

import (
	"bufio"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mentatlab/mentat-agent/pkg/agent"
	"github.com/mentatlab/mentat-agent/pkg/events"
)

// processCmd is the explicit form of the default root behaviour: read one
// JSON request from stdin, write one JSON response to stdout.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a single request from stdin",
	Long: `Read a single JSON request from stdin, apply the agent transformation, and
write a single JSON response with mentat_meta metrics to stdout.

The input document has one recognized field, "text". A missing field is
treated as the empty string. On any failure (empty stdin, invalid JSON) a
structured error document is written to stdout and the process exits 1.

Examples:
  echo '{"text": "hello world"}' | mentat-agent process
  echo '{"text": "hello"}' | mentat-agent process --events  # NDJSON checkpoints on stderr`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runProcess()
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
}

// runProcess performs the one-shot cycle and exits the process on failure.
func runProcess() {
	p := newProcessor()
	if code := p.Run(); code != agent.ExitSuccess {
		os.Exit(code)
	}
}

// newProcessor builds the processor bound to the OS streams with the
// build-time model identifier and the stub transformation. Stdout is
// buffered; the processor flushes it before returning.
func newProcessor() *agent.Processor {
	p := agent.New(agent.Model, agent.Stub)
	p.Stdout = bufio.NewWriter(os.Stdout)
	if viper.GetBool("events") {
		p.Emitter = events.New(os.Stderr)
	}
	return p
}
