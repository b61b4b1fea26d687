package cli

// Agent project template content. Placeholders ({{AGENT_NAME}}, {{AGENT_ID}},
// {{VERSION}}, {{DESCRIPTION}}) are substituted when the project is written.

const stubMain = `// {{AGENT_NAME}} - {{DESCRIPTION}}
//
// Implements the MentatLab stdin/stdout JSON I/O model: one request in, one
// response with mentat_meta metrics out.
package main

import (
	"os"

	"github.com/mentatlab/mentat-agent/pkg/agent"
)

// model is baked in at build time; see the Makefile.
var model = "{{AGENT_ID}}"

func main() {
	os.Exit(agent.New(model, transform).Run())
}

// transform is the business logic of this agent. It must be a pure function
// of the input text and must not panic for any input, including the empty
// string.
func transform(text string) string {
	// TODO: Implement your agent logic here
	// This is a basic template - replace with your actual processing
	return "Processed: " + text
}
`

const echoMain = `// {{AGENT_NAME}} - {{DESCRIPTION}}
//
// Implements the MentatLab stdin/stdout JSON I/O model: one request in, one
// response with mentat_meta metrics out.
package main

import (
	"os"

	"github.com/mentatlab/mentat-agent/pkg/agent"
)

// model is baked in at build time; see the Makefile.
var model = "{{AGENT_ID}}"

func main() {
	os.Exit(agent.New(model, agent.Echo).Run())
}
`

const agentGoMod = `module {{AGENT_NAME}}

go 1.24.1

require github.com/mentatlab/mentat-agent v0.1.0
`

const agentManifest = `id: {{AGENT_ID}}
name: {{AGENT_NAME}}
version: "{{VERSION}}"
description: "{{DESCRIPTION}}"
runtime: go
command: ["./{{AGENT_NAME}}"]
inputs:
  - name: text
    type: text
    description: Input text to process
outputs:
  - name: result
    type: text
    description: Processed result text
timeout_seconds: 60
labels:
  tier: dev
`

const agentMakefile = `AGENT_ID ?= {{AGENT_ID}}
LDFLAGS   = -X main.model=$(AGENT_ID)

.PHONY: build test run clean

build:
	go build -ldflags "$(LDFLAGS)" -o {{AGENT_NAME}} .

test:
	go test ./...

run: build
	echo '{"text": "hello world"}' | ./{{AGENT_NAME}}

clean:
	rm -f {{AGENT_NAME}}
`

const agentReadme = `# {{AGENT_NAME}}

{{DESCRIPTION}}

## I/O contract

Input (stdin, single JSON document):

` + "```json" + `
{"text": "hello world"}
` + "```" + `

Output (stdout, single JSON document):

` + "```json" + `
{"result": "...", "mentat_meta": {"tokens_input": 2, "tokens_output": 3, "seconds": 0.001, "model": "{{AGENT_ID}}"}}
` + "```" + `

On failure the agent writes an error document and exits 1:

` + "```json" + `
{"error": "...", "mentat_meta": {"tokens_input": null, "tokens_output": null, "seconds": null, "model": "{{AGENT_ID}}"}}
` + "```" + `

## Getting started

1. ` + "`go mod tidy`" + `
2. Edit the transform function in main.go
3. ` + "`make build`" + `
4. ` + "`echo '{\"text\": \"hello world\"}' | ./{{AGENT_NAME}}`" + `

Validate the manifest with ` + "`mentat-agent validate manifest.yaml`" + `.
`
