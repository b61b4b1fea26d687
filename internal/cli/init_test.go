package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentatlab/mentat-agent/internal/manifest"
)

func TestWriteTemplateStub(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-agent")
	require.NoError(t, writeTemplate(dir, templates["stub"], "my-agent", "dev.my-agent"))

	for _, name := range []string{"main.go", "go.mod", "manifest.yaml", "Makefile", "README.md"} {
		content, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, "expected %s to be written", name)
		assert.NotContains(t, string(content), "{{", "unsubstituted placeholder in %s", name)
	}

	mainGo, err := os.ReadFile(filepath.Join(dir, "main.go"))
	require.NoError(t, err)
	assert.Contains(t, string(mainGo), `var model = "dev.my-agent"`)
	assert.Contains(t, string(mainGo), "TODO: Implement your agent logic here")
	assert.Contains(t, string(mainGo), "github.com/mentatlab/mentat-agent/pkg/agent")
}

func TestWriteTemplateEcho(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "echo-agent")
	require.NoError(t, writeTemplate(dir, templates["echo"], "echo-agent", "dev.echo-agent"))

	mainGo, err := os.ReadFile(filepath.Join(dir, "main.go"))
	require.NoError(t, err)
	assert.Contains(t, string(mainGo), "agent.Echo")
	assert.NotContains(t, string(mainGo), "TODO")
}

func TestWriteTemplateManifestIsValid(t *testing.T) {
	// The scaffolded manifest must pass this repo's own validation.
	dir := filepath.Join(t.TempDir(), "my-agent")
	require.NoError(t, writeTemplate(dir, templates["stub"], "my-agent", "dev.my-agent"))

	m, err := manifest.Load(filepath.Join(dir, "manifest.yaml"))
	require.NoError(t, err)
	assert.Empty(t, m.Validate())
	assert.Equal(t, "dev.my-agent", m.ID)
	assert.Equal(t, "my-agent", m.Name)
}

func TestWriteTemplateMakefileBakesID(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-agent")
	require.NoError(t, writeTemplate(dir, templates["stub"], "my-agent", "org.prod.summarizer"))

	makefile, err := os.ReadFile(filepath.Join(dir, "Makefile"))
	require.NoError(t, err)
	assert.Contains(t, string(makefile), "-X main.model=$(AGENT_ID)")
	assert.Contains(t, string(makefile), "AGENT_ID ?= org.prod.summarizer")
}

func TestAgentNamePattern(t *testing.T) {
	valid := []string{"my-agent", "agent_2", "Echo"}
	invalid := []string{"", "-leading", "has space", "dot.name"}

	for _, name := range valid {
		assert.True(t, namePattern.MatchString(name), "expected %q to be valid", name)
	}
	for _, name := range invalid {
		assert.False(t, namePattern.MatchString(name), "expected %q to be invalid", name)
	}
}

func TestTemplatesShareScaffoldFiles(t *testing.T) {
	stub := templates["stub"]
	echo := templates["echo"]
	for _, name := range []string{"go.mod", "manifest.yaml", "Makefile", "README.md"} {
		assert.Equal(t, stub.Files[name], echo.Files[name], "template file %s diverged", name)
	}
	assert.False(t, strings.Contains(echo.Files["main.go"], "Processed: "))
}
