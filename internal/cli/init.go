package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mentatlab/mentat-agent/internal/style"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [agent-name]",
	Short: "Scaffold a new agent project",
	Long: `Scaffold a new MentatLab agent project with the stdin/stdout JSON I/O model.

This command creates:
- A Go module importing the agent scaffolding
- main.go with a stubbed transformation to replace
- manifest.yaml describing the agent to the scheduler
- Makefile that bakes the agent ID into the binary at build time
- README with getting started instructions

Templates available:
- stub: prefixes the input text (the classic "Processed: " placeholder)
- echo: returns the input text unchanged

Examples:
  mentat-agent init my-agent                     # Create agent with stub template
  mentat-agent init --template echo my-echo      # Create an echo agent
  mentat-agent init --id org.prod.summarizer s9  # Custom agent ID`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		agentName := "mentat-agent-project"
		if len(args) > 0 {
			agentName = args[0]
		}
		scaffoldAgent(agentName)
	},
}

var (
	templateName string
	agentID      string
	targetDir    string
	force        bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&templateName, "template", "t", "stub", "agent template (stub, echo)")
	initCmd.Flags().StringVar(&agentID, "id", "", "agent ID (default: dev.<agent-name>)")
	initCmd.Flags().StringVar(&targetDir, "dir", "", "directory to create the agent in (default: current directory)")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite existing agent directory")
}

// AgentTemplate represents an agent project template
type AgentTemplate struct {
	Name        string
	Description string
	Files       map[string]string
}

var templates = map[string]AgentTemplate{
	"stub": {
		Name:        "Stub",
		Description: `Prefixes the input text with "Processed: "`,
		Files: map[string]string{
			"main.go":       stubMain,
			"go.mod":        agentGoMod,
			"manifest.yaml": agentManifest,
			"Makefile":      agentMakefile,
			"README.md":     agentReadme,
		},
	},
	"echo": {
		Name:        "Echo",
		Description: "Returns the input text unchanged",
		Files: map[string]string{
			"main.go":       echoMain,
			"go.mod":        agentGoMod,
			"manifest.yaml": agentManifest,
			"Makefile":      agentMakefile,
			"README.md":     agentReadme,
		},
	},
}

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

func scaffoldAgent(agentName string) {
	if !namePattern.MatchString(agentName) {
		style.Error(os.Stderr, "Agent name must contain only letters, numbers, hyphens, and underscores")
		os.Exit(1)
	}

	template, exists := templates[templateName]
	if !exists {
		style.Error(os.Stderr, fmt.Sprintf("Unknown template: %s", templateName))
		fmt.Println("Available templates:")
		for name, tmpl := range templates {
			fmt.Printf("  %s: %s\n", name, tmpl.Description)
		}
		os.Exit(1)
	}

	id := agentID
	if id == "" {
		id = "dev." + agentName
	}

	dir := agentName
	if targetDir != "" {
		dir = filepath.Join(targetDir, agentName)
	}

	if _, err := os.Stat(dir); err == nil && !force {
		style.Error(os.Stderr, fmt.Sprintf("Directory %s already exists, use --force to overwrite", dir))
		os.Exit(1)
	}

	style.Info(os.Stdout, fmt.Sprintf("Creating new agent: %s", agentName))
	style.Info(os.Stdout, fmt.Sprintf("Agent ID: %s", id))

	sp := style.NewSpinner(os.Stdout)
	sp.SetSuffix(fmt.Sprintf(" scaffolding %s template", template.Name))
	sp.Start()
	err := writeTemplate(dir, template, agentName, id)
	sp.Stop()
	if err != nil {
		style.Error(os.Stderr, fmt.Sprintf("Failed to create agent: %v", err))
		os.Exit(1)
	}

	style.Success(os.Stdout, fmt.Sprintf("Agent %q created in %s", agentName, style.FormatFilePath(dir)))
	fmt.Println("\nNext steps:")
	fmt.Printf("  1. cd %s && go mod tidy\n", dir)
	fmt.Println("  2. Replace the transform function in main.go with your logic")
	fmt.Println("  3. make build")
	fmt.Printf("  4. echo '{\"text\": \"hello world\"}' | ./%s\n", agentName)
}

func writeTemplate(dir string, template AgentTemplate, agentName, id string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create agent directory: %w", err)
	}

	replacer := strings.NewReplacer(
		"{{AGENT_NAME}}", agentName,
		"{{AGENT_ID}}", id,
		"{{VERSION}}", "0.1.0",
		"{{DESCRIPTION}}", fmt.Sprintf("A MentatLab agent that processes inputs (%s)", agentName),
	)

	for name, content := range template.Files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(replacer.Replace(content)), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}
