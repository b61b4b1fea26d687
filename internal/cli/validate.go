package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mentatlab/mentat-agent/internal/manifest"
	"github.com/mentatlab/mentat-agent/internal/style"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [manifests...]",
	Short: "Validate agent manifests",
	Long: `Validate agent manifest files for YAML syntax and schema compliance.

This command checks:
- YAML syntax validity
- Required identity fields (id, name)
- Input/output pin types and uniqueness
- Lifecycle limits (timeout, retries)

Examples:
  mentat-agent validate manifest.yaml                # Validate single manifest
  mentat-agent validate agents/*/manifest.yaml       # Validate multiple manifests
  mentat-agent validate --recursive ./agents         # Validate directory recursively
  mentat-agent validate --output json manifest.yaml  # JSON output for CI/CD`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		summary, err := validateManifests(args, recursive)
		if err != nil {
			style.Error(os.Stderr, err.Error())
			os.Exit(1)
		}
		reportValidation(summary)
		if summary.Invalid > 0 {
			os.Exit(1)
		}
	},
}

var (
	recursive bool
	showAll   bool
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "recursively validate manifests in directories")
	validateCmd.Flags().BoolVar(&showAll, "show-all", false, "show all validation results, including successful ones")
}

// ValidationResult represents the result of validating one manifest
type ValidationResult struct {
	File     string        `json:"file" yaml:"file"`
	Valid    bool          `json:"valid" yaml:"valid"`
	Duration time.Duration `json:"duration_ms" yaml:"duration_ms"`
	Errors   []string      `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// ValidationSummary represents the summary of all validation results
type ValidationSummary struct {
	Total    int                `json:"total" yaml:"total"`
	Valid    int                `json:"valid" yaml:"valid"`
	Invalid  int                `json:"invalid" yaml:"invalid"`
	Duration time.Duration      `json:"total_duration_ms" yaml:"total_duration_ms"`
	Results  []ValidationResult `json:"results" yaml:"results"`
}

func validateManifests(args []string, recursive bool) (ValidationSummary, error) {
	start := time.Now()

	files, err := collectFiles(args, recursive)
	if err != nil {
		return ValidationSummary{}, fmt.Errorf("failed to collect files: %w", err)
	}
	if len(files) == 0 {
		return ValidationSummary{}, fmt.Errorf("no manifest files found to validate")
	}

	summary := ValidationSummary{Total: len(files)}
	for _, file := range files {
		result := validateSingleFile(file)
		summary.Results = append(summary.Results, result)
		if result.Valid {
			summary.Valid++
		} else {
			summary.Invalid++
		}
	}
	summary.Duration = time.Since(start)
	return summary, nil
}

func validateSingleFile(filename string) ValidationResult {
	start := time.Now()
	result := ValidationResult{File: filename}

	m, err := manifest.Load(filename)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
	} else {
		result.Errors = append(result.Errors, m.Validate()...)
	}

	result.Valid = len(result.Errors) == 0
	result.Duration = time.Since(start)
	return result
}

func collectFiles(args []string, recursive bool) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		if !recursive {
			return nil, fmt.Errorf("%s is a directory (use --recursive)", arg)
		}

		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isManifestFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func isManifestFile(filename string) bool {
	ext := filepath.Ext(filename)
	return ext == ".yaml" || ext == ".yml"
}

func reportValidation(summary ValidationSummary) {
	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(os.Stdout, summary)
	case "yaml":
		style.PrintYAML(os.Stdout, summary)
	default:
		printValidationText(summary)
	}
}

func printValidationText(summary ValidationSummary) {
	for _, result := range summary.Results {
		if result.Valid {
			if showAll {
				style.Success(os.Stdout, fmt.Sprintf("%s (%v)", result.File, result.Duration))
			}
			continue
		}
		style.Error(os.Stdout, fmt.Sprintf("%s (%v)", result.File, result.Duration))
		for _, msg := range result.Errors {
			fmt.Printf("  %s\n", msg)
		}
	}

	if !viper.GetBool("quiet") {
		status := fmt.Sprintf("%d valid, %d invalid (%d total, %v)",
			summary.Valid, summary.Invalid, summary.Total, summary.Duration)
		if summary.Invalid == 0 {
			style.Success(os.Stdout, status)
		} else {
			style.Warning(os.Stdout, status)
		}
	}
}
