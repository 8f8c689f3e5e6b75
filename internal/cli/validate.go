package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue/token"
	"github.com/spf13/cobra"

	"github.com/roach88/eqsolve/internal/config"
	"github.com/roach88/eqsolve/internal/harness"
)

// FileValidation is the validation outcome of one file.
type FileValidation struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"` // "config" or "scenario"
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate configuration and scenario files",
		Long: `Validate CUE configuration files (.cue) and YAML scenario files
(.yaml, .yml) without evaluating anything.

Configuration files are checked against the configuration schema;
scenario files are checked for unknown fields, missing expectations and
malformed assertions.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(paths))}
	for _, path := range paths {
		fv := validateFile(path)
		formatter.VerboseLog("validated %s (%s): %t", path, fv.Kind, fv.Valid)
		if !fv.Valid {
			result.Valid = false
		}
		result.Files = append(result.Files, fv)
	}

	if !result.Valid {
		if err := formatter.Error(ErrCodeInvalid, "validation failed", result); err != nil {
			return err
		}
		if formatter.Format != "json" {
			fmt.Fprint(formatter.Writer, formatValidation(result))
		}
		exitErr := NewExitError(ExitFailure, "validation failed")
		exitErr.Reported = true
		return exitErr
	}

	return formatter.Success(strings.TrimSuffix(formatValidation(result), "\n"), result)
}

func validateFile(path string) FileValidation {
	switch ext := filepath.Ext(path); ext {
	case ".cue":
		fv := FileValidation{Path: path, Kind: "config", Valid: true}
		if _, err := config.Load(path); err != nil {
			fv.Valid = false
			fv.Message = err.Error()
			fv.Line = configErrorLine(err)
		}
		return fv
	case ".yaml", ".yml":
		fv := FileValidation{Path: path, Kind: "scenario", Valid: true}
		if _, err := harness.LoadScenario(path); err != nil {
			fv.Valid = false
			fv.Message = err.Error()
		}
		return fv
	default:
		return FileValidation{
			Path:    path,
			Kind:    "unknown",
			Message: fmt.Sprintf("unsupported file extension %q", ext),
		}
	}
}

// configErrorLine returns the 1-based line of a config error, or 0.
func configErrorLine(err error) int {
	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		return getLineFromCuePos(cfgErr.Pos)
	}
	return 0
}

func getLineFromCuePos(pos token.Pos) int {
	if !pos.IsValid() {
		return 0
	}
	return pos.Line()
}

func formatValidation(result ValidationResult) string {
	var b strings.Builder
	for _, f := range result.Files {
		if f.Valid {
			fmt.Fprintf(&b, "✓ %s (%s)\n", f.Path, f.Kind)
			continue
		}
		fmt.Fprintf(&b, "✗ %s (%s)\n  %s\n", f.Path, f.Kind, f.Message)
	}
	return b.String()
}
