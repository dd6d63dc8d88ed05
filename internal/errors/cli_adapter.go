package errors

import (
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if fe, ok := err.(*FixupError); ok {
		return exitCodeFromFixup(fe)
	}

	return 1
}

// exitCodeFromFixup maps FixupError to exit codes.
func exitCodeFromFixup(err *FixupError) int {
	switch err.Category {
	case CategoryUsage:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryFileSystem, CategoryRender:
		return 11 // Generation error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// Report logs the error at the appropriate level before exit.
func (a *CLIErrorAdapter) Report(err error) {
	if err == nil {
		return
	}
	if fe, ok := err.(*FixupError); ok {
		attrs := []any{slog.String("category", string(fe.Category))}
		if a.verbose {
			for k, v := range fe.Context {
				attrs = append(attrs, slog.Any(k, v))
			}
		}
		a.logger.Error(fe.Message, attrs...)
		if fe.Cause != nil && a.verbose {
			a.logger.Error("caused by", slog.String("error", fe.Cause.Error()))
		}
		return
	}
	a.logger.Error(err.Error())
}
