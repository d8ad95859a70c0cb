package status

import (
	"fmt"
	"strings"
)

// FileFormatter defines how outcome records are rendered as plain text
type FileFormatter interface {
	// FormatEntry formats one outcome line
	FormatEntry(entry Entry) string

	// FormatSummary formats the totals of a run
	FormatSummary(summary Summary, dryRun bool) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatEntry formats an outcome line with emojis
func (f *DefaultFileFormatter) FormatEntry(entry Entry) string {
	changes := ""
	if len(entry.Changes) > 0 {
		changes = " (" + strings.Join(entry.Changes, ", ") + ")"
	}

	switch entry.Outcome {
	case OutcomeRewritten:
		return fmt.Sprintf("📝 Refactored %s%s", entry.Path, changes)
	case OutcomeDiagnostic:
		return fmt.Sprintf("⚠️  %s%s: %v", entry.Path, changes, entry.Diagnostic)
	case OutcomeFailed:
		return fmt.Sprintf("❌ Failed %s: %v", entry.Path, entry.Diagnostic)
	default:
		return fmt.Sprintf("👍 Unchanged %s", entry.Path)
	}
}

// FormatSummary formats run totals
func (f *DefaultFileFormatter) FormatSummary(summary Summary, dryRun bool) string {
	verb := "rewritten"
	if dryRun {
		verb = "to rewrite"
	}
	return fmt.Sprintf("%d files: %d %s, %d unchanged, %d diagnostics, %d failed",
		summary.Total(),
		summary.Rewritten,
		verb,
		summary.Unchanged,
		summary.Diagnostic,
		summary.Failed,
	)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
