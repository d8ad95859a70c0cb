// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/themerc/pkg/status"
)

// 🎨 Display configuration
const (
	fileIndent    = 4  // spaces to indent file entries
	nameWidth     = 45 // Base width for filename
	outcomeWidth  = 12 // Width for outcome text
	changesWidth  = 30 // Width for the change list
	patchIndent   = 6
	toolName      = "themerc"
	headerMigrate = "migrating"
	headerCheck   = "checking"
)

// 🎯 Logger writes outcome lines to the console and mirrors them to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	root    string
	dryRun  bool
	entries []status.Entry
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func outcomeStyle(o status.Outcome) (rune, color.Attribute) {
	switch o {
	case status.OutcomeRewritten:
		return '⟳', color.FgBlue
	case status.OutcomeDiagnostic:
		return '!', color.FgYellow
	case status.OutcomeFailed:
		return '✗', color.FgRed
	default:
		return '•', color.FgCyan
	}
}

// 📝 formatEntry formats an outcome for display
func (l *Logger) formatEntry(entry status.Entry) string {
	symbol, symbolColor := outcomeStyle(entry.Outcome)

	label := entry.Outcome.String()
	if l.dryRun && entry.Outcome == status.OutcomeRewritten {
		label = "would rewrite"
	}

	line := fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, entry.Path),
		color.New(symbolColor).Sprint(fmt.Sprintf("%-*s", outcomeWidth, label)),
		fmt.Sprintf("%-*s", changesWidth, strings.Join(entry.Changes, ",")))

	if entry.Diagnostic != nil {
		line += color.New(color.Faint).Sprint(entry.Diagnostic.Error())
	}
	return line
}

// 📝 LogFileOperation prints the outcome line for one file
func (l *Logger) LogFileOperation(ctx context.Context, entry status.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)

	fmt.Fprintln(l.console, l.formatEntry(entry))

	l.zlog.Info().
		Str("file", entry.Path).
		Str("outcome", entry.Outcome.String()).
		Strs("changes", entry.Changes).
		Bool("written", entry.Written).
		Int("size", entry.Size).
		AnErr("diagnostic", entry.Diagnostic).
		Msg("file operation")
}

// 📝 LogPatch prints a dry-run patch under the file line
func (l *Logger) LogPatch(path, patch string) {
	if patch == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	indent := strings.Repeat(" ", patchIndent)
	for _, line := range strings.Split(strings.TrimRight(patch, "\n"), "\n") {
		c := color.New(color.Faint)
		switch {
		case strings.HasPrefix(line, "+"):
			c = color.New(color.FgGreen)
		case strings.HasPrefix(line, "-"):
			c = color.New(color.FgRed)
		case strings.HasPrefix(line, "@@"):
			c = color.New(color.FgCyan)
		}
		fmt.Fprintf(l.console, "%s%s\n", indent, c.Sprint(line))
	}

	l.zlog.Debug().Str("file", path).Int("bytes", len(patch)).Msg("patch")
}

// 📝 StartRun prints the run header for root
func (l *Logger) StartRun(ctx context.Context, root string, dryRun bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.root = root
	l.dryRun = dryRun
	l.entries = nil

	verb := headerMigrate
	if dryRun {
		verb = headerCheck
	}
	fmt.Fprintf(l.console, "[%s %s]\n", verb, color.New(color.FgCyan).Sprint(root))

	l.zlog.Info().
		Str("root", root).
		Bool("dry_run", dryRun).
		Msg("starting run")
}

// 📝 EndRun renders the summary table for the run
func (l *Logger) EndRun(ctx context.Context, summary status.Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rewritten := "rewritten"
	if l.dryRun {
		rewritten = "would rewrite"
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"outcome", "files"},
		{rewritten, fmt.Sprint(summary.Rewritten)},
		{"unchanged", fmt.Sprint(summary.Unchanged)},
		{"diagnostic", fmt.Sprint(summary.Diagnostic)},
		{"failed", fmt.Sprint(summary.Failed)},
		{"total", fmt.Sprint(summary.Total())},
	}).Srender()
	if err != nil {
		l.zlog.Warn().Err(err).Msg("rendering summary table")
	} else {
		fmt.Fprintf(l.console, "\n%s\n", table)
	}

	l.zlog.Info().
		Str("root", l.root).
		Int("files", len(l.entries)).
		Int("rewritten", summary.Rewritten).
		Int("unchanged", summary.Unchanged).
		Int("diagnostic", summary.Diagnostic).
		Int("failed", summary.Failed).
		Msg("run complete")

	l.root = ""
	l.entries = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nameText := color.New(color.Bold, color.FgCyan).Sprint(toolName)
	fmt.Fprintf(l.console, "\n%s %s\n\n", nameText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
