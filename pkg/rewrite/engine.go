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

package rewrite

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/themerc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrPatternNotFound is reported when no exported declaration matches the
// component identifier. The file is still rewritten by the other passes.
var ErrPatternNotFound = errors.Base("component declaration not found")

// 🧩 Change names used in results and reports
const (
	ChangeImport       = "import"
	ChangeInject       = "inject"
	ChangeFactory      = "factory"
	ChangeReplacements = "replacements"
)

// 📦 Result is the outcome of running the passes over one file
type Result struct {
	Path       string
	Component  string
	Applicable bool
	Original   string
	Content    string

	ImportReplaced   bool
	DroppedImports   []string // names that shared the replaced import
	Injected         bool
	StylesInjected   bool
	AlreadyInjected  bool
	FactoryRewritten bool
	Replacements     int

	// Diagnostic is set when a pass could not apply, for example
	// ErrPatternNotFound.
	Diagnostic error
}

// Changed reports whether the content differs from the original
func (r *Result) Changed() bool {
	return r.Content != r.Original
}

// Changes lists the passes that modified the content, in pass order
func (r *Result) Changes() []string {
	var changes []string
	if r.ImportReplaced {
		changes = append(changes, ChangeImport)
	}
	if r.Injected {
		changes = append(changes, ChangeInject)
	}
	if r.FactoryRewritten {
		changes = append(changes, ChangeFactory)
	}
	if r.Replacements > 0 {
		changes = append(changes, ChangeReplacements)
	}
	return changes
}

// ⚙️ Engine applies the migration passes. It holds no per-file state and is
// safe for concurrent use.
type Engine struct {
	rules    Rules
	exact    *regexp.Regexp
	extended *regexp.Regexp
	replacer text.TextReplacer
}

// 🏭 New validates rules and compiles the import patterns
func New(rules Rules) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	token := regexp.QuoteMeta(rules.Token)
	from := `\s*from\s*['"](?:\.\./)+` + regexp.QuoteMeta(rules.ModuleSuffix) + `['"];?\n?`

	exact, err := regexp.Compile(`import\s*\{\s*` + token + `\s*\}` + from)
	if err != nil {
		return nil, errors.Errorf("compiling import pattern: %w", err)
	}
	extended, err := regexp.Compile(`import\s*\{\s*` + token + `\b([^}]*)\}` + from)
	if err != nil {
		return nil, errors.Errorf("compiling import pattern: %w", err)
	}

	return &Engine{
		rules:    rules,
		exact:    exact,
		extended: extended,
		replacer: text.NewSimpleTextReplacer(),
	}, nil
}

// Rules returns the rules the engine was built with
func (e *Engine) Rules() Rules {
	return e.rules
}

// Applies reports whether content carries the old import marker
func (e *Engine) Applies(content string) bool {
	return strings.Contains(content, e.rules.Marker)
}

// ComponentName derives the expected component identifier from a path
func ComponentName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// 🔄 Rewrite runs the passes over content. Files without the marker come back
// unchanged with Applicable false.
func (e *Engine) Rewrite(ctx context.Context, path, content string) (*Result, error) {
	res := &Result{
		Path:      path,
		Component: ComponentName(path),
		Original:  content,
		Content:   content,
	}

	if !e.Applies(content) {
		return res, nil
	}
	res.Applicable = true

	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()

	e.replaceImport(res)
	if !res.ImportReplaced {
		logger.Debug().Msg("no import statement matched the marker")
	}
	if len(res.DroppedImports) > 0 {
		logger.Warn().Strs("names", res.DroppedImports).Msg("import names dropped with the replaced import")
	}

	e.inject(res)

	if err := e.rewriteDeclaration(ctx, res); err != nil {
		return nil, err
	}

	logger.Debug().
		Strs("changes", res.Changes()).
		Bool("changed", res.Changed()).
		Msg("rewrite complete")

	return res, nil
}

// replaceImport is pass 1. The earliest import in the file is replaced; the
// exact form wins only when both forms start at the same offset.
func (e *Engine) replaceImport(res *Result) {
	exact := e.exact.FindStringIndex(res.Content)
	ext := e.extended.FindStringSubmatchIndex(res.Content)

	switch {
	case exact != nil && (ext == nil || exact[0] <= ext[0]):
		res.Content = res.Content[:exact[0]] + e.rules.ImportLine + res.Content[exact[1]:]
	case ext != nil:
		res.DroppedImports = splitNames(res.Content[ext[2]:ext[3]])
		res.Content = res.Content[:ext[0]] + e.rules.ImportLine + res.Content[ext[1]:]
	default:
		return
	}
	res.ImportReplaced = true
}

// inject is pass 2.
func (e *Engine) inject(res *Result) {
	if strings.Contains(res.Content, strings.TrimSpace(e.rules.ThemeLine)) {
		res.AlreadyInjected = true
		return
	}

	region, ok := findComponentBody(res.Content, res.Component)
	if !ok {
		res.Diagnostic = errors.Errorf("%w: expected exported %s in %s", ErrPatternNotFound, res.Component, res.Path)
		return
	}

	at, newline := insertionPoint(res.Content, region.End)

	var b strings.Builder
	if newline {
		b.WriteString("\n")
	}
	b.WriteString(e.rules.ThemeLine)
	if strings.Contains(res.Content, e.rules.StyleDecl) {
		b.WriteString(e.rules.StylesLine)
		res.StylesInjected = true
	}

	res.Content = res.Content[:at] + b.String() + res.Content[at:]
	res.Injected = true
}

// rewriteDeclaration is pass 3, followed by any configured replacements.
func (e *Engine) rewriteDeclaration(ctx context.Context, res *Result) error {
	factory := []text.ReplacementRule{{
		FromText: e.rules.StyleDecl,
		ToText:   e.rules.FactoryDecl,
		Limit:    1,
	}}
	out, err := e.replacer.ReplaceText(ctx, res.Path, strings.NewReader(res.Content), factory)
	if err != nil {
		return errors.Errorf("rewriting style declaration: %w", err)
	}
	res.Content = string(out.ModifiedContent)
	res.FactoryRewritten = out.WasModified

	if len(e.rules.Replacements) == 0 {
		return nil
	}

	out, err = e.replacer.ReplaceText(ctx, res.Path, strings.NewReader(res.Content), e.rules.Replacements)
	if err != nil {
		return errors.Errorf("applying replacements: %w", err)
	}
	res.Content = string(out.ModifiedContent)
	res.Replacements = out.ReplacementCount
	return nil
}

func splitNames(list string) []string {
	var names []string
	for _, part := range strings.Split(list, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
