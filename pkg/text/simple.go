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

package text

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var _ TextReplacer = (*SimpleTextReplacer)(nil)

// SimpleTextReplacer implements TextReplacer using literal string replacement
type SimpleTextReplacer struct{}

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *SimpleTextReplacer) ReplaceText(ctx context.Context, path string, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	currentContent := string(originalContent)
	for _, rule := range rules {
		if rule.FromText == "" {
			continue
		}

		if !matchesPath(ctx, rule.FileFilterGlob, path) {
			continue
		}

		var count int
		currentContent, count = ReplaceN(currentContent, rule.FromText, rule.ToText, rule.Limit)
		if count > 0 {
			result.WasModified = true
			result.ReplacementCount += count
		}
	}

	result.ModifiedContent = []byte(currentContent)
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *SimpleTextReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from_text is required", i)
		}
		if rule.FileFilterGlob == "" {
			return errors.Errorf("rule %d: file_filter_glob is required", i)
		}
		if !doublestar.ValidatePattern(rule.FileFilterGlob) {
			return errors.Errorf("rule %d: invalid file_filter_glob %q", i, rule.FileFilterGlob)
		}
		if rule.Limit < 0 {
			return errors.Errorf("rule %d: limit must not be negative", i)
		}
	}
	return nil
}

// ReplaceN replaces up to limit occurrences of from with to and reports how
// many were replaced. A limit of zero replaces every occurrence.
func ReplaceN(s, from, to string, limit int) (string, int) {
	if from == "" {
		return s, 0
	}
	count := strings.Count(s, from)
	if count == 0 {
		return s, 0
	}
	if limit > 0 && count > limit {
		count = limit
	}
	return strings.Replace(s, from, to, count), count
}

// 🔍 matchesPath reports whether a rule glob applies to path. An empty glob
// matches everything.
func matchesPath(ctx context.Context, glob, path string) bool {
	if glob == "" || path == "" {
		return true
	}
	slashed := filepath.ToSlash(path)
	matched, err := doublestar.Match(glob, slashed)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Str("pattern", glob).Str("path", path).Err(err).Msg("error matching pattern")
		return false
	}
	if matched {
		return true
	}
	// patterns without a directory part are matched against the base name
	if !strings.Contains(glob, "/") {
		matched, _ = doublestar.Match(glob, filepath.Base(path))
	}
	return matched
}
