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
package operation

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// 🔍 Patch renders a line diff between before and after. Unchanged runs are
// collapsed into hunk headers carrying the line number in before.
func Patch(path, before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", path, path)

	line := 1
	inHunk := false
	for _, d := range diffs {
		chunk := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			line += len(chunk)
			inHunk = false
			continue
		case diffmatchpatch.DiffDelete:
			if !inHunk {
				fmt.Fprintf(&sb, "@@ line %d @@\n", line)
				inHunk = true
			}
			line += len(chunk)
			writeLines(&sb, "-", chunk)
		case diffmatchpatch.DiffInsert:
			if !inHunk {
				fmt.Fprintf(&sb, "@@ line %d @@\n", line)
				inHunk = true
			}
			writeLines(&sb, "+", chunk)
		}
	}
	return sb.String()
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.SplitAfter(strings.TrimSuffix(text, "\n"), "\n")
}

func writeLines(sb *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		sb.WriteString(prefix)
		sb.WriteString(strings.TrimSuffix(l, "\n"))
		sb.WriteString("\n")
	}
}
