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

import "strings"

// Region is a [Start, End) span of the text being rewritten.
type Region struct {
	Start int
	End   int
}

// findComponentBody locates the first
//
//	export [default] (function|const) <name> ... {
//
// header and returns the span from "export" up to and including the body's
// opening brace. The body brace is the "{" right after a parameter list, or
// right after the header's own "=>". Parameter lists are skipped whole, so
// arrows in default values never count. Calls such as React.memo( are
// entered and scanned for the function they wrap. A ";", a bare "{" or an
// arrow with an expression body ends the header without a body.
func findComponentBody(src, name string) (Region, bool) {
	if name == "" {
		return Region{}, false
	}

	for i := 0; i < len(src); {
		idx := strings.Index(src[i:], "export")
		if idx < 0 {
			return Region{}, false
		}
		start := i + idx
		i = start + len("export")

		if start > 0 && isIdentByte(src[start-1]) {
			continue
		}

		p, ok := expectSpace(src, i)
		if !ok {
			continue
		}

		if hasWord(src, p, "default") {
			if p, ok = expectSpace(src, p+len("default")); !ok {
				continue
			}
		}

		switch {
		case hasWord(src, p, "function"):
			p += len("function")
		case hasWord(src, p, "const"):
			p += len("const")
		default:
			continue
		}

		if p, ok = expectSpace(src, p); !ok {
			continue
		}

		if !hasWord(src, p, name) {
			continue
		}

		if end, found := scanToBody(src, p+len(name)); found {
			return Region{Start: start, End: end}, true
		}
	}

	return Region{}, false
}

// scanToBody returns the offset just past the opening body brace.
func scanToBody(src string, p int) (int, bool) {
	for j := p; j < len(src); j++ {
		switch c := src[j]; {
		case c == ';', c == '{':
			return 0, false
		case c == '<':
			end, ok := skipAngles(src, j)
			if !ok {
				return 0, false
			}
			j = end - 1
		case c == '=' && j+1 < len(src) && src[j+1] == '>':
			return arrowBody(src, j+2)
		case c == '(':
			closing, ok := matchParen(src, j)
			if !ok {
				continue
			}
			k := skipReturnType(src, closing+1)
			switch {
			case k < len(src) && src[k] == '{':
				return k + 1, true
			case strings.HasPrefix(src[k:], "=>"):
				return arrowBody(src, k+2)
			}
			// a call or grouping: keep scanning inside it
		}
	}
	return 0, false
}

// arrowBody accepts a block body starting at p, after optional whitespace.
func arrowBody(src string, p int) (int, bool) {
	for p < len(src) && isSpace(src[p]) {
		p++
	}
	if p < len(src) && src[p] == '{' {
		return p + 1, true
	}
	return 0, false
}

// matchParen returns the index of the ")" closing the "(" at open.
func matchParen(src string, open int) (int, bool) {
	depth := 0
	for j := open; j < len(src); j++ {
		switch src[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j, true
			}
		}
	}
	return 0, false
}

// skipAngles returns the offset just past the ">" closing the type argument
// list opened at open. Braces inside (object types) are skipped with it.
func skipAngles(src string, open int) (int, bool) {
	depth := 0
	for j := open; j < len(src); j++ {
		switch src[j] {
		case '<':
			depth++
		case '>':
			if src[j-1] == '=' {
				continue
			}
			depth--
			if depth == 0 {
				return j + 1, true
			}
		case ';':
			return 0, false
		}
	}
	return 0, false
}

// skipReturnType moves past whitespace and an optional ": Type" annotation
// following a parameter list. It stops on the first "{" or "=>" outside
// brackets, or on anything that cannot continue a type.
func skipReturnType(src string, p int) int {
	for p < len(src) && isSpace(src[p]) {
		p++
	}
	if p >= len(src) || src[p] != ':' {
		return p
	}

	parens, angles := 0, 0
	for j := p + 1; j < len(src); j++ {
		switch src[j] {
		case '(':
			parens++
		case ')':
			if parens == 0 {
				return j
			}
			parens--
		case '<':
			angles++
		case '>':
			if src[j-1] == '=' {
				if parens == 0 && angles == 0 {
					return j - 1
				}
				continue
			}
			if angles > 0 {
				angles--
			}
		case '{', ';', ',':
			if parens == 0 && angles == 0 {
				return j
			}
		}
	}
	return len(src)
}

// insertionPoint returns where injected lines go after a body brace ending
// at end, and whether a newline must be emitted first.
func insertionPoint(src string, end int) (int, bool) {
	k := end
	for k < len(src) && (src[k] == ' ' || src[k] == '\t' || src[k] == '\r') {
		k++
	}
	if k < len(src) && src[k] == '\n' {
		return k + 1, false
	}
	return end, true
}

// expectSpace skips at least one whitespace byte starting at p.
func expectSpace(src string, p int) (int, bool) {
	q := p
	for q < len(src) && isSpace(src[q]) {
		q++
	}
	return q, q > p
}

// hasWord reports whether word starts at p and is not followed by another
// identifier byte.
func hasWord(src string, p int, word string) bool {
	if !strings.HasPrefix(src[p:], word) {
		return false
	}
	end := p + len(word)
	return end == len(src) || !isIdentByte(src[end])
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9') ||
		c >= 0x80
}
