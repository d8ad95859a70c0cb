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
	"github.com/walteh/themerc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// Default literals. Generated files depend on these byte for byte.
const (
	DefaultMarker       = "import { colors }"
	DefaultToken        = "colors"
	DefaultModuleSuffix = "theme/colors"
	DefaultImportLine   = "import { useTheme } from '../context/ThemeContext';\n"
	DefaultThemeLine    = "  const { colors } = useTheme();\n"
	DefaultStylesLine   = "  const styles = getStyles(colors);\n"
	DefaultStyleDecl    = "const styles = StyleSheet.create({"
	DefaultFactoryDecl  = "const getStyles = (colors: any) => StyleSheet.create({"
)

// 📜 Rules holds every literal the engine matches or emits
type Rules struct {
	// Marker gates the whole rewrite: files without it are left alone.
	Marker string
	// Token is the imported binding being replaced.
	Token string
	// ModuleSuffix is the import path after one or more "../" segments.
	ModuleSuffix string
	// ImportLine replaces the matched import statement.
	ImportLine string
	// ThemeLine is always injected into the component body.
	ThemeLine string
	// StylesLine is injected only when StyleDecl is present.
	StylesLine string
	// StyleDecl is the static style-table header rewritten by FactoryDecl.
	StyleDecl   string
	FactoryDecl string
	// Replacements run after the three passes on qualifying files.
	Replacements []text.ReplacementRule
}

// 🏭 DefaultRules returns the theme migration literals
func DefaultRules() Rules {
	return Rules{
		Marker:       DefaultMarker,
		Token:        DefaultToken,
		ModuleSuffix: DefaultModuleSuffix,
		ImportLine:   DefaultImportLine,
		ThemeLine:    DefaultThemeLine,
		StylesLine:   DefaultStylesLine,
		StyleDecl:    DefaultStyleDecl,
		FactoryDecl:  DefaultFactoryDecl,
	}
}

// 🔍 Validate checks that every literal is set
func (r Rules) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"marker", r.Marker},
		{"token", r.Token},
		{"module_suffix", r.ModuleSuffix},
		{"import_line", r.ImportLine},
		{"theme_line", r.ThemeLine},
		{"styles_line", r.StylesLine},
		{"style_decl", r.StyleDecl},
		{"factory_decl", r.FactoryDecl},
	}
	for _, field := range required {
		if field.value == "" {
			return errors.Errorf("rules.%s is required", field.name)
		}
	}

	if err := text.NewSimpleTextReplacer().ValidateRules(r.Replacements); err != nil {
		return errors.Errorf("rules.replacements: %w", err)
	}
	return nil
}
