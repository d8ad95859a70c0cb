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

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/walteh/themerc/pkg/rewrite"
	"github.com/walteh/themerc/pkg/selector"
	"github.com/walteh/themerc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// Defaults used when a field is left empty
const (
	DefaultRoot      = "src"
	DefaultExtension = ".tsx"
)

var (
	// DefaultExclude names the context definition and the screen that owns its own theming
	DefaultExclude = []string{"ThemeContext", "AccountScreen"}
	// DefaultIgnore keeps vendored trees out of the walk
	DefaultIgnore = []string{"**/node_modules/**"}
)

// 📜 RulesBlock overrides the rewrite literals. Empty fields keep the defaults.
type RulesBlock struct {
	Marker       string                 `json:"marker,omitempty" yaml:"marker,omitempty" hcl:"marker,optional"`
	Token        string                 `json:"token,omitempty" yaml:"token,omitempty" hcl:"token,optional"`
	ModuleSuffix string                 `json:"module_suffix,omitempty" yaml:"module_suffix,omitempty" hcl:"module_suffix,optional"`
	ImportLine   string                 `json:"import_line,omitempty" yaml:"import_line,omitempty" hcl:"import_line,optional"`
	ThemeLine    string                 `json:"theme_line,omitempty" yaml:"theme_line,omitempty" hcl:"theme_line,optional"`
	StylesLine   string                 `json:"styles_line,omitempty" yaml:"styles_line,omitempty" hcl:"styles_line,optional"`
	StyleDecl    string                 `json:"style_decl,omitempty" yaml:"style_decl,omitempty" hcl:"style_decl,optional"`
	FactoryDecl  string                 `json:"factory_decl,omitempty" yaml:"factory_decl,omitempty" hcl:"factory_decl,optional"`
	Replacements []text.ReplacementRule `json:"replacements,omitempty" yaml:"replacements,omitempty" hcl:"replace,block" validate:"dive"`
}

// 📚 Config is the complete themerc configuration
type Config struct {
	Root      string      `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional" validate:"required"`
	Extension string      `json:"extension,omitempty" yaml:"extension,omitempty" hcl:"extension,optional" validate:"required,startswith=.,excludesall=*?[]{}/"`
	Exclude   []string    `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional" validate:"dive,required"`
	Ignore    []string    `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional" validate:"dive,required,glob"`
	Backup    bool        `json:"backup,omitempty" yaml:"backup,omitempty" hcl:"backup,optional"`
	Async     bool        `json:"async,omitempty" yaml:"async,omitempty" hcl:"async,optional"`
	Workers   int         `json:"workers,omitempty" yaml:"workers,omitempty" hcl:"workers,optional" validate:"gte=0"`
	Rules     *RulesBlock `json:"rules,omitempty" yaml:"rules,omitempty" hcl:"rules,block"`

	location string
}

// 🏭 Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

func (cfg *Config) applyDefaults() {
	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}
	if cfg.Exclude == nil {
		cfg.Exclude = append([]string(nil), DefaultExclude...)
	}
	if cfg.Ignore == nil {
		cfg.Ignore = append([]string(nil), DefaultIgnore...)
	}
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
			return doublestar.ValidatePattern(fl.Field().String())
		})
		validateInst = v
	})
	return validateInst
}

// 🔍 Validate checks the configuration and normalizes paths
func Validate(ctx context.Context, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if err := validatorInstance().StructCtx(ctx, cfg); err != nil {
		return convertValidationError(err)
	}

	if _, err := rewrite.New(cfg.RewriteRules()); err != nil {
		return errors.Errorf("rules: %w", err)
	}

	cfg.Root = filepath.Clean(cfg.Root)

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("configuration validated")
	return nil
}

// convertValidationError reports the first failing field by its lowercase path
func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		parts := strings.Split(fe.StructNamespace(), ".")
		for i, part := range parts {
			parts[i] = strings.ToLower(part)
		}
		return errors.Errorf("%s failed validation for tag '%s'", strings.Join(parts[1:], "."), fe.Tag())
	}
	return errors.Errorf("validating config: %w", err)
}

// 🧩 RewriteRules merges the configured overrides over the default literals
func (cfg *Config) RewriteRules() rewrite.Rules {
	rules := rewrite.DefaultRules()
	if cfg.Rules == nil {
		return rules
	}

	override := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	override(&rules.Marker, cfg.Rules.Marker)
	override(&rules.Token, cfg.Rules.Token)
	override(&rules.ModuleSuffix, cfg.Rules.ModuleSuffix)
	override(&rules.ImportLine, cfg.Rules.ImportLine)
	override(&rules.ThemeLine, cfg.Rules.ThemeLine)
	override(&rules.StylesLine, cfg.Rules.StylesLine)
	override(&rules.StyleDecl, cfg.Rules.StyleDecl)
	override(&rules.FactoryDecl, cfg.Rules.FactoryDecl)
	rules.Replacements = cfg.Rules.Replacements
	return rules
}

// SelectorOptions returns the file selection part of the config
func (cfg *Config) SelectorOptions() selector.Options {
	return selector.Options{
		Root:      cfg.Root,
		Extension: cfg.Extension,
		Exclude:   cfg.Exclude,
		Ignore:    cfg.Ignore,
	}
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	mode := "sync"
	if cfg.Async {
		mode = fmt.Sprintf("async/%d", cfg.Workers)
	}
	return fmt.Sprintf("%s/**/*%s (exclude %s, %s)", cfg.Root, cfg.Extension, strings.Join(cfg.Exclude, ","), mode)
}
