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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/themerc/pkg/rewrite"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing config")
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_yaml",
			file: ".themerc.yaml",
			config: `
root: app/src
extension: .tsx
exclude:
  - ThemeContext
ignore:
  - "**/__tests__/**"
backup: true
async: true
workers: 4
rules:
  replacements:
    - from: colors.textPrimary
      to: colors.text
      file_filter_glob: "**/screens/**"
      limit: 1
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "app/src", cfg.Root, "root should match")
				assert.Equal(t, ".tsx", cfg.Extension, "extension should match")
				assert.Equal(t, []string{"ThemeContext"}, cfg.Exclude, "exclude should be replaced, not merged")
				assert.Equal(t, []string{"**/__tests__/**"}, cfg.Ignore, "ignore should match")
				assert.True(t, cfg.Backup, "backup should be true")
				assert.True(t, cfg.Async, "async should be true")
				assert.Equal(t, 4, cfg.Workers, "workers should match")
				require.NotNil(t, cfg.Rules, "rules should be set")
				require.Len(t, cfg.Rules.Replacements, 1, "should have 1 replacement")
				assert.Equal(t, "colors.text", cfg.Rules.Replacements[0].ToText, "replacement to should match")
				assert.Equal(t, 1, cfg.Rules.Replacements[0].Limit, "replacement limit should match")
			},
		},
		{
			name:   "empty_mapping_gets_defaults",
			file:   "config.yaml",
			config: "{}\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultRoot, cfg.Root, "root should default")
				assert.Equal(t, DefaultExtension, cfg.Extension, "extension should default")
				assert.Equal(t, DefaultExclude, cfg.Exclude, "exclude should default")
				assert.Equal(t, DefaultIgnore, cfg.Ignore, "ignore should default")
				assert.False(t, cfg.Async, "async should default to false")
				assert.Equal(t, rewrite.DefaultRules(), cfg.RewriteRules(), "rules should default")
			},
		},
		{
			name: "valid_hcl",
			file: ".themerc.hcl",
			config: `
root      = "src"
extension = ".jsx"
async     = true

rules {
  marker = "import { palette }"
  token  = "palette"

  replace {
    from             = "palette.bg"
    to               = "palette.background"
    file_filter_glob = "*.jsx"
  }
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ".jsx", cfg.Extension, "extension should match")
				rules := cfg.RewriteRules()
				assert.Equal(t, "import { palette }", rules.Marker, "marker should be overridden")
				assert.Equal(t, "palette", rules.Token, "token should be overridden")
				assert.Equal(t, rewrite.DefaultThemeLine, rules.ThemeLine, "theme line should keep default")
				require.Len(t, rules.Replacements, 1, "should have 1 replacement")
				assert.Equal(t, "palette.background", rules.Replacements[0].ToText, "replacement should match")
			},
		},
		{
			name:   "valid_json",
			file:   "themerc.json",
			config: `{"root": "mobile/src", "ignore": [], "workers": 2}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mobile/src", cfg.Root, "root should match")
				assert.Empty(t, cfg.Ignore, "explicit empty ignore should be kept")
				assert.Equal(t, 2, cfg.Workers, "workers should match")
			},
		},
		{
			name:   "themerc_tries_yaml_first",
			file:   ".themerc",
			config: "root: web\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "web", cfg.Root, "root should match")
			},
		},
		{
			name:   "themerc_falls_back_to_hcl",
			file:   ".themerc",
			config: "root = \"web\"\nbackup = true\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "web", cfg.Root, "root should match")
				assert.True(t, cfg.Backup, "backup should be true")
			},
		},
		{
			name:        "unknown_yaml_field",
			file:        "config.yaml",
			config:      "root: src\nprovider: github\n",
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			file:        "config.json",
			config:      `{"destination": "x"}`,
			errContains: "parsing JSON",
		},
		{
			name:        "extension_without_dot",
			file:        "config.yaml",
			config:      "extension: tsx\n",
			errContains: "extension failed validation for tag 'startswith'",
		},
		{
			name:        "negative_workers",
			file:        "config.yaml",
			config:      "workers: -1\n",
			errContains: "workers failed validation for tag 'gte'",
		},
		{
			name:        "invalid_ignore_glob",
			file:        "config.yaml",
			config:      "ignore:\n  - \"[unterminated\"\n",
			errContains: "failed validation for tag 'glob'",
		},
		{
			name: "replacement_without_from",
			file: "config.yaml",
			config: `
rules:
  replacements:
    - to: x
      file_filter_glob: "*"
`,
			errContains: "from_text is required",
		},
		{
			name:        "unsupported_extension",
			file:        "config.toml",
			config:      "root = 'src'\n",
			errContains: "unsupported file extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.config)

			cfg, err := LoadConfig(testContext(t), path)
			if tt.errContains != "" {
				require.Error(t, err, "expected error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "unexpected error")
			require.NotNil(t, cfg, "config should not be nil")
			assert.Equal(t, path, cfg.Location(), "location should be recorded")
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := LoadConfig(testContext(t), filepath.Join(t.TempDir(), "missing.hcl"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_FormatsAgree(t *testing.T) {
	ctx := testContext(t)

	hclCfg, err := LoadConfig(ctx, writeConfig(t, "a.hcl", "root = \"src\"\nasync = true\nworkers = 3\nexclude = [\"ThemeContext\"]\n"))
	require.NoError(t, err)
	yamlCfg, err := LoadConfig(ctx, writeConfig(t, "a.yaml", "root: src\nasync: true\nworkers: 3\nexclude: [ThemeContext]\n"))
	require.NoError(t, err)
	jsonCfg, err := LoadConfig(ctx, writeConfig(t, "a.json", `{"root":"src","async":true,"workers":3,"exclude":["ThemeContext"]}`))
	require.NoError(t, err)

	hclCfg.location, yamlCfg.location, jsonCfg.location = "", "", ""
	assert.Equal(t, hclCfg, yamlCfg, "hcl and yaml should load to the same value")
	assert.Equal(t, hclCfg, jsonCfg, "hcl and json should load to the same value")
}

func TestLoad_HCLEnvironment(t *testing.T) {
	t.Setenv("THEMERC_TEST_ROOT", "/srv/app/src")

	cfg, err := LoadConfig(testContext(t), writeConfig(t, "env.hcl", "root = env.THEMERC_TEST_ROOT\n"))
	require.NoError(t, err)
	assert.Equal(t, "/srv/app/src", cfg.Root)
}

func TestValidate(t *testing.T) {
	ctx := testContext(t)

	t.Run("nil_config", func(t *testing.T) {
		require.Error(t, Validate(ctx, nil))
	})

	t.Run("default_is_valid", func(t *testing.T) {
		require.NoError(t, Validate(ctx, Default()))
	})

	t.Run("cleans_root", func(t *testing.T) {
		cfg := Default()
		cfg.Root = "app/./src/"
		require.NoError(t, Validate(ctx, cfg))
		assert.Equal(t, "app/src", cfg.Root)
	})

	t.Run("glob_extension_rejected", func(t *testing.T) {
		cfg := Default()
		cfg.Extension = ".*"
		err := Validate(ctx, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "extension failed validation for tag 'excludesall'")
	})

	t.Run("empty_exclude_entry", func(t *testing.T) {
		cfg := Default()
		cfg.Exclude = []string{""}
		err := Validate(ctx, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exclude[0] failed validation for tag 'required'")
	})
}

func TestConfig_SelectorOptions(t *testing.T) {
	cfg := Default()
	opts := cfg.SelectorOptions()
	assert.Equal(t, DefaultRoot, opts.Root)
	assert.Equal(t, DefaultExtension, opts.Extension)
	assert.Equal(t, DefaultExclude, opts.Exclude)
	assert.Equal(t, DefaultIgnore, opts.Ignore)
}

func TestConfig_String(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "src/**/*.tsx (exclude ThemeContext,AccountScreen, sync)", cfg.String())

	cfg.Async = true
	cfg.Workers = 8
	assert.Contains(t, cfg.String(), "async/8")
}
