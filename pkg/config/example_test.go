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
package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/themerc/pkg/config"
)

func ExampleLoadConfig_hcl() {
	ctx := context.Background()

	configHCL := `
root   = "src"
ignore = ["**/node_modules/**", "**/__generated__/**"]
async  = true

rules {
  replace {
    from             = "colors.textPrimary"
    to               = "colors.text"
    file_filter_glob = "**/screens/**"
  }
}
`

	dir, err := os.MkdirTemp("", "themerc-example")
	if err != nil {
		fmt.Printf("Error creating dir: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, ".themerc.hcl")
	if err := os.WriteFile(configPath, []byte(configHCL), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	cfg, err := config.LoadConfig(ctx, configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	fmt.Println(cfg.Root, cfg.Extension)
	fmt.Println(cfg.Exclude)
	fmt.Println(len(cfg.RewriteRules().Replacements), "replacement")
	// Output:
	// src .tsx
	// [ThemeContext AccountScreen]
	// 1 replacement
}
