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
package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/themerc/cmd/themerc/opts"
	"gitlab.com/tozd/go/errors"
)

// NewMigrateCmd creates a new migrate command
func NewMigrateCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [root]",
		Short: "Rewrite components to read colors from the theme hook",
		Long: `Migrate walks the root and, for every component importing the static colors
module, it will:
1. Replace the colors import with the useTheme import
2. Inject the useTheme call (and getStyles call) into the exported component
3. Turn the static style table into a getStyles factory

Files are written in place. Use --backup to keep a .bak copy.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "migrate").Logger().WithContext(cmd.Context())

			opts.Logger.Header("migrating theme imports")

			summary, err := runMigration(ctx, opts, args, false)
			if err != nil {
				return err
			}

			if summary.Failed > 0 {
				opts.Logger.Errorf("%d of %d files failed", summary.Failed, summary.Total())
				return errors.Errorf("%w: %d", ErrFilesFailed, summary.Failed)
			}

			opts.Logger.Successf("%d files rewritten", summary.Rewritten)
			return nil
		},
	}

	return cmd
}
