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

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [root]",
		Short: "Report components that still need migrating",
		Long: `Check runs the migration without writing anything and prints the patch each
file would receive. It exits non-zero when any file would change, carries a
diagnostic, or could not be read.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "check").Logger().WithContext(cmd.Context())

			opts.Logger.Header("checking theme imports")

			summary, err := runMigration(ctx, opts, args, true)
			if err != nil {
				return err
			}

			pending := summary.Rewritten + summary.Diagnostic + summary.Failed
			if pending > 0 {
				opts.Logger.Warningf("%d files need attention", pending)
				return errors.Errorf("%w: %d files", ErrMigrationPending, pending)
			}

			opts.Logger.Success("all components use the theme hook")
			return nil
		},
	}

	return cmd
}
