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
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/themerc/cmd/themerc/opts"
	"github.com/walteh/themerc/pkg/config"
	"github.com/walteh/themerc/pkg/log"
	"github.com/walteh/themerc/pkg/operation"
	"github.com/walteh/themerc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrFilesFailed is returned by migrate when any file could not be processed
	ErrFilesFailed = errors.Base("files failed")
	// ErrMigrationPending is returned by check when any file still needs work
	ErrMigrationPending = errors.Base("migration pending")
)

// runMigration executes the migrate operation. A positional root overrides
// the configured one.
func runMigration(ctx context.Context, o *opts.RootOpts, args []string, dryRun bool) (status.Summary, error) {
	if o.Config == nil {
		return status.Summary{}, errors.New("options not initialized")
	}

	if len(args) > 0 {
		o.Config.Root = args[0]
		if err := config.Validate(ctx, o.Config); err != nil {
			return status.Summary{}, errors.Errorf("validating config: %w", err)
		}
	}

	zerolog.Ctx(ctx).Debug().Str("config", o.Config.String()).Bool("dry_run", dryRun).Msg("running migration")

	if loc := o.Config.Location(); loc != "" {
		o.Logger.Infof("using config %s", loc)
	}
	ctx = log.NewContext(ctx, o.Logger)

	mgr := status.New()
	op, err := operation.NewMigrateOperation(operation.Options{
		Config:   o.Config,
		Files:    mgr,
		Reporter: mgr,
		DryRun:   dryRun,
	})
	if err != nil {
		return status.Summary{}, errors.Errorf("creating operation: %w", err)
	}

	if err := op.Execute(ctx); err != nil {
		return status.Summary{}, errors.Errorf("running migration: %w", err)
	}

	summary := mgr.Summary(ctx)
	o.Logger.LogNewline()
	o.Logger.Info(status.NewDefaultFileFormatter().FormatSummary(summary, dryRun))
	return summary, nil
}
