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
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/themerc/pkg/log"
	"github.com/walteh/themerc/pkg/rewrite"
	"github.com/walteh/themerc/pkg/selector"
	"github.com/walteh/themerc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎨 NewMigrateOperation creates the operation that rewrites every qualifying
// file under the configured root. With DryRun set it only computes patches.
func NewMigrateOperation(opts Options) (Operation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return &migrateOperation{BaseOperation: base}, nil
}

// 🎨 migrateOperation implements the theme migration
type migrateOperation struct {
	BaseOperation
}

// 🏃 Execute walks the root and processes each candidate, then renders the
// outcomes through the console logger carried by ctx. Only a walk failure is
// returned; per-file problems end up in the reporter.
func (op *migrateOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().Str("root", op.Config.Root).Bool("dry_run", op.DryRun).Logger()
	ctx = logger.WithContext(ctx)

	console := log.FromContext(ctx)
	console.StartRun(ctx, op.Config.Root, op.DryRun)

	runner := NewRunner(op.Config.Async, op.Config.Workers)
	walkErr := runner.Each(ctx, selector.Walk(ctx, op.Config.SelectorOptions()), op.processFile)

	for _, entry := range op.Reporter.Entries(ctx) {
		console.LogFileOperation(ctx, entry)
		console.LogPatch(entry.Path, entry.Patch)
	}
	console.EndRun(ctx, op.Reporter.Summary(ctx))

	if walkErr != nil {
		return errors.Errorf("walking %s: %w", op.Config.Root, walkErr)
	}

	logger.Debug().Int("files", op.Reporter.Summary(ctx).Total()).Msg("migration complete")
	return nil
}

// 📄 processFile runs the passes over one file and tracks the outcome. Files
// without the marker produce no entry.
func (op *migrateOperation) processFile(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}

	content, err := op.Files.ReadFile(ctx, path)
	if err != nil {
		op.Reporter.Track(ctx, status.Entry{Path: path, Outcome: status.OutcomeFailed, Diagnostic: err})
		return
	}

	res, err := op.Engine.Rewrite(ctx, path, string(content))
	if err != nil {
		op.Reporter.Track(ctx, status.Entry{Path: path, Outcome: status.OutcomeFailed, Diagnostic: err})
		return
	}
	if !res.Applicable {
		return
	}

	entry := newEntry(res)

	if res.Changed() {
		if op.DryRun {
			entry.Patch = Patch(path, res.Original, res.Content)
		} else if err := op.write(ctx, path, []byte(res.Content)); err != nil {
			entry.Outcome = status.OutcomeFailed
			entry.Diagnostic = err
		} else {
			entry.Written = true
		}
	}

	op.Reporter.Track(ctx, entry)
}

// write stores content, keeping a backup first when configured. A failed
// write puts the backup back.
func (op *migrateOperation) write(ctx context.Context, path string, content []byte) error {
	if op.Config.Backup {
		if err := op.Files.BackupFile(ctx, path); err != nil {
			return err
		}
	}

	if err := op.Files.WriteFileAtomic(ctx, path, content); err != nil {
		if op.Config.Backup {
			if rerr := op.Files.RestoreFile(ctx, path); rerr != nil {
				zerolog.Ctx(ctx).Error().Err(rerr).Str("path", path).Msg("restoring backup")
			}
		}
		return err
	}
	return nil
}

func newEntry(res *rewrite.Result) status.Entry {
	entry := status.Entry{
		Path:     res.Path,
		Changes:  res.Changes(),
		Size:     len(res.Content),
		Checksum: status.Checksum([]byte(res.Content)),
	}

	switch {
	case res.Diagnostic != nil:
		entry.Outcome = status.OutcomeDiagnostic
		entry.Diagnostic = res.Diagnostic
	case res.Changed():
		entry.Outcome = status.OutcomeRewritten
	default:
		entry.Outcome = status.OutcomeUnchanged
	}
	return entry
}
