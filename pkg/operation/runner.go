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
	"iter"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// 🏃 OperationRunner feeds paths to a per-file function
type OperationRunner struct {
	async   bool
	workers int
}

// 🏗️ NewRunner creates a new runner. Zero workers means one per CPU.
func NewRunner(async bool, workers int) *OperationRunner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &OperationRunner{
		async:   async,
		workers: workers,
	}
}

// 🏃 Each calls fn for every path in paths. Per-file failures are fn's
// business; Each returns only the first error the sequence yields.
func (r *OperationRunner) Each(ctx context.Context, paths iter.Seq2[string, error], fn func(ctx context.Context, path string)) error {
	if r.async {
		return r.eachAsync(ctx, paths, fn)
	}
	return r.eachSync(ctx, paths, fn)
}

// 🔄 eachSync processes paths in walk order
func (r *OperationRunner) eachSync(ctx context.Context, paths iter.Seq2[string, error], fn func(ctx context.Context, path string)) error {
	for path, err := range paths {
		if err != nil {
			return err
		}
		fn(ctx, path)
	}
	return nil
}

// ⚡ eachAsync processes paths on at most r.workers goroutines
func (r *OperationRunner) eachAsync(ctx context.Context, paths iter.Seq2[string, error], fn func(ctx context.Context, path string)) error {
	zerolog.Ctx(ctx).Debug().Int("workers", r.workers).Msg("running async")

	var g errgroup.Group
	g.SetLimit(r.workers)

	var walkErr error
	for path, err := range paths {
		if err != nil {
			walkErr = err
			break
		}
		g.Go(func() error {
			fn(ctx, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return walkErr
}
