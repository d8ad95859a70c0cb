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

// Package selector yields the candidate files of a migration.
package selector

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/themerc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var errStop = errors.Base("stop walking")

// 🔧 Options controls which files are yielded
type Options struct {
	Root      string   // Directory to walk
	Extension string   // Required file extension, e.g. ".tsx"
	Exclude   []string // Base names (with or without extension) never yielded
	Ignore    []string // doublestar patterns on the slash path relative to Root
}

// 🚶 Walk returns a lazy sequence of candidate paths under opts.Root. A root
// that is missing or not a directory yields a single FileSystemError. The
// sequence walks the tree again each time it is ranged over.
func Walk(ctx context.Context, opts Options) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		info, err := os.Stat(opts.Root)
		if err != nil {
			yield("", status.NewFileSystemError("walk", opts.Root, err))
			return
		}
		if !info.IsDir() {
			yield("", status.NewFileSystemError("walk", opts.Root, errors.New("not a directory")))
			return
		}

		logger := zerolog.Ctx(ctx)
		pattern := "**/*" + opts.Extension

		err = doublestar.GlobWalk(os.DirFS(opts.Root), pattern, func(rel string, d fs.DirEntry) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if !opts.Selected(rel) {
				logger.Debug().Str("path", rel).Msg("file excluded")
				return nil
			}
			if !yield(filepath.Join(opts.Root, filepath.FromSlash(rel)), nil) {
				return errStop
			}
			return nil
		}, doublestar.WithFailOnIOErrors())

		switch {
		case err == nil, errors.Is(err, errStop):
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			yield("", err)
		default:
			yield("", status.NewFileSystemError("walk", opts.Root, err))
		}
	}
}

// Selected reports whether a slash path relative to the root passes the
// extension, exclusion and ignore rules.
func (o Options) Selected(rel string) bool {
	if !strings.HasSuffix(rel, o.Extension) {
		return false
	}

	base := filepath.Base(filepath.FromSlash(rel))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	for _, name := range o.Exclude {
		if name == base || name == stem {
			return false
		}
	}

	for _, pattern := range o.Ignore {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return false
		}
	}
	return true
}
