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

	"github.com/walteh/themerc/pkg/config"
	"github.com/walteh/themerc/pkg/rewrite"
	"github.com/walteh/themerc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a runnable unit of work
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains configuration for an operation
type Options struct {
	// Config supplies the root, selection rules and concurrency settings
	Config *config.Config
	// Engine is built from Config.RewriteRules when nil
	Engine *rewrite.Engine
	// Files reads and writes the migrated files
	Files status.FileManager
	// Reporter collects one entry per qualifying file
	Reporter status.Reporter
	// DryRun computes patches without writing
	DryRun bool
}

// 🏗️ BaseOperation holds what every operation needs
type BaseOperation struct {
	Config   *config.Config
	Engine   *rewrite.Engine
	Files    status.FileManager
	Reporter status.Reporter
	DryRun   bool
}

// 🏭 NewBaseOperation checks opts and fills in the engine
func NewBaseOperation(opts Options) (BaseOperation, error) {
	if opts.Config == nil {
		return BaseOperation{}, errors.Errorf("config is required")
	}
	if opts.Files == nil {
		return BaseOperation{}, errors.Errorf("file manager is required")
	}
	if opts.Reporter == nil {
		return BaseOperation{}, errors.Errorf("reporter is required")
	}

	engine := opts.Engine
	if engine == nil {
		var err error
		engine, err = rewrite.New(opts.Config.RewriteRules())
		if err != nil {
			return BaseOperation{}, errors.Errorf("creating engine: %w", err)
		}
	}

	return BaseOperation{
		Config:   opts.Config,
		Engine:   engine,
		Files:    opts.Files,
		Reporter: opts.Reporter,
		DryRun:   opts.DryRun,
	}, nil
}
