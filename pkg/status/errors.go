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

package status

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// 💥 FileSystemError reports a failed read, write or traversal of a path
type FileSystemError struct {
	Op   string // read, write, backup, restore, walk
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error {
	return e.Err
}

// 🏭 NewFileSystemError wraps err with the operation and path that caused it
func NewFileSystemError(op, path string, err error) error {
	return errors.WithStack(&FileSystemError{Op: op, Path: path, Err: err})
}

// IsFileSystemError reports whether err carries a *FileSystemError
func IsFileSystemError(err error) bool {
	var fsErr *FileSystemError
	return errors.As(err, &fsErr)
}
