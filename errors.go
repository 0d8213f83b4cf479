// Copyright 2026 the original author or authors.
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

package osmio

import (
	"fmt"
)

// SystemError reports a failed low-level system call, such as pipe or
// process creation.  This should normally not happen unless the system is
// out of resources.
type SystemError struct {
	Op  string
	Err error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SystemError) Unwrap() error {
	return e.Err
}

// IOError reports a failed I/O operation on a file, or a codec subprocess
// that terminated abnormally.
type IOError struct {
	Op       string
	Filename string
	Err      error
}

func (e *IOError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("%s %q: %v", e.Op, e.Filename, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ArgumentError reports a caller-supplied value that is not recognized,
// such as an unknown file kind or encoding token.
type ArgumentError struct {
	Msg   string
	Value string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %q", e.Msg, e.Value)
}

// WriteError reports a failure of the underlying document writer.  No
// partial output is guaranteed well-formed after a WriteError.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write failed: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// FileTypeError reports that a file's resolved kind differs from the kind a
// consumer expected.
type FileTypeError struct {
	Expected Kind
	Actual   Kind
}

func (e *FileTypeError) Error() string {
	return fmt.Sprintf("expected %s file, got %s", e.Expected, e.Actual)
}

// ExpectKind checks that the file's resolved kind matches the kind the
// caller is prepared to consume.
func ExpectKind(f *File, kind Kind) error {
	if f.Kind() != kind {
		return &FileTypeError{Expected: kind, Actual: f.Kind()}
	}

	return nil
}
