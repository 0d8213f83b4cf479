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

// Package filter spawns external filter programs and wires them to one end
// of a pipe.  Filters decompress, compress, or fetch data on behalf of the
// process; the peer end of the pipe is owned by the filter, which is
// expected to close it and exit once all data has been consumed or
// produced.
package filter

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Direction states which way bytes flow through the pipe, from the point of
// view of the current process.
type Direction int

const (
	// Read means the current process reads the filter's output.
	Read Direction = iota

	// Write means the current process writes the filter's input.
	Write
)

// ErrPipe wraps pipe-creation failures so callers can classify them as
// system errors rather than file errors.
var ErrPipe = errors.New("cannot create pipe")

// Endpoint is the current process's end of a filter pipeline: the pipe
// descriptor it owns, plus the handle needed to reap the filter process.
type Endpoint struct {
	// File is the pipe end owned by the current process.  The filter owns
	// the opposite end.
	File *os.File

	cmd      *exec.Cmd
	startErr error
}

// Spawn starts the filter program connected to a fresh pipe.
//
// For the Read direction the filter is invoked with the filename as its
// sole argument and its standard output feeds the returned endpoint; its
// standard input and standard error come from and go to the null device.
// For the Write direction the filter is invoked with no arguments, reads
// the returned endpoint from its standard input, and its standard output is
// the named file, created or truncated.
//
// A program that cannot be executed at all does not fail Spawn; the failure
// is reported by Wait, mirroring how a forked child's failed exec is only
// visible in its exit status.
func Spawn(program, filename string, dir Direction) (*Endpoint, error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPipe, err)
	}

	var cmd *exec.Cmd

	var parent, child *os.File

	var out *os.File

	switch dir {
	case Read:
		cmd = exec.Command(program, filename)
		cmd.Stdout = pw
		parent, child = pr, pw

	case Write:
		if filename == "" {
			out = os.Stdout
		} else {
			out, err = os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
			if err != nil {
				pr.Close()
				pw.Close()

				return nil, err
			}
		}

		cmd = exec.Command(program)
		cmd.Stdin = pr
		cmd.Stdout = out
		parent, child = pw, pr
	}

	// stderr is deliberately discarded; a nil Stderr is the null device.

	startErr := cmd.Start()

	// The filter holds duplicates of these now; keeping them open here
	// would keep the pipe from ever signaling end-of-stream.
	child.Close()

	if out != nil && out != os.Stdout {
		out.Close()
	}

	if startErr != nil {
		cmd = nil
	}

	return &Endpoint{File: parent, cmd: cmd, startErr: startErr}, nil
}

// Wait blocks until the filter process has exited and reports its outcome.
// A filter that could not be started, exited non-zero, or was terminated by
// a signal yields an error.  Wait is a no-op after the first call.
func (ep *Endpoint) Wait() error {
	if ep.startErr != nil {
		err := ep.startErr
		ep.startErr = nil

		return err
	}

	if ep.cmd == nil {
		return nil
	}

	err := ep.cmd.Wait()
	ep.cmd = nil

	return err
}
