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
	"errors"
	"io"
	"strings"
)

// ErrAlreadyOpen is returned when a File is opened a second time.
var ErrAlreadyOpen = errors.New("file is already open")

// File describes an OpenStreetMap file: its filename, kind, and encoding.
// A File is also the handle on the opened resource; OpenForInput and
// OpenForOutput attach a byte stream, possibly routed through an external
// filter process, and Close reconciles both the stream and the filter.
//
// An empty filename means stdin for input and stdout for output.
type File struct {
	filename string
	kind     Kind
	encoding Encoding
	inProc   bool

	in  io.ReadCloser
	out io.WriteCloser
}

// NewFile creates a File with kind and encoding resolved from the
// filename's suffix, then adjusted by the given options.
func NewFile(filename string, opts ...FileOption) *File {
	target := Resolve(filename)

	f := &File{
		filename: target.Filename,
		kind:     target.Kind,
		encoding: target.Encoding,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Filename returns the file's name; empty means stdin or stdout.
func (f *File) Filename() string {
	return f.filename
}

// SetFilename replaces the file's name without re-resolving kind or
// encoding.  "-" normalizes to the empty name.
func (f *File) SetFilename(filename string) {
	if filename == "-" {
		filename = ""
	}

	f.filename = filename
}

// Kind returns the file's logical kind.
func (f *File) Kind() Kind {
	return f.kind
}

// SetKind overrides the resolved kind.
func (f *File) SetKind(kind Kind) {
	f.kind = kind
}

// SetKindToken overrides the resolved kind from a kind token such as "osm",
// "history", or "osc".
func (f *File) SetKindToken(token string) error {
	kind, err := ParseKind(token)
	if err != nil {
		return err
	}

	f.kind = kind

	return nil
}

// Encoding returns the file's encoding.
func (f *File) Encoding() Encoding {
	return f.encoding
}

// SetEncoding overrides the resolved encoding.
func (f *File) SetEncoding(encoding Encoding) {
	f.encoding = encoding
}

// SetEncodingToken overrides the resolved encoding from an encoding token
// such as "pbf", "xml", or "gz".
func (f *File) SetEncodingToken(token string) error {
	encoding, err := ParseEncoding(token)
	if err != nil {
		return err
	}

	f.encoding = encoding

	return nil
}

// FilenameWithoutSuffix returns the filename with everything from the first
// '.' of its last path element stripped.
func (f *File) FilenameWithoutSuffix() string {
	base := f.filename

	var dir string

	if n := strings.LastIndexByte(base, '/'); n >= 0 {
		dir, base = f.filename[:n+1], f.filename[n+1:]
	}

	if n := strings.IndexByte(base, '.'); n >= 0 {
		base = base[:n]
	}

	return dir + base
}

// FilenameWithDefaultSuffix returns the filename with the canonical suffix
// for the file's kind and encoding.
func (f *File) FilenameWithDefaultSuffix() string {
	return f.FilenameWithoutSuffix() + f.kind.Suffix() + f.encoding.Suffix
}

// Clone returns an unopened copy of the file.  Only the resolved target is
// copied; the clone never shares an open stream or filter process, so two
// handles cannot race on the same resource.
func (f *File) Clone() *File {
	return &File{
		filename: f.filename,
		kind:     f.kind,
		encoding: f.encoding,
		inProc:   f.inProc,
	}
}

// OpenForInput attaches the read stream.  If the encoding specifies a
// decompression filter it is routed through that filter; a remote URL is
// fetched by curl; otherwise the file is opened directly.
func (f *File) OpenForInput() error {
	if f.in != nil || f.out != nil {
		return &IOError{Op: "open failed", Filename: f.filename, Err: ErrAlreadyOpen}
	}

	switch {
	case f.encoding.Decompress != "":
		in, err := f.inputTransform().OpenInput(f.filename)
		if err != nil {
			return err
		}

		f.in = in

	case isRemoteURL(f.filename):
		in, err := execTransform{decompress: fetchProgram}.OpenInput(f.filename)
		if err != nil {
			return err
		}

		f.in = in

	default:
		in, err := openInputFile(f.filename)
		if err != nil {
			return err
		}

		f.in = in
	}

	return nil
}

// OpenForOutput attaches the write stream.  If the encoding specifies a
// compression filter it is routed through that filter; otherwise the file
// is created or truncated directly.
func (f *File) OpenForOutput() error {
	if f.in != nil || f.out != nil {
		return &IOError{Op: "open failed", Filename: f.filename, Err: ErrAlreadyOpen}
	}

	if f.encoding.Compress != "" {
		out, err := f.outputTransform().OpenOutput(f.filename)
		if err != nil {
			return err
		}

		f.out = out

		return nil
	}

	out, err := openOutputFile(f.filename)
	if err != nil {
		return err
	}

	f.out = out

	return nil
}

// Reader returns the stream attached by OpenForInput, or nil.
func (f *File) Reader() io.Reader {
	if f.in == nil {
		return nil
	}

	return f.in
}

// Writer returns the stream attached by OpenForOutput, or nil.
func (f *File) Writer() io.Writer {
	if f.out == nil {
		return nil
	}

	return f.out
}

// Close releases the attached stream.  When a filter process is involved,
// Close blocks until it has exited and reports a non-zero or abnormal exit
// as an IOError.  Close is idempotent; calling it on an unopened or
// already-closed File is a no-op.
func (f *File) Close() error {
	var err error

	if f.in != nil {
		err = f.in.Close()
		f.in = nil
	}

	if f.out != nil {
		if cerr := f.out.Close(); cerr != nil && err == nil {
			err = cerr
		}

		f.out = nil
	}

	return err
}

// fetchProgram reads a URL and writes its contents to standard output.  It
// must be installed for remote input to work.
const fetchProgram = "curl"

func (f *File) inputTransform() Transform {
	if f.inProc {
		if t, ok := inProcessTransform(f.encoding); ok {
			return t
		}
	}

	return execTransform{decompress: f.encoding.Decompress}
}

func (f *File) outputTransform() Transform {
	if f.inProc {
		if t, ok := inProcessTransform(f.encoding); ok {
			return t
		}
	}

	return execTransform{compress: f.encoding.Compress}
}
