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
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"

	"m4o.io/osmio/internal/filter"
)

// Transform adapts a resolved target into a byte stream for one open
// direction.  The default implementation drives an external filter program
// over a pipe; in-process implementations exist for gzip and xz.
type Transform interface {
	// OpenInput returns a reader of decoded bytes for the named target.
	OpenInput(filename string) (io.ReadCloser, error)

	// OpenOutput returns a writer of decoded bytes for the named target.
	OpenOutput(filename string) (io.WriteCloser, error)
}

// execTransform runs an external filter program connected by a pipe.  The
// returned stream's Close blocks until the filter has exited and reports a
// non-zero or abnormal exit as an IOError.
type execTransform struct {
	decompress string
	compress   string
}

func (t execTransform) OpenInput(filename string) (io.ReadCloser, error) {
	ep, err := filter.Spawn(t.decompress, filename, filter.Read)
	if err != nil {
		return nil, spawnError(filename, err)
	}

	return &pipeStream{ep: ep}, nil
}

func (t execTransform) OpenOutput(filename string) (io.WriteCloser, error) {
	ep, err := filter.Spawn(t.compress, filename, filter.Write)
	if err != nil {
		return nil, spawnError(filename, err)
	}

	return &pipeStream{ep: ep}, nil
}

func spawnError(filename string, err error) error {
	if errors.Is(err, filter.ErrPipe) {
		return &SystemError{Op: "spawn filter", Err: err}
	}

	return &IOError{Op: "open failed", Filename: filename, Err: err}
}

// pipeStream is the parent-side view of a filter pipeline.
type pipeStream struct {
	ep *filter.Endpoint
}

func (p *pipeStream) Read(b []byte) (int, error) {
	return p.ep.File.Read(b)
}

func (p *pipeStream) Write(b []byte) (int, error) {
	return p.ep.File.Write(b)
}

// Close releases the pipe end, which signals end-of-stream to the filter,
// then blocks until the filter has exited.
func (p *pipeStream) Close() error {
	cerr := p.ep.File.Close()

	if err := p.ep.Wait(); err != nil {
		return &IOError{Op: "subprocess returned error", Err: err}
	}

	return cerr
}

// gzipTransform codes gzip streams in-process instead of spawning gzcat or
// gzip.
type gzipTransform struct{}

func (gzipTransform) OpenInput(filename string) (io.ReadCloser, error) {
	f, err := openInputFile(filename)
	if err != nil {
		return nil, err
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()

		return nil, &IOError{Op: "open failed", Filename: filename, Err: err}
	}

	return &stackedStream{rd: zr, closers: []io.Closer{zr, f}}, nil
}

func (gzipTransform) OpenOutput(filename string) (io.WriteCloser, error) {
	f, err := openOutputFile(filename)
	if err != nil {
		return nil, err
	}

	zw := gzip.NewWriter(f)

	return &stackedStream{wr: zw, closers: []io.Closer{zw, f}}, nil
}

// xzTransform codes xz streams in-process instead of spawning xzcat or xz.
type xzTransform struct{}

func (xzTransform) OpenInput(filename string) (io.ReadCloser, error) {
	f, err := openInputFile(filename)
	if err != nil {
		return nil, err
	}

	xr, err := xz.NewReader(f)
	if err != nil {
		f.Close()

		return nil, &IOError{Op: "open failed", Filename: filename, Err: err}
	}

	return &stackedStream{rd: xr, closers: []io.Closer{f}}, nil
}

func (xzTransform) OpenOutput(filename string) (io.WriteCloser, error) {
	f, err := openOutputFile(filename)
	if err != nil {
		return nil, err
	}

	xw, err := xz.NewWriter(f)
	if err != nil {
		f.Close()

		return nil, &IOError{Op: "open failed", Filename: filename, Err: err}
	}

	return &stackedStream{wr: xw, closers: []io.Closer{xw, f}}, nil
}

// inProcessTransform returns the in-process codec matching the encoding's
// filter programs, if one exists.  bzip2 has no in-process writer, so bzip2
// encodings always go through the external filter.
func inProcessTransform(e Encoding) (Transform, bool) {
	switch e.Decompress {
	case "gzcat":
		return gzipTransform{}, true
	case "xzcat":
		return xzTransform{}, true
	default:
		return nil, false
	}
}

// stackedStream is a coding layer over a file; Close tears the layers down
// in order.
type stackedStream struct {
	rd      io.Reader
	wr      io.Writer
	closers []io.Closer
}

func (s *stackedStream) Read(b []byte) (int, error) {
	return s.rd.Read(b)
}

func (s *stackedStream) Write(b []byte) (int, error) {
	return s.wr.Write(b)
}

func (s *stackedStream) Close() error {
	var first error

	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

type nopCloserReader struct {
	io.Reader
}

func (nopCloserReader) Close() error {
	return nil
}

type nopCloserWriter struct {
	io.Writer
}

func (nopCloserWriter) Close() error {
	return nil
}

// openInputFile opens the named file for reading; an empty filename is the
// process's standard input, which is never closed.
func openInputFile(filename string) (io.ReadCloser, error) {
	if filename == "" {
		return nopCloserReader{os.Stdin}, nil
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, &IOError{Op: "open failed", Filename: filename, Err: err}
	}

	return f, nil
}

// openOutputFile opens the named file for writing, creating or truncating
// it; an empty filename is the process's standard output, which is never
// closed.
func openOutputFile(filename string) (io.WriteCloser, error) {
	if filename == "" {
		return nopCloserWriter{os.Stdout}, nil
	}

	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return nil, &IOError{Op: "open failed", Filename: filename, Err: err}
	}

	return f, nil
}
