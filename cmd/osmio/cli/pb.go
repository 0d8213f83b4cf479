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

package cli

import (
	"fmt"
	"io"
	"os"

	pb "gopkg.in/cheggaaa/pb.v1"
)

// progressBar is an io.Reader with an associated ProgressBar.  Closing this
// instance clears the terminal line of progress output.
type progressBar struct {
	r   io.Reader
	bar *pb.ProgressBar
}

// WrapInput wraps a reader with a ProgressBar on stderr that tracks the
// bytes read relative to total.  A total of zero or less means the size is
// unknown and the reader is returned unwrapped.
func WrapInput(r io.Reader, total int64) io.ReadCloser {
	if total <= 0 {
		return io.NopCloser(r)
	}

	bar := pb.New(int(total)).SetUnits(pb.U_BYTES_DEC).SetWidth(79)
	bar.Output = os.Stderr
	bar.Start()

	return progressBar{
		r:   bar.NewProxyReader(r),
		bar: bar,
	}
}

// Read implements io.Reader.Read by simple delegation.
func (p progressBar) Read(b []byte) (int, error) {
	return p.r.Read(b)
}

// Close clears the terminal line of progress output.  The wrapped reader is
// not closed; its owner closes it.
func (p progressBar) Close() error {

	// make sure newline is not printed by Finish()
	p.bar.Output = nil
	p.bar.NotPrint = true

	p.bar.Finish()

	fmt.Fprintf(os.Stderr, "\033[2K\r") // clear status bar

	return nil
}
