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

// FileOption configures how we set up a File.
type FileOption func(*File)

// WithKind overrides the kind resolved from the filename.
func WithKind(kind Kind) FileOption {
	return func(f *File) {
		f.kind = kind
	}
}

// WithEncoding overrides the encoding resolved from the filename.
func WithEncoding(encoding Encoding) FileOption {
	return func(f *File) {
		f.encoding = encoding
	}
}

// WithInProcessCodecs switches gzip and xz coding from external filter
// programs to in-process codecs.  bzip2 and URL fetch always use the
// external filter path.
func WithInProcessCodecs() FileOption {
	return func(f *File) {
		f.inProc = true
	}
}
