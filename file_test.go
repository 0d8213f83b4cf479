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

package osmio_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmio"
)

func TestOpenForOutputDirect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.osm")

	f := osmio.NewFile(path)
	require.NoError(t, f.OpenForOutput())

	_, err := f.Writer().Write([]byte("<osm/>"))
	assert.NoError(t, err)

	require.NoError(t, f.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<osm/>", string(b))

	// Close is idempotent
	assert.NoError(t, f.Close())
}

func TestOpenForInputDirect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.osm")
	require.NoError(t, os.WriteFile(path, []byte("<osm/>"), 0o666))

	f := osmio.NewFile(path)
	require.NoError(t, f.OpenForInput())

	b, err := io.ReadAll(f.Reader())
	assert.NoError(t, err)
	assert.Equal(t, "<osm/>", string(b))

	assert.NoError(t, f.Close())
}

func TestOpenForInputMissingFile(t *testing.T) {
	f := osmio.NewFile(filepath.Join(t.TempDir(), "nope.osm"))

	err := f.OpenForInput()

	var ioErr *osmio.IOError

	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, f.Filename(), ioErr.Filename)
}

func TestOpenTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.osm")

	f := osmio.NewFile(path)
	require.NoError(t, f.OpenForOutput())

	defer f.Close()

	assert.ErrorIs(t, f.OpenForOutput(), osmio.ErrAlreadyOpen)
	assert.ErrorIs(t, f.OpenForInput(), osmio.ErrAlreadyOpen)
}

func TestCloneIsUnopened(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.osm")

	f := osmio.NewFile(path)
	require.NoError(t, f.OpenForOutput())

	clone := f.Clone()
	assert.Equal(t, f.Filename(), clone.Filename())
	assert.Equal(t, f.Kind(), clone.Kind())
	assert.Equal(t, f.Encoding(), clone.Encoding())
	assert.Nil(t, clone.Reader())
	assert.Nil(t, clone.Writer())

	// closing the clone must not disturb the original
	assert.NoError(t, clone.Close())

	_, err := f.Writer().Write([]byte("x"))
	assert.NoError(t, err)
	assert.NoError(t, f.Close())
}

func TestFilterExitZero(t *testing.T) {
	f := osmio.NewFile("whatever",
		osmio.WithEncoding(osmio.Encoding{Format: osmio.FormatXML, Decompress: "true", Compress: "true"}))
	require.NoError(t, f.OpenForInput())

	b, err := io.ReadAll(f.Reader())
	assert.NoError(t, err)
	assert.Empty(t, b)

	assert.NoError(t, f.Close())
}

func TestFilterExitNonZero(t *testing.T) {
	f := osmio.NewFile("whatever",
		osmio.WithEncoding(osmio.Encoding{Format: osmio.FormatXML, Decompress: "false", Compress: "false"}))
	require.NoError(t, f.OpenForInput())

	_, err := io.ReadAll(f.Reader())
	assert.NoError(t, err)

	err = f.Close()

	var ioErr *osmio.IOError

	require.True(t, errors.As(err, &ioErr))

	// the failure is reported once; a second close is a no-op
	assert.NoError(t, f.Close())
}

func TestFilterMissingProgramSurfacesAtClose(t *testing.T) {
	f := osmio.NewFile("whatever",
		osmio.WithEncoding(osmio.Encoding{Format: osmio.FormatXML, Decompress: "no-such-filter-program"}))

	require.NoError(t, f.OpenForInput())

	_, err := io.ReadAll(f.Reader())
	assert.NoError(t, err)

	assert.Error(t, f.Close())
}

func TestFilterWriteSide(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.osm")

	// "cat" stands in for a compression filter; bytes pass unchanged
	f := osmio.NewFile(path,
		osmio.WithEncoding(osmio.Encoding{Format: osmio.FormatXML, Decompress: "cat", Compress: "cat"}))
	require.NoError(t, f.OpenForOutput())

	_, err := f.Writer().Write([]byte("<osm/>"))
	assert.NoError(t, err)

	require.NoError(t, f.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<osm/>", string(b))
}

func TestInProcessGzipRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.osm.gz")

	f := osmio.NewFile(path, osmio.WithInProcessCodecs())
	require.NoError(t, f.OpenForOutput())

	_, err := f.Writer().Write([]byte("<osm/>"))
	assert.NoError(t, err)
	require.NoError(t, f.Close())

	// the file on disk is a real gzip stream
	raw, err := os.Open(path)
	require.NoError(t, err)

	defer raw.Close()

	zr, err := gzip.NewReader(raw)
	require.NoError(t, err)

	b, err := io.ReadAll(zr)
	assert.NoError(t, err)
	assert.Equal(t, "<osm/>", string(b))

	// and the read path decodes it back
	in := osmio.NewFile(path, osmio.WithInProcessCodecs())
	require.NoError(t, in.OpenForInput())

	b, err = io.ReadAll(in.Reader())
	assert.NoError(t, err)
	assert.Equal(t, "<osm/>", string(b))
	assert.NoError(t, in.Close())
}

func TestInProcessXzRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.osm.xz")

	f := osmio.NewFile(path, osmio.WithInProcessCodecs())
	require.NoError(t, f.OpenForOutput())

	_, err := f.Writer().Write([]byte("<osm/>"))
	assert.NoError(t, err)
	require.NoError(t, f.Close())

	in := osmio.NewFile(path, osmio.WithInProcessCodecs())
	require.NoError(t, in.OpenForInput())

	b, err := io.ReadAll(in.Reader())
	assert.NoError(t, err)
	assert.Equal(t, "<osm/>", string(b))
	assert.NoError(t, in.Close())
}

func TestSetKindAndEncodingTokens(t *testing.T) {
	f := osmio.NewFile("data.osm")

	require.NoError(t, f.SetKindToken("history"))
	assert.Equal(t, osmio.History, f.Kind())

	require.NoError(t, f.SetEncodingToken("bz2"))
	assert.Equal(t, osmio.XMLbz2, f.Encoding())

	assert.Error(t, f.SetKindToken("bogus"))
	assert.Error(t, f.SetEncodingToken("zip"))
}
