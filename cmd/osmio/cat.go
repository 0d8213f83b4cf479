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

package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"m4o.io/osmio"
	"m4o.io/osmio/cmd/osmio/cli"
)

const defaultCopyBuffer = 64 * 1024

var (
	catInProcess bool
	catBufSize   uint64
)

func init() {
	RootCmd.AddCommand(catCmd)
	catCmd.Flags().BoolVarP(&catInProcess, "in-process", "p", false,
		"decode and encode gzip/xz in-process instead of via filter programs")
	catCmd.Flags().VarP(cli.NewByteSizeValue(defaultCopyBuffer, &catBufSize), "buffer", "b",
		"copy buffer size")
}

var catCmd = &cobra.Command{
	Use:   "cat <source> [<destination>]",
	Short: "Copy an OSM file, decompressing and recompressing as needed",
	Long: "Copy an OSM file or URL to a destination, routing each side through " +
		"its encoding's compression filter or fetch program",
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		dst := "-"
		if len(args) == 2 {
			dst = args[1]
		}

		var opts []osmio.FileOption
		if catInProcess {
			opts = append(opts, osmio.WithInProcessCodecs())
		}

		in := osmio.NewFile(args[0], opts...)
		if err := in.OpenForInput(); err != nil {
			log.Fatal(err)
		}

		out := osmio.NewFile(dst, opts...)
		if err := out.OpenForOutput(); err != nil {
			log.Fatal(err)
		}

		reader := cli.WrapInput(in.Reader(), sizeOf(in))

		buf := make([]byte, catBufSize)
		if _, err := io.CopyBuffer(out.Writer(), reader, buf); err != nil {
			log.Fatal(err)
		}

		if err := reader.Close(); err != nil {
			log.Fatal(err)
		}

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		if err := out.Close(); err != nil {
			log.Fatal(err)
		}
	},
}

// sizeOf reports the number of bytes the copy will read, or zero when that
// is unknowable up front (stdin, URLs, and filtered encodings, where the
// decoded size differs from the size on disk).
func sizeOf(f *osmio.File) int64 {
	if f.Filename() == "" || f.Encoding().Compressed() {
		return 0
	}

	fi, err := os.Stat(f.Filename())
	if err != nil || !fi.Mode().IsRegular() {
		return 0
	}

	return fi.Size()
}
