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
	"encoding/json"
	"fmt"
	"log"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/osmio"
)

var statJSON bool

// fileStat is what stat knows about a file without reading it.
type fileStat struct {
	Filename      string `json:"filename,omitempty"`
	Kind          string `json:"kind"`
	Format        string `json:"format"`
	Decompress    string `json:"decompress,omitempty"`
	Compress      string `json:"compress,omitempty"`
	DefaultSuffix string `json:"default_suffix"`
	Size          uint64 `json:"size,omitempty"`
}

func init() {
	RootCmd.AddCommand(statCmd)
	statCmd.Flags().BoolVarP(&statJSON, "json", "j", false, "format information in JSON")
}

var statCmd = &cobra.Command{
	Use:   "stat [<OSM file>]",
	Short: "Print the resolved kind and encoding of an OSM file",
	Long:  "Print the kind and encoding resolved from an OSM filename, without reading the file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filename := ""
		if len(args) == 1 {
			filename = args[0]
		}

		f := osmio.NewFile(filename)

		stat := fileStat{
			Filename:      f.Filename(),
			Kind:          f.Kind().String(),
			Format:        f.Encoding().Format.String(),
			Decompress:    f.Encoding().Decompress,
			Compress:      f.Encoding().Compress,
			DefaultSuffix: f.Kind().Suffix() + f.Encoding().Suffix,
		}

		if fi, err := os.Stat(f.Filename()); err == nil && fi.Mode().IsRegular() {
			stat.Size = uint64(fi.Size())
		}

		if statJSON {
			b, err := json.Marshal(stat)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println(string(b))

			return
		}

		fmt.Printf("Filename: %s\n", displayName(stat.Filename))
		fmt.Printf("Kind: %s\n", stat.Kind)
		fmt.Printf("Encoding: %s\n", f.Encoding())
		fmt.Printf("DefaultSuffix: %s\n", stat.DefaultSuffix)

		if stat.Decompress != "" {
			fmt.Printf("DecompressFilter: %s\n", stat.Decompress)
			fmt.Printf("CompressFilter: %s\n", stat.Compress)
		}

		if stat.Size > 0 {
			fmt.Printf("Size: %s\n", humanize.Bytes(stat.Size))
		}
	},
}

func displayName(filename string) string {
	if filename == "" {
		return "-"
	}

	return filename
}
