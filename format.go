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

// Package osmio models OpenStreetMap files in their several kinds and
// encodings, and provides a streaming XML writer for them.
//
// A file is described by its Kind (plain snapshot, full history, or
// changeset) and its Encoding (wire format plus optional compression
// layer).  Both are normally resolved from the filename suffix.  Encodings
// with a compression layer, and remote URLs, are routed through an external
// filter program connected by a pipe.
package osmio

import (
	"strings"
)

// Kind is the logical type of an OpenStreetMap file.
type Kind int

const (
	// Plain is a snapshot file with at most one version per entity.
	Plain Kind = iota

	// History is an archive that may carry multiple versions per entity.
	History

	// Change is a changeset file whose records represent edits.
	Change
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "osm"
	case History:
		return "history"
	case Change:
		return "change"
	default:
		return "unknown"
	}
}

// MultipleVersions reports whether files of this kind may contain more than
// one version of the same entity.
func (k Kind) MultipleVersions() bool {
	return k == History || k == Change
}

// Suffix returns the filename suffix associated with the kind.
func (k Kind) Suffix() string {
	switch k {
	case History:
		return ".osh"
	case Change:
		return ".osc"
	default:
		return ".osm"
	}
}

// ParseKind converts a kind token into a Kind.  The recognized tokens are
// "osm", "history", "osh", "change", and "osc".
func ParseKind(token string) (Kind, error) {
	switch token {
	case "osm":
		return Plain, nil
	case "history", "osh":
		return History, nil
	case "change", "osc":
		return Change, nil
	default:
		return Plain, &ArgumentError{Msg: "unknown OSM file kind", Value: token}
	}
}

// Format is the wire format of an OpenStreetMap file, independent of any
// compression layer.
type Format int

const (
	// FormatPBF is the compact binary format.
	FormatPBF Format = iota

	// FormatXML is the structured text format.
	FormatXML

	// FormatOPL is the line-oriented text format.
	FormatOPL
)

func (f Format) String() string {
	switch f {
	case FormatPBF:
		return "pbf"
	case FormatXML:
		return "xml"
	case FormatOPL:
		return "opl"
	default:
		return "unknown"
	}
}

// Encoding describes the wire format of a file together with its optional
// compression layer.  Decompress and Compress name the external filter
// programs used on the read and write paths; an empty name means the file
// is consumed or produced directly.  At most one of the two filters is
// active for a given open direction.
type Encoding struct {
	Format     Format
	Decompress string
	Compress   string
	Suffix     string
}

// The fixed set of encodings.  These are immutable values; they are only
// ever copied, never modified.
var (
	PBF    = Encoding{Format: FormatPBF, Suffix: ".pbf"}
	XML    = Encoding{Format: FormatXML}
	XMLgz  = Encoding{Format: FormatXML, Decompress: "gzcat", Compress: "gzip", Suffix: ".gz"}
	XMLbz2 = Encoding{Format: FormatXML, Decompress: "bzcat", Compress: "bzip2", Suffix: ".bz2"}
	XMLxz  = Encoding{Format: FormatXML, Decompress: "xzcat", Compress: "xz", Suffix: ".xz"}
	OPL    = Encoding{Format: FormatOPL, Suffix: ".opl"}
	OPLgz  = Encoding{Format: FormatOPL, Decompress: "gzcat", Compress: "gzip", Suffix: ".opl.gz"}
	OPLbz2 = Encoding{Format: FormatOPL, Decompress: "bzcat", Compress: "bzip2", Suffix: ".opl.bz2"}
	OPLxz  = Encoding{Format: FormatOPL, Decompress: "xzcat", Compress: "xz", Suffix: ".opl.xz"}
)

// Compressed reports whether the encoding carries a compression layer.
func (e Encoding) Compressed() bool {
	return e.Decompress != "" || e.Compress != ""
}

func (e Encoding) String() string {
	s := e.Format.String()
	switch e.Decompress {
	case "gzcat":
		s += "+gzip"
	case "bzcat":
		s += "+bzip2"
	case "xzcat":
		s += "+xz"
	}

	return s
}

// ParseEncoding converts an encoding token into an Encoding.  The
// recognized tokens are "pbf", "xml", "xmlgz"/"gz", "xmlbz2"/"bz2",
// "xmlxz"/"xz", "opl", "oplgz", "oplbz2", and "oplxz".
func ParseEncoding(token string) (Encoding, error) {
	switch token {
	case "pbf":
		return PBF, nil
	case "xml":
		return XML, nil
	case "xmlgz", "gz":
		return XMLgz, nil
	case "xmlbz2", "bz2":
		return XMLbz2, nil
	case "xmlxz", "xz":
		return XMLxz, nil
	case "opl":
		return OPL, nil
	case "oplgz":
		return OPLgz, nil
	case "oplbz2":
		return OPLbz2, nil
	case "oplxz":
		return OPLxz, nil
	default:
		return XML, &ArgumentError{Msg: "unknown OSM file encoding", Value: token}
	}
}

// ResolvedTarget is the result of resolving a filename: the normalized
// filename (empty means the process's standard input or output), the file
// kind, and the encoding.
type ResolvedTarget struct {
	Filename string
	Kind     Kind
	Encoding Encoding
}

type kindEncoding struct {
	kind     Kind
	encoding Encoding
}

// suffixes maps exact composite filename suffixes to their kind and
// encoding.  Suffix matching is an exact lookup, not longest-match.
var suffixes = map[string]kindEncoding{
	"pbf":         {Plain, PBF},
	"osm.pbf":     {Plain, PBF},
	"osm":         {Plain, XML},
	"osm.bz2":     {Plain, XMLbz2},
	"osm.gz":      {Plain, XMLgz},
	"osm.xz":      {Plain, XMLxz},
	"osm.opl":     {Plain, OPL},
	"osm.opl.bz2": {Plain, OPLbz2},
	"osm.opl.gz":  {Plain, OPLgz},
	"osm.opl.xz":  {Plain, OPLxz},
	"osh.pbf":     {History, PBF},
	"osh":         {History, XML},
	"osh.bz2":     {History, XMLbz2},
	"osh.gz":      {History, XMLgz},
	"osh.xz":      {History, XMLxz},
	"osc":         {Change, XML},
	"osc.bz2":     {Change, XMLbz2},
	"osc.gz":      {Change, XMLgz},
	"osc.xz":      {Change, XMLxz},
}

// Default kind/encoding policies for the three filename classes.
var (
	stdioDefault = kindEncoding{Plain, PBF}
	urlDefault   = kindEncoding{Plain, XML}
	fileDefault  = kindEncoding{Plain, PBF}
)

// Resolve determines the kind and encoding of a file from its filename.
// An empty filename or "-" means stdin or stdout; an http(s) URL gets the
// URL defaults regardless of any suffix; otherwise the suffix after the
// first '.' of the last path element is looked up, falling back to the
// plain-file defaults when it matches nothing.  Resolve performs no I/O.
func Resolve(filename string) ResolvedTarget {
	if filename == "" || filename == "-" {
		return ResolvedTarget{Filename: "", Kind: stdioDefault.kind, Encoding: stdioDefault.encoding}
	}

	if isRemoteURL(filename) {
		return ResolvedTarget{Filename: filename, Kind: urlDefault.kind, Encoding: urlDefault.encoding}
	}

	ke := fileDefault
	if s, ok := suffixes[suffixOf(filename)]; ok {
		ke = s
	}

	return ResolvedTarget{Filename: filename, Kind: ke.kind, Encoding: ke.encoding}
}

// suffixOf isolates the composite suffix: the substring after the first '.'
// following the last '/'.
func suffixOf(filename string) string {
	base := filename
	if n := strings.LastIndexByte(filename, '/'); n >= 0 {
		base = filename[n+1:]
	}

	if n := strings.IndexByte(base, '.'); n >= 0 {
		return base[n+1:]
	}

	return ""
}

// isRemoteURL reports whether the filename's scheme, the part before the
// first ':', is http or https.
func isRemoteURL(filename string) bool {
	n := strings.IndexByte(filename, ':')
	if n < 0 {
		return false
	}

	scheme := filename[:n]

	return scheme == "http" || scheme == "https"
}
