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

// Package markup is a minimal streaming XML writer: start/end elements,
// string and formatted attributes, two-space indentation.  Attributes must
// be written between an element's start and its first child.  The first
// failure is sticky; every later operation is a no-op reporting the same
// error.
package markup

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const indent = "  "

// Writer emits an XML document to an underlying io.Writer.
type Writer struct {
	w     *bufio.Writer
	stack []string
	inTag bool
	err   error
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

// StartDocument writes the XML declaration.
func (w *Writer) StartDocument() error {
	w.raw(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")

	return w.err
}

// StartElement opens a new element nested in the current one.
func (w *Writer) StartElement(name string) error {
	w.closeStartTag()
	w.raw(strings.Repeat(indent, len(w.stack)))
	w.raw("<" + name)
	w.stack = append(w.stack, name)
	w.inTag = true

	return w.err
}

// Attr writes a string attribute on the currently open start tag.
func (w *Writer) Attr(name, value string) error {
	if w.err == nil && !w.inTag {
		w.err = fmt.Errorf("attribute %q outside of a start tag", name)
	}

	w.raw(" " + name + `="`)
	w.escaped(value)
	w.raw(`"`)

	return w.err
}

// Attrf writes a formatted attribute on the currently open start tag.
func (w *Writer) Attrf(name, format string, args ...any) error {
	return w.Attr(name, fmt.Sprintf(format, args...))
}

// EndElement closes the innermost open element.  An element without
// children collapses to a self-closing tag.
func (w *Writer) EndElement() error {
	if w.err == nil && len(w.stack) == 0 {
		w.err = fmt.Errorf("end element without matching start")

		return w.err
	}

	if w.err != nil {
		return w.err
	}

	name := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]

	if w.inTag {
		w.raw("/>\n")
		w.inTag = false
	} else {
		w.raw(strings.Repeat(indent, len(w.stack)))
		w.raw("</" + name + ">\n")
	}

	return w.err
}

// EndDocument closes any still-open elements and flushes.
func (w *Writer) EndDocument() error {
	for len(w.stack) > 0 && w.err == nil {
		w.EndElement()
	}

	return w.Flush()
}

// Flush writes any buffered output through to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}

	w.err = w.w.Flush()

	return w.err
}

// closeStartTag finishes a pending start tag before a child or text is
// written.
func (w *Writer) closeStartTag() {
	if w.inTag {
		w.raw(">\n")
		w.inTag = false
	}
}

func (w *Writer) raw(s string) {
	if w.err != nil {
		return
	}

	_, w.err = w.w.WriteString(s)
}

func (w *Writer) escaped(s string) {
	if w.err != nil {
		return
	}

	w.err = xml.EscapeText(w.w, []byte(s))
}
