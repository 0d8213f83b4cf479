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
	"fmt"
	"time"

	"m4o.io/osmio/internal/markup"
	"m4o.io/osmio/model"
)

const (
	// SchemaVersion is the OSM API schema version written to the root
	// element.
	SchemaVersion = "0.6"

	// DefaultGenerator identifies this library in the root element when no
	// other generator is configured.
	DefaultGenerator = "osmio"

	timestampFormat = "2006-01-02T15:04:05Z"

	coordinateFormat = "%.7f"
)

// Writer errors.
var (
	// ErrMetaNotSet is returned when an entity is written before SetMeta.
	ErrMetaNotSet = errors.New("document metadata has not been written")

	// ErrMetaAlreadySet is returned when SetMeta is called twice.
	ErrMetaAlreadySet = errors.New("document metadata already written")

	// ErrWriterClosed is returned when writing to a closed writer.
	ErrWriterClosed = errors.New("writer is closed")
)

// changeOp is the edit operation inferred for a record in a changeset
// document.  Consecutive records sharing an operation are grouped under one
// wrapper element named after it.
type changeOp int

const (
	opNone changeOp = iota
	opCreate
	opModify
	opDelete
)

func (o changeOp) String() string {
	switch o {
	case opCreate:
		return "create"
	case opModify:
		return "modify"
	case opDelete:
		return "delete"
	default:
		return ""
	}
}

// operationOf infers the edit operation from an entity's visibility and
// version: first visible version is a create, later visible versions are
// modifies, invisible is a delete.  A nil info counts as visible.
func operationOf(info *model.Info) changeOp {
	visible := true

	var version int32

	if info != nil {
		visible = info.Visible
		version = info.Version
	}

	switch {
	case !visible:
		return opDelete
	case version == 1:
		return opCreate
	default:
		return opModify
	}
}

// XMLWriter serializes a stream of entities into an OSM XML document.  Use
// SetMeta once, then Write for each entity in output order, then Close.
//
// For Change-kind files the writer tracks the inferred operation of the
// last record and wraps maximal runs of same-operation records in create,
// modify, or delete elements.
type XMLWriter struct {
	file      *File
	doc       *markup.Writer
	generator string

	metaSet bool
	closed  bool
	lastOp  changeOp
}

// NewXMLWriter returns a writer emitting to the given file.  The file is
// opened for output if it is not open already.
func NewXMLWriter(f *File, opts ...XMLWriterOption) (*XMLWriter, error) {
	if f.Writer() == nil {
		if err := f.OpenForOutput(); err != nil {
			return nil, err
		}
	}

	w := &XMLWriter{
		file:      f,
		doc:       markup.NewWriter(f.Writer()),
		generator: DefaultGenerator,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// SetMeta starts the document: the XML declaration, the root element (osm,
// or osmChange for changeset files) with its version and generator
// attributes, and the bounds element when a bounding box is present.  It
// must be called exactly once, before any entity is written.
func (w *XMLWriter) SetMeta(meta model.Meta) error {
	if w.closed {
		return ErrWriterClosed
	}

	if w.metaSet {
		return ErrMetaAlreadySet
	}

	w.doc.StartDocument()

	root := "osm"
	if w.file.Kind() == Change {
		root = "osmChange"
	}

	w.doc.StartElement(root)
	w.doc.Attr("version", SchemaVersion)

	generator := w.generator
	if meta.Generator != "" {
		generator = meta.Generator
	}

	w.doc.Attr("generator", generator)

	if bbox := meta.BoundingBox; bbox != nil {
		w.doc.StartElement("bounds")
		w.doc.Attrf("minlon", coordinateFormat, float64(bbox.Left))
		w.doc.Attrf("minlat", coordinateFormat, float64(bbox.Bottom))
		w.doc.Attrf("maxlon", coordinateFormat, float64(bbox.Right))
		w.doc.Attrf("maxlat", coordinateFormat, float64(bbox.Top))
		w.doc.EndElement()
	}

	w.metaSet = true

	return w.check()
}

// Write serializes one entity.  Entities appear in the document in the
// exact order they are written.
func (w *XMLWriter) Write(entity model.Entity) error {
	if w.closed {
		return ErrWriterClosed
	}

	if !w.metaSet {
		return ErrMetaNotSet
	}

	switch e := entity.(type) {
	case model.Node:
		w.node(e)
	case model.Way:
		w.way(e)
	case model.Relation:
		w.relation(e)
	default:
		return &ArgumentError{Msg: "unknown entity type", Value: fmt.Sprintf("%T", entity)}
	}

	return w.check()
}

// Close closes any open grouping wrapper, the root element, and the
// document, then closes the underlying file, waiting on any filter
// process.  Close is idempotent.
func (w *XMLWriter) Close() error {
	if w.closed {
		return nil
	}

	w.closed = true

	if w.file.Kind() == Change {
		w.transition(opNone)
	}

	if w.metaSet {
		w.doc.EndElement()
	}

	w.doc.EndDocument()

	err := w.check()

	if cerr := w.file.Close(); cerr != nil && err == nil {
		err = cerr
	}

	return err
}

func (w *XMLWriter) node(n model.Node) {
	if w.file.Kind() == Change {
		w.transition(operationOf(n.Info))
	}

	w.doc.StartElement("node")
	w.commonAttrs(n.ID, n.Info)

	if loc := n.Location; loc != nil {
		w.doc.Attrf("lat", coordinateFormat, float64(loc.Lat))
		w.doc.Attrf("lon", coordinateFormat, float64(loc.Lon))
	}

	w.tags(n.Tags)
	w.doc.EndElement()
}

func (w *XMLWriter) way(way model.Way) {
	if w.file.Kind() == Change {
		w.transition(operationOf(way.Info))
	}

	w.doc.StartElement("way")
	w.commonAttrs(way.ID, way.Info)

	for _, ref := range way.NodeIDs {
		w.doc.StartElement("nd")
		w.doc.Attrf("ref", "%d", int64(ref))
		w.doc.EndElement()
	}

	w.tags(way.Tags)
	w.doc.EndElement()
}

func (w *XMLWriter) relation(rel model.Relation) {
	if w.file.Kind() == Change {
		w.transition(operationOf(rel.Info))
	}

	w.doc.StartElement("relation")
	w.commonAttrs(rel.ID, rel.Info)

	for _, m := range rel.Members {
		w.doc.StartElement("member")
		w.doc.Attr("type", m.Type.String())
		w.doc.Attrf("ref", "%d", int64(m.ID))
		w.doc.Attr("role", m.Role)
		w.doc.EndElement()
	}

	w.tags(rel.Tags)
	w.doc.EndElement()
}

// commonAttrs writes the attributes shared by all entity elements.  A zero
// field is omitted; uid and user are written only for uid > 0; the visible
// attribute appears only in multi-version documents that are not
// changesets, where the operation wrapper already carries the information.
func (w *XMLWriter) commonAttrs(id model.ID, info *model.Info) {
	w.doc.Attrf("id", "%d", int64(id))

	visible := true

	if info != nil {
		if info.Version != 0 {
			w.doc.Attrf("version", "%d", info.Version)
		}

		if !info.Timestamp.IsZero() {
			w.doc.Attr("timestamp", info.Timestamp.In(time.UTC).Format(timestampFormat))
		}

		if info.UID > 0 {
			w.doc.Attrf("uid", "%d", int32(info.UID))
			w.doc.Attr("user", info.User)
		}

		if info.Changeset != 0 {
			w.doc.Attrf("changeset", "%d", info.Changeset)
		}

		visible = info.Visible
	}

	if w.file.Kind().MultipleVersions() && w.file.Kind() != Change {
		if visible {
			w.doc.Attr("visible", "true")
		} else {
			w.doc.Attr("visible", "false")
		}
	}
}

func (w *XMLWriter) tags(tags []model.Tag) {
	for _, tag := range tags {
		w.doc.StartElement("tag")
		w.doc.Attr("k", tag.Key)
		w.doc.Attr("v", tag.Value)
		w.doc.EndElement()
	}
}

// transition updates the grouping state: a no-op when the operation is
// unchanged, otherwise the open wrapper (if any) is closed and a new one is
// opened unless the operation is none.
func (w *XMLWriter) transition(op changeOp) {
	if op == w.lastOp {
		return
	}

	if w.lastOp != opNone {
		w.doc.EndElement()
	}

	if op != opNone {
		w.doc.StartElement(op.String())
	}

	w.lastOp = op
}

func (w *XMLWriter) check() error {
	if err := w.doc.Err(); err != nil {
		return &WriteError{Err: err}
	}

	return nil
}
