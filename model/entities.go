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

// Package model contains the shared model for OpenStreetMap file readers
// and writers.
package model

import (
	"time"
)

// UID is the primary key for a user.  Values of zero or less denote an
// anonymous user.
type UID int32

// Info represents information common to Node, Way, and Relation entities.
// The zero value of a field means the field is absent.
type Info struct {
	Version   int32
	UID       UID
	Timestamp time.Time
	Changeset int64
	User      string
	Visible   bool
}

// Tag is a single key/value pair attached to an entity.  Tags keep the
// order in which they were added.
type Tag struct {
	Key   string
	Value string
}

// Entity is the closed set of OpenStreetMap entity shapes.
type Entity interface {
	isEntity() // prevents extensions

	GetID() ID

	GetTags() []Tag

	GetInfo() *Info
}

// ID is the primary key of an entity.
type ID int64

// Location is a defined point on the earth's surface.  A nil *Location on a
// Node means the node has no location.
type Location struct {
	Lat Degrees
	Lon Degrees
}

// Node represents a specific point on the earth's surface defined by its
// latitude and longitude. Each node comprises at least an id number and a
// pair of coordinates.
type Node struct {
	ID       ID
	Tags     []Tag
	Info     *Info
	Location *Location
}

var _ Entity = Node{}

func (n Node) isEntity() {}

func (n Node) GetID() ID {
	return n.ID
}

func (n Node) GetTags() []Tag {
	return n.Tags
}

func (n Node) GetInfo() *Info {
	return n.Info
}

// Way is an ordered list of between 2 and 2,000 nodes that define a polyline.
type Way struct {
	ID      ID
	Tags    []Tag
	Info    *Info
	NodeIDs []ID
}

var _ Entity = Way{}

func (w Way) isEntity() {}

func (w Way) GetID() ID {
	return w.ID
}

func (w Way) GetTags() []Tag {
	return w.Tags
}

func (w Way) GetInfo() *Info {
	return w.Info
}

// EntityType is an enumeration of OpenStreetMap entity types.
type EntityType int32

const (
	// NODE denotes that the member is a node.
	NODE EntityType = iota

	// WAY denotes that the member is a way.
	WAY

	// RELATION denotes that the member is a relation.
	RELATION
)

// String returns the name used for the entity type in XML output.
func (t EntityType) String() string {
	switch t {
	case NODE:
		return "node"
	case WAY:
		return "way"
	case RELATION:
		return "relation"
	default:
		return "unknown"
	}
}

// Member represents an entity referenced from a relation.
type Member struct {
	ID   ID
	Type EntityType
	Role string
}

// Relation is a multipurpose data structure that documents a relationship
// between two or more data entities (nodes, ways, and/or other relations).
type Relation struct {
	ID      ID
	Tags    []Tag
	Info    *Info
	Members []Member
}

var _ Entity = Relation{}

func (r Relation) isEntity() {}

func (r Relation) GetID() ID {
	return r.ID
}

func (r Relation) GetTags() []Tag {
	return r.Tags
}

func (r Relation) GetInfo() *Info {
	return r.Info
}
