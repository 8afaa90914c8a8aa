// Copyright 2017-25 the original author or authors.
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

// Package model contains the shared model for OpenStreetMap augmented diffs.
package model

import (
	"time"
)

// ID is the OpenStreetMap identifier of an element.
type ID uint64

// UID is the primary key for a user.
type UID uint64

// Info represents information common to Node, Way, and Relation elements.
// Attributes absent from the document are nil, or empty for User.
type Info struct {
	ID        *ID
	Version   *int32
	Timestamp *time.Time
	UID       *UID
	User      string
	Changeset *int64
	Visible   bool
}

// Tag is a key/value attribute of an element.  Tags keep document order and
// keys are not required to be unique.
type Tag struct {
	Key   string `json:"k"`
	Value string `json:"v"`
}

func (t Tag) String() string {
	return t.Key + "=" + t.Value
}

// Element is one of *Node, *Way or *Relation.
type Element interface {
	isElement() // prevents extensions

	GetKind() Kind

	GetInfo() *Info

	GetTags() []Tag

	GetBounds() *Bounds
}

// Kind is an enumeration of element kinds.
type Kind int32

const (
	// NODE denotes that the element is a node.
	NODE Kind = iota

	// WAY denotes that the element is a way.
	WAY

	// RELATION denotes that the element is a relation.
	RELATION
)

var kindNames = [...]string{
	NODE:     "node",
	WAY:      "way",
	RELATION: "relation",
}

// Kinds lists every element kind.
var Kinds = []Kind{NODE, WAY, RELATION}

// String returns the name used for the kind in augmented diff documents.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}

	return kindNames[k]
}

// ParseKind returns the Kind named name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}

	return 0, NewFormatError("unknown element type", name)
}

// Node represents a specific point on the earth's surface defined by its
// latitude and longitude.  Either coordinate may be missing when the node is
// only referenced.
type Node struct {
	Info   Info
	Tags   []Tag
	Bounds *Bounds
	Lat    *Degrees
	Lon    *Degrees
}

var _ Element = (*Node)(nil)

func (n *Node) isElement() {}

func (n *Node) GetKind() Kind { return NODE }

func (n *Node) GetInfo() *Info { return &n.Info }

func (n *Node) GetTags() []Tag { return n.Tags }

func (n *Node) GetBounds() *Bounds { return n.Bounds }

// HasLocation reports whether both coordinates are known.
func (n *Node) HasLocation() bool {
	return n.Lat != nil && n.Lon != nil
}

// WayNode is a node of a way along with its position.  Index always equals
// the position of the WayNode within Way.Nodes.
type WayNode struct {
	Node  *Node
	Index int
}

// Way is an ordered list of nodes that define a polyline.
type Way struct {
	Info   Info
	Tags   []Tag
	Bounds *Bounds
	Nodes  []WayNode
}

var _ Element = (*Way)(nil)

func (w *Way) isElement() {}

func (w *Way) GetKind() Kind { return WAY }

func (w *Way) GetInfo() *Info { return &w.Info }

func (w *Way) GetTags() []Tag { return w.Tags }

func (w *Way) GetBounds() *Bounds { return w.Bounds }

// Member is an element of a relation along with its role and position.
type Member struct {
	Element Element
	Role    string
	Index   int
}

// Relation is a multipurpose data structure that documents a relationship
// between two or more data elements (nodes, ways, and/or other relations).
type Relation struct {
	Info    Info
	Tags    []Tag
	Bounds  *Bounds
	Members []Member
}

var _ Element = (*Relation)(nil)

func (r *Relation) isElement() {}

func (r *Relation) GetKind() Kind { return RELATION }

func (r *Relation) GetInfo() *Info { return &r.Info }

func (r *Relation) GetTags() []Tag { return r.Tags }

func (r *Relation) GetBounds() *Bounds { return r.Bounds }
