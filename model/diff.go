// Copyright 2025 the original author or authors.
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

package model

import (
	"iter"
	"time"
)

// ChangeKind is an enumeration of the actions of an augmented diff.
type ChangeKind int32

const (
	// CREATE denotes a new element; only Change.New is set.
	CREATE ChangeKind = iota

	// MODIFY denotes an updated element; Change.Old and Change.New are both
	// optional.
	MODIFY

	// DELETE denotes a deleted element; only Change.Old is set.
	DELETE

	// REMOVE denotes an element that left the diffed area.  It is part of the
	// format but not produced by the decoder.
	REMOVE
)

var changeKindNames = [...]string{
	CREATE: "create",
	MODIFY: "modify",
	DELETE: "delete",
	REMOVE: "remove",
}

func (k ChangeKind) String() string {
	if k < 0 || int(k) >= len(changeKindNames) {
		return "unknown"
	}

	return changeKindNames[k]
}

// ParseChangeKind returns the ChangeKind named name.
func ParseChangeKind(name string) (ChangeKind, error) {
	for k, n := range changeKindNames {
		if n == name {
			return ChangeKind(k), nil
		}
	}

	return 0, NewFormatError("unknown action type", name)
}

// Change pairs the state of an element before and after an action.
type Change struct {
	Kind ChangeKind
	Old  Element
	New  Element
}

// Diff is a parsed augmented diff.  Changes are in document order.
type Diff struct {
	Changes  []Change
	Imported time.Time
}

// Elements iterates, in document order, over the old then new element of
// every change along with every element they reference.
func (d *Diff) Elements() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for _, c := range d.Changes {
			for _, e := range []Element{c.Old, c.New} {
				if e == nil {
					continue
				}

				for r := range Walk(e) {
					if !yield(r) {
						return
					}
				}
			}
		}
	}
}

// Walk iterates over e and, depth first, every element it references.
func Walk(e Element) iter.Seq[Element] {
	return func(yield func(Element) bool) {
		walk(e, yield)
	}
}

func walk(e Element, yield func(Element) bool) bool {
	if !yield(e) {
		return false
	}

	switch v := e.(type) {
	case *Way:
		for _, wn := range v.Nodes {
			if !walk(wn.Node, yield) {
				return false
			}
		}
	case *Relation:
		for _, m := range v.Members {
			if !walk(m.Element, yield) {
				return false
			}
		}
	}

	return true
}

// Stats summarizes the contents of a Diff.
type Stats struct {
	CreateCount   int64 `json:"create_count"`
	ModifyCount   int64 `json:"modify_count"`
	DeleteCount   int64 `json:"delete_count"`
	NodeCount     int64 `json:"node_count"`
	WayCount      int64 `json:"way_count"`
	RelationCount int64 `json:"relation_count"`
	TagCount      int64 `json:"tag_count"`
}

// Stats counts the changes per kind and every reachable element per kind.
func (d *Diff) Stats() Stats {
	var s Stats

	for _, c := range d.Changes {
		switch c.Kind {
		case CREATE:
			s.CreateCount++
		case MODIFY:
			s.ModifyCount++
		case DELETE:
			s.DeleteCount++
		}
	}

	for e := range d.Elements() {
		switch e.GetKind() {
		case NODE:
			s.NodeCount++
		case WAY:
			s.WayCount++
		case RELATION:
			s.RelationCount++
		}

		s.TagCount += int64(len(e.GetTags()))
	}

	return s
}
