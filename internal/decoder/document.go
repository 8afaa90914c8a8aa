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

// Package decoder turns an augmented diff XML tree into the immutable
// m4o.io/adiff/model graph.
package decoder

import (
	"time"

	"github.com/beevik/etree"

	"m4o.io/adiff/model"
)

// Names of the nodes of an augmented diff document.
const (
	tagDocument = "osm"
	tagAction   = "action"
	tagOld      = "old"
	tagNew      = "new"
	tagWayNode  = "nd"
	tagMember   = "member"
	tagTag      = "tag"
	tagBounds   = "bounds"
)

// elementParser parses a node into an element of a specific kind.
type elementParser func(node *etree.Element) (model.Element, error)

// parser holds the kind name to parser registry shared by the member and
// action parsers.
type parser struct {
	registry map[string]elementParser
}

func newParser() *parser {
	p := &parser{}

	p.registry = map[string]elementParser{
		model.NODE.String(): func(node *etree.Element) (model.Element, error) {
			return p.parseNode(node)
		},
		model.WAY.String(): func(node *etree.Element) (model.Element, error) {
			return p.parseWay(node)
		},
		model.RELATION.String(): func(node *etree.Element) (model.Element, error) {
			return p.parseRelation(node)
		},
	}

	return p
}

// lookup returns the parser registered for the kind name.
func (p *parser) lookup(kind string) (elementParser, error) {
	if ep, ok := p.registry[kind]; ok {
		return ep, nil
	}

	return nil, model.NewFormatError("unknown element type", kind)
}

// transform parses a node, using its own name as the element kind.
func (p *parser) transform(node *etree.Element) (model.Element, error) {
	ep, err := p.lookup(node.Tag)
	if err != nil {
		return nil, err
	}

	return ep(node)
}

// ParseDocument parses an augmented diff.  The import timestamp of the diff
// is obtained from now once every action has been parsed.
func ParseDocument(doc *etree.Document, now func() time.Time) (*model.Diff, error) {
	root := doc.Root()
	if root == nil {
		return nil, model.NewFormatError("not a recognized diff document", "")
	}

	if root.Tag != tagDocument {
		return nil, model.NewFormatError("not a recognized diff document", root.Tag)
	}

	p := newParser()

	actions := root.SelectElements(tagAction)
	changes := make([]model.Change, 0, len(actions))

	for _, action := range actions {
		c, err := p.parseChange(action)
		if err != nil {
			return nil, err
		}

		changes = append(changes, c)
	}

	return &model.Diff{
		Changes:  changes,
		Imported: now(),
	}, nil
}

// firstChildElement returns the first child of node that is an element, or
// nil when there is none.
func firstChildElement(node *etree.Element) *etree.Element {
	for _, t := range node.Child {
		if e, ok := t.(*etree.Element); ok {
			return e
		}
	}

	return nil
}
