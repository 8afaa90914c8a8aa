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

package decoder

import (
	"github.com/beevik/etree"

	"m4o.io/adiff/model"
)

// parseNode parses a <node>, an <nd> or a <member type="node">.  Referenced
// nodes usually carry no coordinates; those are left nil.
func (p *parser) parseNode(node *etree.Element) (*model.Node, error) {
	info, err := parseInfo(node)
	if err != nil {
		return nil, err
	}

	n := &model.Node{Info: info}

	if n.Lat, err = optionalDegrees(node, attrLat); err != nil {
		return nil, err
	}

	if n.Lon, err = optionalDegrees(node, attrLon); err != nil {
		return nil, err
	}

	if n.Bounds, err = parseBounds(node); err != nil {
		return nil, err
	}

	if n.Tags, err = parseTags(node); err != nil {
		return nil, err
	}

	return n, nil
}

// parseWay parses a <way> or a <member type="way">.  Each <nd> child becomes
// a node of the way, indexed by its position.
func (p *parser) parseWay(node *etree.Element) (*model.Way, error) {
	info, err := parseInfo(node)
	if err != nil {
		return nil, err
	}

	w := &model.Way{Info: info}

	if w.Bounds, err = parseBounds(node); err != nil {
		return nil, err
	}

	nds := node.SelectElements(tagWayNode)
	w.Nodes = make([]model.WayNode, len(nds))

	for i, nd := range nds {
		n, err := p.parseNode(nd)
		if err != nil {
			return nil, err
		}

		w.Nodes[i] = model.WayNode{Node: n, Index: i}
	}

	if w.Tags, err = parseTags(node); err != nil {
		return nil, err
	}

	return w, nil
}

// parseRelation parses a <relation> or a <member type="relation">.
func (p *parser) parseRelation(node *etree.Element) (*model.Relation, error) {
	info, err := parseInfo(node)
	if err != nil {
		return nil, err
	}

	r := &model.Relation{Info: info}

	if r.Bounds, err = parseBounds(node); err != nil {
		return nil, err
	}

	members := node.SelectElements(tagMember)
	r.Members = make([]model.Member, len(members))

	for i, member := range members {
		if r.Members[i], err = p.parseMember(member, i); err != nil {
			return nil, err
		}
	}

	if r.Tags, err = parseTags(node); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTags parses the <tag> children of node in document order.  Keys are
// neither deduplicated nor sorted.
func parseTags(node *etree.Element) ([]model.Tag, error) {
	tns := node.SelectElements(tagTag)
	tags := make([]model.Tag, len(tns))

	for i, tn := range tns {
		k, err := requiredAttr(tn, attrKey)
		if err != nil {
			return nil, err
		}

		v, err := requiredAttr(tn, attrValue)
		if err != nil {
			return nil, err
		}

		tags[i] = model.Tag{Key: k, Value: v}
	}

	return tags, nil
}
