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

package decoder

import (
	"github.com/beevik/etree"

	"m4o.io/adiff/model"
)

// parseChange parses an <action>.
//
//	create: the element is the first child of the action
//	modify: <old> and <new> are both optional
//	delete: <old> is required
//
// remove actions are rejected.
func (p *parser) parseChange(node *etree.Element) (model.Change, error) {
	name, err := requiredAttr(node, attrType)
	if err != nil {
		return model.Change{}, err
	}

	kind, err := model.ParseChangeKind(name)
	if err != nil {
		return model.Change{}, err
	}

	c := model.Change{Kind: kind}

	switch kind {
	case model.CREATE:
		e := firstChildElement(node)
		if e == nil {
			return model.Change{}, model.NewFormatError("create action without element", name)
		}

		if c.New, err = p.transform(e); err != nil {
			return model.Change{}, err
		}

	case model.MODIFY:
		if c.Old, err = p.parseWrapped(node, tagOld, false); err != nil {
			return model.Change{}, err
		}

		if c.New, err = p.parseWrapped(node, tagNew, false); err != nil {
			return model.Change{}, err
		}

	case model.DELETE:
		if c.Old, err = p.parseWrapped(node, tagOld, true); err != nil {
			return model.Change{}, err
		}

	default:
		return model.Change{}, model.NewFormatError("unsupported action type", name)
	}

	return c, nil
}

// parseWrapped parses the element held by the <old> or <new> wrapper of an
// action.  An optional wrapper that is missing or holds no element yields a
// nil element.
func (p *parser) parseWrapped(node *etree.Element, wrapper string, required bool) (model.Element, error) {
	w := node.SelectElement(wrapper)
	if w == nil {
		if required {
			return nil, model.NewFormatError("missing wrapper", wrapper)
		}

		return nil, nil
	}

	e := firstChildElement(w)
	if e == nil {
		if required {
			return nil, model.NewFormatError("empty wrapper", wrapper)
		}

		return nil, nil
	}

	return p.transform(e)
}
