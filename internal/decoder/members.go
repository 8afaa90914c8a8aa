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

// parseMember parses a <member> of a relation.  The member node is itself
// the definition of the referenced element, so it is handed to the parser
// registered for its type attribute.
func (p *parser) parseMember(node *etree.Element, index int) (model.Member, error) {
	kind, err := requiredAttr(node, attrType)
	if err != nil {
		return model.Member{}, err
	}

	ep, ok := p.registry[kind]
	if !ok {
		return model.Member{}, model.NewFormatError("unknown member type", kind)
	}

	e, err := ep(node)
	if err != nil {
		return model.Member{}, err
	}

	return model.Member{
		Element: e,
		Role:    node.SelectAttrValue(attrRole, ""),
		Index:   index,
	}, nil
}
