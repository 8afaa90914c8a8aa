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
	"strconv"
	"time"

	"github.com/beevik/etree"
	"golang.org/x/exp/constraints"

	"m4o.io/adiff/model"
)

const (
	attrID        = "id"
	attrRef       = "ref"
	attrVersion   = "version"
	attrTimestamp = "timestamp"
	attrUID       = "uid"
	attrUser      = "user"
	attrChangeset = "changeset"
	attrVisible   = "visible"
	attrLat       = "lat"
	attrLon       = "lon"
	attrType      = "type"
	attrRole      = "role"
	attrKey       = "k"
	attrValue     = "v"
)

// parseInfo reads the attributes shared by every element.  The identifier
// comes from "id" for plain elements and from "ref" for nested references;
// an element with neither has no identifier.
func parseInfo(node *etree.Element) (info model.Info, err error) {
	info.Visible = true

	idAttr := attrID
	if node.SelectAttr(attrID) == nil {
		idAttr = attrRef
	}

	if info.ID, err = optionalUnsigned[model.ID](node, idAttr); err != nil {
		return info, err
	}

	if info.Version, err = optionalSigned[int32](node, attrVersion); err != nil {
		return info, err
	}

	if info.UID, err = optionalUnsigned[model.UID](node, attrUID); err != nil {
		return info, err
	}

	if info.Changeset, err = optionalSigned[int64](node, attrChangeset); err != nil {
		return info, err
	}

	if a := node.SelectAttr(attrTimestamp); a != nil {
		ts, err := time.Parse(time.RFC3339, a.Value)
		if err != nil {
			return info, model.WrapFormatError("invalid timestamp", a.Value, err)
		}

		ts = ts.UTC()
		info.Timestamp = &ts
	}

	if a := node.SelectAttr(attrVisible); a != nil {
		if info.Visible, err = strconv.ParseBool(a.Value); err != nil {
			return info, model.WrapFormatError("invalid visibility", a.Value, err)
		}
	}

	info.User = node.SelectAttrValue(attrUser, "")

	return info, nil
}

// optionalUnsigned returns the value of an unsigned integer attribute, or nil
// when the attribute is absent.
func optionalUnsigned[T constraints.Unsigned](node *etree.Element, key string) (*T, error) {
	a := node.SelectAttr(key)
	if a == nil {
		return nil, nil
	}

	u, err := strconv.ParseUint(a.Value, 10, 64)
	if err == nil && uint64(T(u)) != u {
		err = strconv.ErrRange
	}

	if err != nil {
		return nil, model.WrapFormatError("invalid "+key+" attribute", a.Value, err)
	}

	v := T(u)

	return &v, nil
}

// optionalSigned returns the value of a signed integer attribute, or nil when
// the attribute is absent.
func optionalSigned[T constraints.Signed](node *etree.Element, key string) (*T, error) {
	a := node.SelectAttr(key)
	if a == nil {
		return nil, nil
	}

	i, err := strconv.ParseInt(a.Value, 10, 64)
	if err == nil && int64(T(i)) != i {
		err = strconv.ErrRange
	}

	if err != nil {
		return nil, model.WrapFormatError("invalid "+key+" attribute", a.Value, err)
	}

	v := T(i)

	return &v, nil
}

// optionalDegrees returns the value of a coordinate attribute, or nil when
// the attribute is absent.
func optionalDegrees(node *etree.Element, key string) (*model.Degrees, error) {
	a := node.SelectAttr(key)
	if a == nil {
		return nil, nil
	}

	d, err := model.ParseDegrees(a.Value)
	if err != nil {
		return nil, model.WrapFormatError("invalid "+key+" attribute", a.Value, err)
	}

	return &d, nil
}

// requiredAttr returns the value of an attribute that must be present.
func requiredAttr(node *etree.Element, key string) (string, error) {
	a := node.SelectAttr(key)
	if a == nil {
		return "", model.NewFormatError("missing "+key+" attribute on <"+node.Tag+">", key)
	}

	return a.Value, nil
}
