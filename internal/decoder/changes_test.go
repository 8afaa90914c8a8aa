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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/adiff/model"
)

func TestParseChange_Create(t *testing.T) {
	c, err := newParser().parseChange(element(t, `<action type="create">
  <node id="1" lat="10" lon="20"/>
</action>`))
	require.NoError(t, err)

	assert.Equal(t, model.CREATE, c.Kind)
	assert.Nil(t, c.Old)

	n := c.New.(*model.Node)
	assert.Equal(t, model.ID(1), *n.Info.ID)
	assert.Equal(t, model.Degrees(10), *n.Lat)
	assert.Equal(t, model.Degrees(20), *n.Lon)
}

func TestParseChange_CreateWithoutElement(t *testing.T) {
	_, err := newParser().parseChange(element(t, `<action type="create"> </action>`))
	requireFormatError(t, err, "create")
}

func TestParseChange_Modify(t *testing.T) {
	c, err := newParser().parseChange(element(t, `<action type="modify">
  <old><relation id="3"/></old>
  <new><relation id="3" version="2"/></new>
</action>`))
	require.NoError(t, err)

	assert.Equal(t, model.MODIFY, c.Kind)
	assert.Equal(t, model.RELATION, c.Old.GetKind())
	assert.Equal(t, model.RELATION, c.New.GetKind())
	assert.Nil(t, c.Old.GetInfo().Version)
	assert.Equal(t, int32(2), *c.New.GetInfo().Version)
}

func TestParseChange_ModifyOptionalWrappers(t *testing.T) {
	p := newParser()

	c, err := p.parseChange(element(t, `<action type="modify"><new><way id="1"/></new></action>`))
	require.NoError(t, err)
	assert.Nil(t, c.Old)
	assert.Equal(t, model.WAY, c.New.GetKind())

	c, err = p.parseChange(element(t, `<action type="modify"><old><way id="1"/></old></action>`))
	require.NoError(t, err)
	assert.Equal(t, model.WAY, c.Old.GetKind())
	assert.Nil(t, c.New)

	// neither wrapper is a degenerate but legal modify
	c, err = p.parseChange(element(t, `<action type="modify"/>`))
	require.NoError(t, err)
	assert.Equal(t, model.Change{Kind: model.MODIFY}, c)
}

func TestParseChange_ModifyEmptyWrappers(t *testing.T) {
	for _, doc := range []string{
		`<action type="modify"><old/><new><node id="1"/></new></action>`,
		"<action type=\"modify\"><old>\n   </old><new><node id=\"1\"/></new></action>",
	} {
		c, err := newParser().parseChange(element(t, doc))
		require.NoError(t, err)

		assert.Nil(t, c.Old)
		require.NotNil(t, c.New)
		assert.Equal(t, model.NODE, c.New.GetKind())
		assert.Equal(t, model.ID(1), *c.New.GetInfo().ID)
	}

	c, err := newParser().parseChange(element(t, `<action type="modify"><old/><new/></action>`))
	require.NoError(t, err)
	assert.Equal(t, model.Change{Kind: model.MODIFY}, c)
}

func TestParseChange_Delete(t *testing.T) {
	c, err := newParser().parseChange(element(t, `<action type="delete">
  <old>
    <node id="2" lat="1" lon="1"/>
  </old>
</action>`))
	require.NoError(t, err)

	assert.Equal(t, model.DELETE, c.Kind)
	assert.Nil(t, c.New)
	assert.Equal(t, model.ID(2), *c.Old.GetInfo().ID)
}

func TestParseChange_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		doc     string
		subject string
	}{
		{"delete without old", `<action type="delete"><new><node id="2"/></new></action>`, "old"},
		{"empty old on delete", `<action type="delete"><old>  </old></action>`, "old"},
		{"unknown element", `<action type="modify"><new><area id="1"/></new></action>`, "area"},
		{"remove", `<action type="remove"><old><node id="2"/></old></action>`, "remove"},
		{"unknown type", `<action type="rename"/>`, "rename"},
		{"missing type", `<action><node id="1"/></action>`, "type"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newParser().parseChange(element(t, tc.doc))
			requireFormatError(t, err, tc.subject)
		})
	}
}
