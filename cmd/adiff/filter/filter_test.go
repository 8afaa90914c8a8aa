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

package filter

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/adiff"
	"m4o.io/adiff/model"
)

func filterSample(t *testing.T, patterns string, all bool) []match {
	t.Helper()

	f, err := os.Open("../../../testdata/sample.adiff")
	require.NoError(t, err)

	defer f.Close()

	tf, err := model.NewTagFilter(patterns, all)
	require.NoError(t, err)

	matches, err := runFilter(context.Background(), f, adiff.AUTO, tf)
	require.NoError(t, err)

	return matches
}

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}

	saved := out
	t.Cleanup(func() { out = saved })

	out = buf

	return buf
}

func TestRunFilter(t *testing.T) {
	tests := []struct {
		name     string
		patterns string
		all      bool
		want     string
	}{
		{
			name:     "key only",
			patterns: "amenity=*",
			want: `create new node 6612391312 amenity=bench,backrest=yes
delete old node 2473974931 amenity=waste_basket
`,
		},
		{
			name:     "any",
			patterns: "highway=footway,surface=paved",
			want: `modify old way 4781863 highway=footway
modify new way 4781863 highway=footway,surface=paved
`,
		},
		{
			name:     "all",
			patterns: "highway=footway,surface=paved",
			all:      true,
			want: `modify new way 4781863 highway=footway,surface=paved
`,
		},
		{
			name:     "relation",
			patterns: "leisure=park",
			want: `modify new relation 1607153 type=multipolygon,leisure=park
`,
		},
		{
			name:     "none",
			patterns: "shop=*",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t)

			renderTxt(filterSample(t, tt.patterns, tt.all))

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderJSON(t *testing.T) {
	buf := capture(t)

	renderJSON(filterSample(t, "amenity=bench", false))

	var m match
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))

	assert.Equal(t, "create", m.Action)
	assert.Equal(t, "new", m.Version)
	assert.Equal(t, "node", m.Type)
	require.NotNil(t, m.ID)
	assert.Equal(t, model.ID(6612391312), *m.ID)
	assert.Equal(t, []model.Tag{{Key: "amenity", Value: "bench"}, {Key: "backrest", Value: "yes"}}, m.Tags)
}

func TestRenderText_NoID(t *testing.T) {
	buf := capture(t)

	renderTxt([]match{{Action: "create", Version: "new", Type: "node", Tags: []model.Tag{{Key: "a", Value: "b"}}}})

	assert.Equal(t, "create new node - a=b\n", buf.String())
}
