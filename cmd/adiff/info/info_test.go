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

package info

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/adiff"
	"m4o.io/adiff/model"
)

var sampleStats = model.Stats{
	CreateCount:   1,
	ModifyCount:   2,
	DeleteCount:   1,
	NodeCount:     13,
	WayCount:      4,
	RelationCount: 2,
	TagCount:      9,
}

func TestRunInfo(t *testing.T) {
	f, err := os.Open("../../../testdata/sample.adiff")
	if err != nil {
		t.Fatalf("Unable to read data file %v", err)
	}

	defer f.Close()

	info, err := runInfo(context.Background(), f, adiff.AUTO)
	require.NoError(t, err)

	assert.Equal(t, sampleStats, info.Stats)
	assert.False(t, info.Imported.IsZero())

	require.NotNil(t, info.Extent)
	assert.Equal(t, "[(51.5070001, -0.128) (51.5075, -0.127)]", info.Extent.String())
	assert.Zero(t, info.InvalidBoundsCount)
}

func TestRunInfo_Error(t *testing.T) {
	_, err := runInfo(context.Background(), strings.NewReader("<osmChange/>"), adiff.RAW)
	assert.ErrorIs(t, err, model.ErrFormat)
}

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}

	saved := out
	t.Cleanup(func() { out = saved })

	out = buf

	return buf
}

func TestRenderJSON(t *testing.T) {
	ts, _ := time.Parse(time.RFC3339, "2019-07-19T15:42:00Z")

	buf := capture(t)

	extent := &model.Bounds{MinLat: 51.5070001, MinLon: -0.128, MaxLat: 51.5075, MaxLon: -0.127}

	renderJSON(&summary{Imported: ts, Extent: extent, InvalidBoundsCount: 2, Stats: sampleStats})

	info := &summary{}
	if err := json.Unmarshal(buf.Bytes(), info); err != nil {
		t.Fatalf("Unable to unmarshal json %v", err)
	}

	assert.Equal(t, ts, info.Imported.UTC())
	assert.Equal(t, sampleStats, info.Stats)
	assert.Equal(t, extent, info.Extent)
	assert.Equal(t, int64(2), info.InvalidBoundsCount)
	assert.Contains(t, buf.String(), `"node_count":13`)
	assert.Contains(t, buf.String(), `"extent":{"minlat":51.5070001,"minlon":-0.128,"maxlat":51.5075,"maxlon":-0.127}`)
}

func TestRenderText(t *testing.T) {
	ts, _ := time.Parse(time.RFC3339, "2019-07-19T15:42:00Z")

	buf := capture(t)

	renderTxt(&summary{Imported: ts, Extent: &model.Bounds{MinLat: -1.5, MinLon: 2, MaxLat: 3.25, MaxLon: 4}, InvalidBoundsCount: 1022, Stats: model.Stats{
		CreateCount:   1204,
		ModifyCount:   2,
		DeleteCount:   1,
		NodeCount:     2729006,
		WayCount:      459055,
		RelationCount: 12833,
		TagCount:      9,
	}})

	assert.Equal(t, `Imported: 2019-07-19T15:42:00Z
CreateCount: 1,204
ModifyCount: 2
DeleteCount: 1
NodeCount: 2,729,006
WayCount: 459,055
RelationCount: 12,833
TagCount: 9
Extent: [(-1.5, 2) (3.25, 4)]
InvalidBoundsCount: 1,022
`, buf.String())
}

func TestRenderText_NoExtent(t *testing.T) {
	buf := capture(t)

	renderTxt(&summary{Stats: model.Stats{CreateCount: 1}})

	assert.NotContains(t, buf.String(), "Extent:")
	assert.Contains(t, buf.String(), "InvalidBoundsCount: 0\n")
}
