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

package adiff

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime/trace"
	"strconv"
	"testing"
)

// syntheticDiff builds a document of n modified ways, each referencing
// size nodes.
func syntheticDiff(n, size int) []byte {
	var buf bytes.Buffer

	buf.WriteString(`<osm version="0.6">`)

	for i := range n {
		buf.WriteString(`<action type="modify">`)

		for _, wrapper := range []string{"old", "new"} {
			fmt.Fprintf(&buf, `<%s><way id="%d" version="1" user="bench">`, wrapper, i)
			buf.WriteString(`<bounds minlat="1" minlon="2" maxlat="3" maxlon="4"/>`)

			for j := range size {
				fmt.Fprintf(&buf, `<nd ref="%d" lat="1.%07d" lon="2.%07d"/>`, j, j, j)
			}

			buf.WriteString(`<tag k="highway" v="residential"/></way>`)
			fmt.Fprintf(&buf, `</%s>`, wrapper)
		}

		buf.WriteString(`</action>`)
	}

	buf.WriteString(`</osm>`)

	return buf.Bytes()
}

func BenchmarkDecode(b *testing.B) {
	t, err := strconv.ParseBool(os.Getenv("ADIFF_TRACE"))
	if err == nil && t {
		f, e := os.Create("trace.out")
		if e != nil {
			b.Errorf("Error opening trace file: %v", e)
		} else {
			defer f.Close()
			_ = trace.Start(f)
			defer trace.Stop()
		}
	}

	doc := syntheticDiff(1000, 20)

	b.SetBytes(int64(len(doc)))
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		if _, err := Decode(context.Background(), bytes.NewReader(doc)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeAll(b *testing.B) {
	ncpu, _ := strconv.Atoi(os.Getenv("ADIFF_NCPU"))

	doc := syntheticDiff(100, 20)

	for n := 0; n < b.N; n++ {
		sources := make([]io.Reader, 32)
		for i := range sources {
			sources[i] = bytes.NewReader(doc)
		}

		for _, err := range DecodeAll(context.Background(), sources, WithNCpus(uint16(ncpu))) {
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}
