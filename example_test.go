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

package adiff_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"m4o.io/adiff"
	"m4o.io/adiff/model"
)

func Example() {
	in, err := os.Open("testdata/sample.adiff")
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	diff, err := adiff.Decode(context.Background(), in)
	if err != nil {
		log.Fatal(err)
	}

	var nc, wc, rc uint64
	for _, c := range diff.Changes {
		e := c.New
		if e == nil {
			e = c.Old
		}

		switch e := e.(type) {
		case *model.Node:
			// Process Node e.
			nc++
		case *model.Way:
			// Process Way e.
			wc++
		case *model.Relation:
			// Process Relation e.
			rc++
		default:
			log.Fatalf("unknown type %T\n", e)
		}
	}

	fmt.Printf("Nodes: %d, Ways: %d, Relations: %d\n", nc, wc, rc)
	// Output:
	// Nodes: 2, Ways: 1, Relations: 1
}

func ExampleTag_Match() {
	tag := model.Tag{Key: "amenity", Value: "bench"}

	for _, pattern := range []string{"amenity=bench", "amenity=*", "leisure=*"} {
		ok, err := tag.Match(pattern)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("%s: %t\n", pattern, ok)
	}
	// Output:
	// amenity=bench: true
	// amenity=*: true
	// leisure=*: false
}
