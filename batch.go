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

package adiff

import (
	"context"
	"io"
	"iter"

	"github.com/destel/rill"

	"m4o.io/adiff/model"
)

// DecodeAll decodes every source concurrently, up to the configured number
// of CPUs, and yields the results in the order of sources.  A failing source
// yields its error and does not stop the others.  Stopping the iteration
// early cancels the outstanding work.
func DecodeAll(ctx context.Context, sources []io.Reader, opts ...DecoderOption) iter.Seq2[*model.Diff, error] {
	return func(yield func(*model.Diff, error) bool) {
		cfg := newDecoderConfig(opts)

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		in := rill.FromSlice(sources, nil)

		out := rill.OrderedMap(in, int(cfg.nCPU), func(r io.Reader) (*model.Diff, error) {
			return Decode(ctx, r, opts...)
		})

		defer rill.DrainNB(out)

		for res := range out {
			if !yield(res.Value, res.Error) {
				return
			}
		}
	}
}
