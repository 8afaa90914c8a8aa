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

// Package adiff decodes OpenStreetMap augmented diff documents.
package adiff

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/beevik/etree"

	"m4o.io/adiff/internal/decoder"
	"m4o.io/adiff/model"
)

// Decoder reads and decodes an OpenStreetMap augmented diff from an input
// stream.
type Decoder struct {
	cfg *decoderOptions
	ctx context.Context

	rdr  io.ReadCloser
	done bool
}

// NewDecoder returns a new decoder, configured with opts, that reads from
// rdr.  The compression of the input is resolved before returning.
func NewDecoder(ctx context.Context, rdr io.Reader, opts ...DecoderOption) (*Decoder, error) {
	cfg := newDecoderConfig(opts)

	rc, err := decoder.Unpack(ctxReader{ctx: ctx, r: rdr}, cfg.compression)
	if err != nil {
		slog.Error("unable to unpack document", "error", err)

		return nil, err
	}

	return &Decoder{
		cfg: &cfg,
		ctx: ctx,
		rdr: rc,
	}, nil
}

// Decode reads the whole document and returns the diff it describes.  The
// decoder holds a single document; later calls return io.EOF.
func (d *Decoder) Decode() (*model.Diff, error) {
	if d.done {
		return nil, io.EOF
	}

	d.done = true

	start := time.Now()

	diff, err := d.decode()

	d.cfg.metrics.Observe(diff, time.Since(start), err)

	if err != nil {
		slog.Error("unable to decode diff", "error", err)

		return nil, err
	}

	slog.Debug("decoded diff", "changes", len(diff.Changes), "took", time.Since(start))

	return diff, nil
}

func (d *Decoder) decode() (*model.Diff, error) {
	if err := d.ctx.Err(); err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(d.rdr); err != nil {
		if ctxErr := d.ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		return nil, fmt.Errorf("unable to read document: %w", err)
	}

	if err := d.ctx.Err(); err != nil {
		return nil, err
	}

	return decoder.ParseDocument(doc, d.cfg.clock)
}

// Close releases the decompressor of the decoder.  The underlying reader is
// not closed.
func (d *Decoder) Close() error {
	d.done = true

	return d.rdr.Close()
}

// Decode decodes the single augmented diff read from rdr.
func Decode(ctx context.Context, rdr io.Reader, opts ...DecoderOption) (*model.Diff, error) {
	d, err := NewDecoder(ctx, rdr, opts...)
	if err != nil {
		return nil, err
	}

	defer d.Close()

	return d.Decode()
}

// Parse decodes an augmented diff that has already been loaded.  Only the
// clock and metrics options apply.
func Parse(doc *etree.Document, opts ...DecoderOption) (*model.Diff, error) {
	cfg := newDecoderConfig(opts)

	start := time.Now()

	diff, err := decoder.ParseDocument(doc, cfg.clock)

	cfg.metrics.Observe(diff, time.Since(start), err)

	return diff, err
}

// ctxReader stops reading once its context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}

	return c.r.Read(p)
}
