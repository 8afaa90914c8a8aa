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
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"m4o.io/adiff/internal/decoder"
	"m4o.io/adiff/internal/metric"
)

// Compression is an enumeration of the compressions a document may be
// stored with.
type Compression = decoder.Compression

const (
	AUTO = decoder.AUTO
	RAW  = decoder.RAW
	GZIP = decoder.GZIP
	ZLIB = decoder.ZLIB
	ZSTD = decoder.ZSTD
	LZ4  = decoder.LZ4
	XZ   = decoder.XZ

	// DefaultCompression detects the compression of each document.
	DefaultCompression = AUTO
)

// ErrUnknownCompressionType is returned for a compression that is not
// supported.
var ErrUnknownCompressionType = decoder.ErrUnknownCompressionType

// ParseCompression returns the Compression named name, e.g. "gzip".
func ParseCompression(name string) (Compression, error) {
	return decoder.ParseCompression(name)
}

// Metrics holds the Prometheus collectors updated by decoders.
type Metrics = metric.Metrics

// NewMetrics creates the decoder metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := metric.New()
	if err := m.Register(reg); err != nil {
		return nil, err
	}

	return m, nil
}

// DefaultNCpu provides the default number of CPUs.
func DefaultNCpu() uint16 {
	cpus := uint16(runtime.GOMAXPROCS(-1))

	return max(cpus-1, 1)
}

// decoderOptions provides optional configuration parameters for Decoder construction.
type decoderOptions struct {
	compression Compression      // compression of the input documents
	clock       func() time.Time // source of the import timestamp
	nCPU        uint16           // the number of documents decoded concurrently by DecodeAll
	metrics     *Metrics         // collectors to update, if any
}

// DecoderOption configures how we set up the decoder.
type DecoderOption func(*decoderOptions)

// WithCompression specifies the compression of the input.  The default is to
// detect it.
func WithCompression(c Compression) DecoderOption {
	return func(o *decoderOptions) {
		o.compression = c
	}
}

// WithClock lets you set the source of the import timestamp of decoded
// diffs.
func WithClock(clock func() time.Time) DecoderOption {
	return func(o *decoderOptions) {
		o.clock = clock
	}
}

// WithNCpus lets you set the number of documents DecodeAll decodes
// concurrently.
func WithNCpus(n uint16) DecoderOption {
	return func(o *decoderOptions) {
		o.nCPU = n
	}
}

// WithMetrics lets you set the collectors updated for each decoded document.
func WithMetrics(m *Metrics) DecoderOption {
	return func(o *decoderOptions) {
		o.metrics = m
	}
}

// defaultDecoderConfig provides a default configuration for decoders.
var defaultDecoderConfig = decoderOptions{
	compression: DefaultCompression,
	clock:       time.Now,
	nCPU:        DefaultNCpu(),
}

func newDecoderConfig(opts []DecoderOption) decoderOptions {
	cfg := defaultDecoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.nCPU < 1 {
		cfg.nCPU = 1
	}

	if cfg.clock == nil {
		cfg.clock = time.Now
	}

	return cfg
}
