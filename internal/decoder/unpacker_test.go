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
	"bytes"
	"compress/zlib"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const document = `<osm><action type="create"><node id="1" lat="1" lon="2"/></action></osm>`

func pack(t *testing.T, c Compression, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer

	var w io.WriteCloser

	switch c {
	case RAW:
		return data
	case GZIP:
		w = gzip.NewWriter(&buf)
	case ZLIB:
		w = zlib.NewWriter(&buf)
	case ZSTD:
		zw, err := zstd.NewWriter(&buf)
		require.NoError(t, err)

		w = zw
	case LZ4:
		w = lz4.NewWriter(&buf)
	case XZ:
		xw, err := xz.NewWriter(&buf)
		require.NoError(t, err)

		w = xw
	default:
		t.Fatalf("unexpected compression %v", c)
	}

	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func TestUnpack(t *testing.T) {
	for _, c := range []Compression{RAW, GZIP, ZLIB, ZSTD, LZ4, XZ} {
		t.Run(c.String(), func(t *testing.T) {
			packed := pack(t, c, []byte(document))

			assert.Equal(t, c, Detect(packed))

			for _, mode := range []Compression{c, AUTO} {
				rc, err := Unpack(bytes.NewReader(packed), mode)
				require.NoError(t, err)

				b, err := io.ReadAll(rc)
				require.NoError(t, err)
				require.NoError(t, rc.Close())

				assert.Equal(t, document, string(b))
			}
		})
	}
}

func TestUnpack_ShortInput(t *testing.T) {
	rc, err := Unpack(bytes.NewReader([]byte("<a/>")), AUTO)
	require.NoError(t, err)

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "<a/>", string(b))
}

func TestUnpack_Corrupt(t *testing.T) {
	_, err := Unpack(bytes.NewReader([]byte("not gzip")), GZIP)
	assert.Error(t, err)

	_, err = Unpack(bytes.NewReader(nil), Compression(99))
	assert.ErrorIs(t, err, ErrUnknownCompressionType)
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{AUTO, RAW, GZIP, ZLIB, ZSTD, LZ4, XZ} {
		parsed, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParseCompression("brotli")
	assert.ErrorIs(t, err, ErrUnknownCompressionType)
}
