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

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	pb "gopkg.in/cheggaaa/pb.v1"
)

// progressReader reports the bytes read from a diff file on stderr.  Closing
// it closes the file and clears the progress line.
type progressReader struct {
	f   *os.File
	r   io.Reader
	bar *pb.ProgressBar
}

// WrapInputFile returns a reader over f that tracks the bytes read relative
// to the size of the file.  Stdin is returned without a progress bar and
// is left open when the reader is closed.
func WrapInputFile(f *os.File) (io.ReadCloser, error) {
	if f == os.Stdin {
		return io.NopCloser(f), nil
	}

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("unable to stat %s: %w", f.Name(), err)
	}

	bar := pb.New64(fi.Size()).SetUnits(pb.U_BYTES_DEC).SetWidth(79)
	bar.Prefix(filepath.Base(f.Name()))
	bar.Output = os.Stderr
	bar.Start()

	return &progressReader{
		f:   f,
		r:   bar.NewProxyReader(f),
		bar: bar,
	}, nil
}

func (p *progressReader) Read(b []byte) (int, error) {
	return p.r.Read(b)
}

func (p *progressReader) Close() error {
	// keep Finish from printing a trailing newline
	p.bar.Output = nil
	p.bar.NotPrint = true

	p.bar.Finish()

	fmt.Fprint(os.Stderr, "\033[2K\r")

	return p.f.Close()
}
