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

// Package cli holds the root command and the helpers shared by the adiff
// subcommands.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"m4o.io/adiff"
)

var input *os.File

// RootCmd is the command every subcommand registers with.
var RootCmd = &cobra.Command{
	Use:   "adiff",
	Short: "Inspect OpenStreetMap augmented diffs",
	Long:  "Inspect OpenStreetMap augmented diffs, optionally compressed",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		return nil
	},
	SilenceUsage: true,
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.VarP(NewReaderValue(os.Stdin, &input, "file"), "input", "i", "augmented diff to read, instead of the argument or stdin")
	flags.StringP("compression", "z", adiff.DefaultCompression.String(), "compression of the input: auto, raw, gzip, zlib, zstd, lz4 or xz")
	flags.BoolP("verbose", "v", false, "log decoding details to stderr")
}

// Input opens the file named by the first argument, falling back to the
// --input flag and then stdin.  Files other than stdin are wrapped with a
// progress bar unless quiet is set.  Closing the returned stdin reader leaves
// stdin open.
func Input(args []string, quiet bool) (io.ReadCloser, error) {
	f := input

	if len(args) == 1 {
		var err error
		if f, err = os.Open(args[0]); err != nil {
			return nil, err
		}
	}

	if f == os.Stdin {
		return io.NopCloser(f), nil
	}

	if quiet {
		return f, nil
	}

	return WrapInputFile(f)
}

// Compression returns the compression chosen with the --compression flag.
func Compression(cmd *cobra.Command) (adiff.Compression, error) {
	name, err := cmd.Flags().GetString("compression")
	if err != nil {
		return adiff.DefaultCompression, err
	}

	return adiff.ParseCompression(name)
}
