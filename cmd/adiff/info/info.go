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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/adiff"
	"m4o.io/adiff/cmd/adiff/cli"
	"m4o.io/adiff/model"
)

var out io.Writer = os.Stdout

type summary struct {
	Imported           time.Time     `json:"imported"`
	Extent             *model.Bounds `json:"extent,omitempty"`
	InvalidBoundsCount int64         `json:"invalid_bounds_count"`

	model.Stats
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
}

var infoCmd = &cobra.Command{
	Use:   "info [<diff file>]",
	Short: "Print the number of changes and elements of an augmented diff",
	Long:  "Print the number of changes and elements of an augmented diff along with\nthe extent covered by its bounds and located nodes",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		c, err := cli.Compression(cmd)
		if err != nil {
			log.Fatal(err)
		}

		in, err := cli.Input(args, jsonfmt)
		if err != nil {
			log.Fatal(err)
		}

		info, err := runInfo(cmd.Context(), in, c)
		if err != nil {
			log.Fatal(err)
		}

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(info)
		} else {
			renderTxt(info)
		}
	},
}

func runInfo(ctx context.Context, in io.Reader, c adiff.Compression) (*summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	diff, err := adiff.Decode(ctx, in, adiff.WithCompression(c))
	if err != nil {
		return nil, err
	}

	extent, invalid := diff.Extent()

	return &summary{
		Imported:           diff.Imported,
		Extent:             extent,
		InvalidBoundsCount: int64(invalid),
		Stats:              diff.Stats(),
	}, nil
}

func renderJSON(info *summary) {
	b, err := json.Marshal(info)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprint(out, string(b))
}

func renderTxt(info *summary) {
	fmt.Fprintf(out, "Imported: %s\n", info.Imported.UTC().Format(time.RFC3339))
	fmt.Fprintf(out, "CreateCount: %s\n", humanize.Comma(info.CreateCount))
	fmt.Fprintf(out, "ModifyCount: %s\n", humanize.Comma(info.ModifyCount))
	fmt.Fprintf(out, "DeleteCount: %s\n", humanize.Comma(info.DeleteCount))
	fmt.Fprintf(out, "NodeCount: %s\n", humanize.Comma(info.NodeCount))
	fmt.Fprintf(out, "WayCount: %s\n", humanize.Comma(info.WayCount))
	fmt.Fprintf(out, "RelationCount: %s\n", humanize.Comma(info.RelationCount))
	fmt.Fprintf(out, "TagCount: %s\n", humanize.Comma(info.TagCount))

	if info.Extent != nil {
		fmt.Fprintf(out, "Extent: %s\n", info.Extent)
	}

	fmt.Fprintf(out, "InvalidBoundsCount: %s\n", humanize.Comma(info.InvalidBoundsCount))
}
