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

// Package filter implements the filter command, which prints the elements of
// an augmented diff whose tags match a list of patterns.
package filter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"m4o.io/adiff"
	"m4o.io/adiff/cmd/adiff/cli"
	"m4o.io/adiff/model"
)

var out io.Writer = os.Stdout

const (
	versionOld = "old"
	versionNew = "new"
)

// match is an element whose tags matched, with where it was found.
type match struct {
	Action  string      `json:"action"`
	Version string      `json:"version"`
	Type    string      `json:"type"`
	ID      *model.ID   `json:"id"`
	Tags    []model.Tag `json:"tags"`
}

func init() {
	cli.RootCmd.AddCommand(filterCmd)

	flags := filterCmd.Flags()
	flags.StringP("tags", "t", "", "comma separated tag patterns, e.g. amenity=bench,highway=*")
	flags.BoolP("all", "a", false, "require every pattern to match instead of any")
	flags.BoolP("json", "j", false, "print one JSON object per element")

	_ = filterCmd.MarkFlagRequired("tags")
}

var filterCmd = &cobra.Command{
	Use:   "filter --tags <patterns> [<diff file>]",
	Short: "Print the elements of an augmented diff whose tags match",
	Long: `Print the elements of an augmented diff whose tags match.

Elements referenced by ways and relations are considered as well.  A pattern
is key=value, or key=* to match any value of key.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		patterns, err := flags.GetString("tags")
		if err != nil {
			log.Fatal(err)
		}

		all, err := flags.GetBool("all")
		if err != nil {
			log.Fatal(err)
		}

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		f, err := model.NewTagFilter(patterns, all)
		if err != nil {
			log.Fatal(err)
		}

		c, err := cli.Compression(cmd)
		if err != nil {
			log.Fatal(err)
		}

		in, err := cli.Input(args, false)
		if err != nil {
			log.Fatal(err)
		}

		matches, err := runFilter(cmd.Context(), in, c, f)
		if err != nil {
			log.Fatal(err)
		}

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(matches)
		} else {
			renderTxt(matches)
		}
	},
}

func runFilter(ctx context.Context, in io.Reader, c adiff.Compression, f *model.TagFilter) ([]match, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	diff, err := adiff.Decode(ctx, in, adiff.WithCompression(c))
	if err != nil {
		return nil, err
	}

	var matches []match

	collect := func(action model.ChangeKind, version string, root model.Element) {
		if root == nil {
			return
		}

		for e := range model.Walk(root) {
			if !f.Matches(e.GetTags()) {
				continue
			}

			matches = append(matches, match{
				Action:  action.String(),
				Version: version,
				Type:    e.GetKind().String(),
				ID:      e.GetInfo().ID,
				Tags:    e.GetTags(),
			})
		}
	}

	for _, change := range diff.Changes {
		collect(change.Kind, versionOld, change.Old)
		collect(change.Kind, versionNew, change.New)
	}

	return matches, nil
}

func renderJSON(matches []match) {
	enc := json.NewEncoder(out)

	for _, m := range matches {
		if err := enc.Encode(m); err != nil {
			log.Fatal(err)
		}
	}
}

func renderTxt(matches []match) {
	for _, m := range matches {
		id := "-"
		if m.ID != nil {
			id = fmt.Sprint(*m.ID)
		}

		tags := make([]string, len(m.Tags))
		for i, t := range m.Tags {
			tags[i] = t.String()
		}

		fmt.Fprintf(out, "%s %s %s %s %s\n", m.Action, m.Version, m.Type, id, strings.Join(tags, ","))
	}
}
