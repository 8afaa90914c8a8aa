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
	"os"

	"github.com/spf13/pflag"
)

// fileValue is a pflag.Value opening the named diff file; "-" is stdin.
type fileValue struct {
	value    **os.File
	typename string
}

var _ pflag.Value = (*fileValue)(nil)

// NewReaderValue creates a flag value for an *os.File, initialized to def.
func NewReaderValue(def *os.File, p **os.File, typename string) pflag.Value {
	*p = def

	return &fileValue{
		value:    p,
		typename: typename,
	}
}

func (r *fileValue) Set(val string) error {
	if val == "-" {
		*r.value = os.Stdin

		return nil
	}

	f, err := os.Open(val)
	if err != nil {
		return fmt.Errorf("unable to open diff: %w", err)
	}

	*r.value = f

	return nil
}

func (r *fileValue) Type() string {
	return r.typename
}

func (r *fileValue) String() string {
	if r.value == nil || *r.value == nil {
		return ""
	}

	return (*r.value).Name()
}
