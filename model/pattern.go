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

package model

import (
	"strings"
)

const (
	patternSeparator  = ","
	keyValueSeparator = "="
	anyValue          = "*"
)

// TagPattern is a parsed OSM style tag filter such as "amenity=bench" or
// "highway=*".  A nil Value matches any value of Key.
type TagPattern struct {
	Key   string
	Value *string
}

// ParseTagPattern parses a "key=value" pattern.  A value of "*" matches any
// value.  The pattern must hold exactly one "=" between a non-empty key and
// a non-empty value.
func ParseTagPattern(pattern string) (TagPattern, error) {
	key, value, found := strings.Cut(pattern, keyValueSeparator)
	if !found || key == "" || value == "" || strings.Contains(value, keyValueSeparator) {
		return TagPattern{}, NewFormatError("invalid tag pattern", pattern)
	}

	p := TagPattern{Key: key}
	if value != anyValue {
		p.Value = &value
	}

	return p, nil
}

// SplitTagPatterns splits a comma separated list such as "foo=bar,spam=*"
// into its patterns.  How the patterns combine is up to the caller.
func SplitTagPatterns(multiPattern string) []string {
	return strings.Split(multiPattern, patternSeparator)
}

// Matches reports whether the tag satisfies the pattern.
func (p TagPattern) Matches(t Tag) bool {
	if t.Key != p.Key {
		return false
	}

	return p.Value == nil || t.Value == *p.Value
}

func (p TagPattern) String() string {
	if p.Value == nil {
		return p.Key + keyValueSeparator + anyValue
	}

	return p.Key + keyValueSeparator + *p.Value
}

// Match parses pattern and reports whether the tag satisfies it.
func (t Tag) Match(pattern string) (bool, error) {
	p, err := ParseTagPattern(pattern)
	if err != nil {
		return false, err
	}

	return p.Matches(t), nil
}

// TagFilter is a compiled list of patterns applied to the tags of an element.
type TagFilter struct {
	patterns []TagPattern
	all      bool
}

// NewTagFilter compiles a comma separated list of patterns.  When all is set
// every pattern must be matched by some tag, otherwise a single match is
// enough.
func NewTagFilter(multiPattern string, all bool) (*TagFilter, error) {
	f := &TagFilter{all: all}

	for _, s := range SplitTagPatterns(multiPattern) {
		p, err := ParseTagPattern(s)
		if err != nil {
			return nil, err
		}

		f.patterns = append(f.patterns, p)
	}

	return f, nil
}

// Patterns returns the compiled patterns in the order given.
func (f *TagFilter) Patterns() []TagPattern {
	return f.patterns
}

// Matches applies the filter to tags.
func (f *TagFilter) Matches(tags []Tag) bool {
	for _, p := range f.patterns {
		matched := matchesAny(p, tags)

		if f.all && !matched {
			return false
		} else if !f.all && matched {
			return true
		}
	}

	return f.all
}

func matchesAny(p TagPattern, tags []Tag) bool {
	for _, t := range tags {
		if p.Matches(t) {
			return true
		}
	}

	return false
}
