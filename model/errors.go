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
	"errors"
	"fmt"
)

// ErrFormat is matched by every FormatError when using errors.Is.
var ErrFormat = errors.New("invalid augmented diff")

// FormatError reports content that does not follow the augmented diff
// format.  Subject names the offending fragment, e.g. an unknown kind name or
// a malformed tag pattern.
type FormatError struct {
	Msg     string
	Subject string
	Err     error
}

// NewFormatError creates a FormatError about subject.
func NewFormatError(msg, subject string) *FormatError {
	return &FormatError{Msg: msg, Subject: subject}
}

// WrapFormatError creates a FormatError about subject caused by err.
func WrapFormatError(msg, subject string, err error) *FormatError {
	return &FormatError{Msg: msg, Subject: subject, Err: err}
}

func (e *FormatError) Error() string {
	s := e.Msg
	if e.Subject != "" {
		s = fmt.Sprintf("%s: %q", s, e.Subject)
	}

	if e.Err != nil {
		s = fmt.Sprintf("%s: %v", s, e.Err)
	}

	return s
}

// Is makes errors.Is(err, ErrFormat) true for any FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
