// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtag

import (
	"errors"
	"strings"
)

// Sentinel errors classifying an *Error. Use errors.Is to test for them.
var (
	ErrUnknownOption       = errors.New("unknown option")
	ErrConflictingOption   = errors.New("conflicting options")
	ErrUnsupported         = errors.New("unsupported construct")
	ErrMissingPrerequisite = errors.New("missing prerequisite")
	ErrMalformedLiteral    = errors.New("malformed literal")
)

// Error reports an invalid annotation. It pinpoints the type, field and
// option involved when they are known.
type Error struct {
	Type   string // type name, if known
	Field  string // field name, if the error is field scoped
	Option string // option key, if the error is option scoped
	Msg    string
	Err    error // one of the sentinel errors above
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("argv: ")
	switch {
	case e.Type != "" && e.Field != "":
		sb.WriteString(e.Type + "." + e.Field + ": ")
	case e.Type != "":
		sb.WriteString(e.Type + ": ")
	case e.Field != "":
		sb.WriteString(e.Field + ": ")
	}
	if e.Option != "" {
		sb.WriteString("option " + quote(e.Option) + ": ")
	}
	if e.Msg != "" {
		sb.WriteString(e.Msg)
	} else if e.Err != nil {
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// withType returns err with its type name filled in if err is an *Error
// that does not have one yet.
func withType(err error, typ string) error {
	var e *Error
	if errors.As(err, &e) && e.Type == "" {
		c := *e
		c.Type = typ
		return &c
	}
	return err
}

// withField is like withType for the field name.
func withField(err error, field string) error {
	var e *Error
	if errors.As(err, &e) && e.Field == "" {
		c := *e
		c.Field = field
		return &c
	}
	return err
}

func quote(s string) string {
	return `"` + s + `"`
}
