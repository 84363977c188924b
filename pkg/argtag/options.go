// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argtag parses and validates the annotations that control how a
// type is rendered as command-line arguments.
//
// Field options are written in an `arg` struct tag:
//
//	type Build struct {
//		Tag     string   `arg:"short,rename=t"`
//		Context string   `arg:"position=0"`
//		Extra   []string `arg:"variadic"`
//		Cache   string   `arg:"skip"`
//	}
//
// Container options are written in the tag of blank marker fields, or in
// //argv: directives for types that have no fields:
//
//	type Run struct {
//		_ argv.Meta `arg:"static_args=['run','--rm']"`
//		Image string `arg:"position=0"`
//	}
package argtag

import (
	"fmt"
	"strconv"
)

// TagKey is the struct tag key holding argument options.
const TagKey = "arg"

// DirectivePrefix starts a comment line holding container options.
const DirectivePrefix = "//argv:"

// FieldOpts are the options of a single field.
type FieldOpts struct {
	Skip        bool
	Short       bool
	Variadic    bool
	HasPosition bool
	Position    uint16
	Rename      string
	Formatter   string
}

// Positional reports whether the field is emitted without its name.
func (o FieldOpts) Positional() bool {
	return o.HasPosition || o.Variadic
}

// Merge applies later on top of o. Flags are OR'd together and later
// values override earlier ones.
func (o FieldOpts) Merge(later FieldOpts) FieldOpts {
	o.Skip = o.Skip || later.Skip
	o.Short = o.Short || later.Short
	o.Variadic = o.Variadic || later.Variadic
	if later.HasPosition {
		o.HasPosition = true
		o.Position = later.Position
	}
	if later.Rename != "" {
		o.Rename = later.Rename
	}
	if later.Formatter != "" {
		o.Formatter = later.Formatter
	}
	return o
}

// ContainerOpts are the options of a type as a whole.
type ContainerOpts struct {
	DropName   bool
	ToString   bool
	AsRepr     bool
	Tuple      bool
	StaticArgs []string
	HasValue   bool
	Value      string
}

// Merge applies later on top of o. Static args concatenate.
func (o ContainerOpts) Merge(later ContainerOpts) ContainerOpts {
	o.DropName = o.DropName || later.DropName
	o.ToString = o.ToString || later.ToString
	o.AsRepr = o.AsRepr || later.AsRepr
	o.Tuple = o.Tuple || later.Tuple
	if len(later.StaticArgs) > 0 {
		o.StaticArgs = append(append([]string(nil), o.StaticArgs...), later.StaticArgs...)
	}
	if later.HasValue {
		o.HasValue = true
		o.Value = later.Value
	}
	return o
}

// ParseField parses the `arg` tag of a regular field.
func ParseField(tag string) (FieldOpts, error) {
	var fo FieldOpts
	if tag == "-" {
		fo.Skip = true
		return fo, nil
	}
	opts, err := parseOptions(tag)
	if err != nil {
		return fo, err
	}
	for _, o := range opts {
		switch o.Key {
		case "skip":
			err = noValue(o)
			fo.Skip = true
		case "short":
			err = noValue(o)
			fo.Short = true
		case "variadic":
			err = noValue(o)
			fo.Variadic = true
		case "position":
			if err = needValue(o); err != nil {
				break
			}
			var n uint64
			n, err = strconv.ParseUint(o.Value, 10, 16)
			if err != nil {
				err = &Error{Option: o.Key, Msg: fmt.Sprintf("position %q is not an integer in [0, 65535]", o.Value), Err: ErrMalformedLiteral}
				break
			}
			fo.HasPosition = true
			fo.Position = uint16(n)
		case "rename":
			if err = needValue(o); err != nil {
				break
			}
			var name string
			if name, err = text(o.Value); err == nil {
				if name == "" {
					err = &Error{Option: o.Key, Msg: "empty name", Err: ErrMalformedLiteral}
					break
				}
				fo.Rename = name
			}
		case "formatter":
			if err = needValue(o); err != nil {
				break
			}
			var name string
			if name, err = text(o.Value); err == nil {
				if !isIdent(name) {
					err = &Error{Option: o.Key, Msg: fmt.Sprintf("%q is not an identifier", name), Err: ErrMalformedLiteral}
					break
				}
				fo.Formatter = name
			}
		default:
			if isContainerKey(o.Key) {
				return fo, &Error{Option: o.Key, Msg: "container option used on a field; put it on a blank marker field", Err: ErrUnknownOption}
			}
			return fo, &Error{Option: o.Key, Err: ErrUnknownOption}
		}
		if err != nil {
			return fo, withOption(err, o.Key)
		}
	}
	return fo, nil
}

// ParseContainer parses container options, either from the `arg` tag of a
// blank marker field or from the text of an //argv: directive.
func ParseContainer(tag string) (ContainerOpts, error) {
	var co ContainerOpts
	opts, err := parseOptions(tag)
	if err != nil {
		return co, err
	}
	for _, o := range opts {
		switch o.Key {
		case "drop_name":
			err = noValue(o)
			co.DropName = true
		case "to_string":
			err = noValue(o)
			co.ToString = true
		case "as_repr":
			err = noValue(o)
			co.AsRepr = true
		case "tuple":
			err = noValue(o)
			co.Tuple = true
		case "static_args":
			if err = needValue(o); err != nil {
				break
			}
			var args []string
			if args, err = stringList(o.Value); err == nil {
				co.StaticArgs = append(co.StaticArgs, args...)
			}
		case "value":
			if err = needValue(o); err != nil {
				break
			}
			var v string
			if v, err = text(o.Value); err == nil {
				co.HasValue = true
				co.Value = v
			}
		default:
			return co, &Error{Option: o.Key, Err: ErrUnknownOption}
		}
		if err != nil {
			return co, withOption(err, o.Key)
		}
	}
	return co, nil
}

// Directive reports whether a comment line is an //argv: directive and
// returns its option text.
func Directive(line string) (string, bool) {
	if len(line) < len(DirectivePrefix) || line[:len(DirectivePrefix)] != DirectivePrefix {
		return "", false
	}
	return line[len(DirectivePrefix):], true
}

func isContainerKey(k string) bool {
	switch k {
	case "drop_name", "to_string", "as_repr", "tuple", "static_args", "value":
		return true
	}
	return false
}

func noValue(o option) error {
	if o.HasValue {
		return &Error{Option: o.Key, Msg: "option takes no value", Err: ErrMalformedLiteral}
	}
	return nil
}

func needValue(o option) error {
	if !o.HasValue || o.Value == "" {
		return &Error{Option: o.Key, Msg: "option requires a value", Err: ErrMalformedLiteral}
	}
	return nil
}

func withOption(err error, key string) error {
	if e, ok := err.(*Error); ok && e.Option == "" {
		c := *e
		c.Option = key
		return &c
	}
	return err
}
