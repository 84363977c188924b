// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argv renders Go values as command-line argument tokens.
//
// Structs are rendered field by field, controlled by `arg` struct tags:
//
//	type Up struct {
//		_        argv.Meta `arg:"static_args=['compose']"`
//		Project  string    `arg:"rename=project-name"`
//		Detach   bool      `arg:"short,rename=d"`
//		Services []string  `arg:"variadic"`
//	}
//
//	argv.Collect(Up{Project: "web", Detach: true, Services: []string{"db"}})
//	// [compose --project-name web -d db]
//
// Named fields are emitted first in declaration order, then positional
// fields by position, then the variadic field. Empty containers, nil
// pointers and false booleans emit nothing.
//
// Types may implement Arg (and NamedArg) to control their own rendering.
// cmd/argvgen generates those methods from the same tags.
//
// Options of non-struct types (to_string, as_repr and the drop_name or
// static_args of a sealed interface) are written as //argv: lines in the
// type's doc comment. Reflection cannot read doc comments, so those types
// render as plain values until argvgen has generated their methods. The
// generator rejects a field whose type has directives but is not part of
// the run.
package argv

import (
	"errors"
	"reflect"

	"github.com/yeetrun/argv/pkg/argtag"
)

// Arg is implemented by values that render themselves as arguments.
type Arg interface {
	// AddUnnamedTo appends the value's tokens to c and reports whether
	// anything was added.
	AddUnnamedTo(c Consumer) bool
}

// NamedArg is implemented by values that render themselves differently
// when they appear under a name. Without it a named value emits the name
// followed by its unnamed tokens.
type NamedArg interface {
	AddTo(name string, c Consumer) bool
}

// Meta marks a blank struct field carrying container options:
//
//	_ argv.Meta `arg:"drop_name"`
type Meta struct{}

// AddUnnamed appends the tokens of v to c and reports whether anything was
// added. It panics with an *argtag.Error if v's type has invalid
// annotations; use Validate to check ahead of time.
func AddUnnamed(c Consumer, v any) bool {
	if v == nil {
		return false
	}
	return encodeUnnamed(c, reflect.ValueOf(v))
}

// AddNamed appends v to c under name. Booleans emit only the name when
// true. Other values emit the name followed by their unnamed tokens,
// unless they are empty.
func AddNamed(c Consumer, name string, v any) bool {
	if v == nil {
		return false
	}
	return encodeNamed(c, name, reflect.ValueOf(v))
}

// Collect returns the unnamed tokens of v.
func Collect(v any) Args {
	return CollectTo[Args](v)
}

// CollectTo adds the unnamed tokens of v to a new C and returns it.
//
//	line := argv.CollectTo[argv.Line](v).String()
func CollectTo[C any, P interface {
	*C
	Consumer
}](v any) C {
	var c C
	AddUnnamed(P(&c), v)
	return c
}

// Marshal is like Collect but returns annotation errors instead of
// panicking.
func Marshal(v any) (args []string, err error) {
	if err := Validate(v); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(error)
			if !ok || !isSchemaError(perr) {
				panic(r)
			}
			args, err = nil, perr
		}
	}()
	var a Args
	AddUnnamed(&a, v)
	return a, nil
}

// Validate checks the annotations of v's type and of the struct types
// reachable from its fields.
func Validate(v any) error {
	if v == nil {
		return nil
	}
	return validateType(reflect.TypeOf(v), map[reflect.Type]bool{})
}

func isSchemaError(err error) bool {
	var e *argtag.Error
	return errors.As(err, &e)
}
