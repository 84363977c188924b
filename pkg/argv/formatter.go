// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"fmt"
	"reflect"

	"github.com/yeetrun/argv/pkg/argtag"
	"tailscale.com/syncs"
)

var formatters syncs.Map[string, reflect.Value]

// RegisterFormatter makes fn available to fields tagged formatter=name.
// fn must be a func taking the field's value and returning one value,
// which is rendered in place of the field. Formatters must be registered
// before the first use of a type referring to them.
//
// A method named name on the field's type takes precedence over a
// registered formatter.
func RegisterFormatter(name string, fn any) {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.Type().NumIn() != 1 || rv.Type().NumOut() != 1 {
		panic(fmt.Sprintf("argv: formatter %q must be a func with one argument and one result, got %T", name, fn))
	}
	formatters.Store(name, rv)
}

// resolveFormatter returns a function applying the formatter called name
// to values of type t, and the formatter's result type.
func resolveFormatter(t reflect.Type, name string) (func(reflect.Value) reflect.Value, reflect.Type, error) {
	if format, out, ok, err := methodFormatter(t, name); ok || err != nil {
		return format, out, err
	}
	fn, ok := formatters.Load(name)
	if !ok {
		return nil, nil, &argtag.Error{
			Option: "formatter",
			Msg:    fmt.Sprintf("no method %s on %s and no formatter registered as %q", name, t, name),
			Err:    argtag.ErrMissingPrerequisite,
		}
	}
	if in := fn.Type().In(0); !t.AssignableTo(in) {
		return nil, nil, &argtag.Error{
			Option: "formatter",
			Msg:    fmt.Sprintf("formatter %q takes %s, not %s", name, in, t),
			Err:    argtag.ErrMissingPrerequisite,
		}
	}
	return func(v reflect.Value) reflect.Value {
		return fn.Call([]reflect.Value{v})[0]
	}, fn.Type().Out(0), nil
}

// methodFormatter looks for a method called name on t or *t.
func methodFormatter(t reflect.Type, name string) (format func(reflect.Value) reflect.Value, out reflect.Type, ok bool, err error) {
	m, onValue := t.MethodByName(name)
	if !onValue {
		if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
			return nil, nil, false, nil
		}
		if m, ok = reflect.PointerTo(t).MethodByName(name); !ok {
			return nil, nil, false, nil
		}
	}
	// Method types of concrete types include the receiver.
	wantIn := 1
	if t.Kind() == reflect.Interface {
		wantIn = 0
	}
	if m.Type.NumIn() != wantIn || m.Type.NumOut() != 1 {
		return nil, nil, true, &argtag.Error{
			Option: "formatter",
			Msg:    fmt.Sprintf("method %s.%s must take no arguments and return one value", t, name),
			Err:    argtag.ErrMissingPrerequisite,
		}
	}
	return func(v reflect.Value) reflect.Value {
		if k := v.Kind(); (k == reflect.Pointer || k == reflect.Interface) && v.IsNil() {
			return reflect.Value{}
		}
		if !onValue {
			v = addrOf(v)
		}
		return v.MethodByName(name).Call(nil)[0]
	}, m.Type.Out(0), true, nil
}
