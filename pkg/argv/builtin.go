// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"cmp"
	"container/list"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"time"
)

var (
	argType      = reflect.TypeFor[Arg]()
	namedArgType = reflect.TypeFor[NamedArg]()
	durationType = reflect.TypeFor[time.Duration]()
	urlType      = reflect.TypeFor[url.URL]()
	listType     = reflect.TypeFor[list.List]()
)

// addrOf returns a pointer to rv, copying it if rv is not addressable.
func addrOf(rv reflect.Value) reflect.Value {
	if rv.CanAddr() {
		return rv.Addr()
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return p
}

// implementer returns rv, or a pointer to it, as an implementation of
// iface.
func implementer(rv reflect.Value, iface reflect.Type) (any, bool) {
	t := rv.Type()
	if t.Implements(iface) {
		return rv.Interface(), true
	}
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(iface) {
		return addrOf(rv).Interface(), true
	}
	return nil, false
}

// absent reports whether rv holds no value at all.
func absent(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// scalar returns the single token of a scalar value.
func scalar(rv reflect.Value) (string, bool) {
	switch rv.Type() {
	case durationType:
		return time.Duration(rv.Int()).String(), true
	case urlType:
		return addrOf(rv).Interface().(*url.URL).String(), true
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	case reflect.Complex64:
		return strconv.FormatComplex(rv.Complex(), 'f', -1, 64), true
	case reflect.Complex128:
		return strconv.FormatComplex(rv.Complex(), 'f', -1, 128), true
	case reflect.String:
		return rv.String(), true
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes()), true
		}
	}
	return "", false
}

func encodeUnnamed(c Consumer, rv reflect.Value) bool {
	if absent(rv) {
		return false
	}
	if a, ok := implementer(rv, argType); ok {
		return a.(Arg).AddUnnamedTo(c)
	}
	if s, ok := scalar(rv); ok {
		c.AddArg(s)
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return encodeUnnamed(c, rv.Elem())
	case reflect.Slice, reflect.Array, reflect.Map:
		return encodeElems(c, rv)
	case reflect.Struct:
		if rv.Type() == listType {
			return encodeElems(c, rv)
		}
		return encodeStruct(c, rv, planFor(rv.Type()))
	}
	// bool, chan, func and unsafe.Pointer have no unnamed form.
	return false
}

func encodeNamed(c Consumer, name string, rv reflect.Value) bool {
	if absent(rv) {
		return false
	}
	if n, ok := implementer(rv, namedArgType); ok {
		return n.(NamedArg).AddTo(name, c)
	}
	if a, ok := implementer(rv, argType); ok {
		c.AddArg(name)
		return a.(Arg).AddUnnamedTo(c)
	}
	if s, ok := scalar(rv); ok {
		c.AddArgs(name, s)
		return true
	}
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			c.AddArg(name)
			return true
		}
		return false
	case reflect.Pointer, reflect.Interface:
		return encodeNamed(c, name, rv.Elem())
	case reflect.Slice, reflect.Array, reflect.Map:
		if rv.Len() == 0 {
			return false
		}
		c.AddArg(name)
		return encodeElems(c, rv)
	case reflect.Struct:
		if rv.Type() == listType {
			if addrOf(rv).Interface().(*list.List).Len() == 0 {
				return false
			}
			c.AddArg(name)
			return encodeElems(c, rv)
		}
		p := planFor(rv.Type())
		if p.err == nil && p.co.DropName {
			return encodeStruct(c, rv, p)
		}
		c.AddArg(name)
		return encodeStruct(c, rv, p)
	}
	return false
}

// encodeElems emits each element of a container. A non-empty container
// reports true even if its elements emitted nothing.
func encodeElems(c Consumer, rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return false
		}
		for i := range rv.Len() {
			encodeUnnamed(c, rv.Index(i))
		}
		return true
	case reflect.Map:
		if rv.Len() == 0 {
			return false
		}
		for _, k := range sortedKeys(rv) {
			encodeUnnamed(c, k)
		}
		return true
	case reflect.Struct:
		l := addrOf(rv).Interface().(*list.List)
		if l.Len() == 0 {
			return false
		}
		for e := l.Front(); e != nil; e = e.Next() {
			if e.Value != nil {
				encodeUnnamed(c, reflect.ValueOf(e.Value))
			}
		}
		return true
	}
	return false
}

// sortedKeys returns the keys of a map in a deterministic order.
func sortedKeys(rv reflect.Value) []reflect.Value {
	keys := rv.MapKeys()
	slices.SortFunc(keys, compareValues)
	return keys
}

func compareValues(a, b reflect.Value) int {
	if a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmp.Compare(a.Int(), b.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cmp.Compare(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(a.Float(), b.Float())
		case reflect.String:
			return cmp.Compare(a.String(), b.String())
		case reflect.Bool:
			return cmp.Compare(boolInt(a.Bool()), boolInt(b.Bool()))
		}
	}
	return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
