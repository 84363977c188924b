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

// structPlan is the compiled rendering of a struct type.
type structPlan struct {
	co     argtag.ContainerOpts
	fields []fieldPlan
	err    error
}

type fieldPlan struct {
	index      int
	flag       string
	positional bool
	format     func(reflect.Value) reflect.Value // nil without a formatter
}

var (
	plans       syncs.Map[reflect.Type, *structPlan]
	stringerTyp = reflect.TypeFor[fmt.Stringer]()
)

func planFor(t reflect.Type) *structPlan {
	p, _ := plans.LoadOrInit(t, func() *structPlan {
		return compilePlan(t)
	})
	return p
}

func compilePlan(t reflect.Type) *structPlan {
	p := &structPlan{}
	typ := t.String()
	var (
		fields []argtag.Field
		index  []int
	)
	for i := range t.NumField() {
		sf := t.Field(i)
		tag, hasTag := sf.Tag.Lookup(argtag.TagKey)
		if sf.Name == "_" {
			if !hasTag {
				continue
			}
			co, err := argtag.ParseContainer(tag)
			if err != nil {
				p.err = argtag.FieldError(err, typ, "")
				return p
			}
			p.co = p.co.Merge(co)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		fo, err := argtag.ParseField(tag)
		if err != nil {
			p.err = argtag.FieldError(err, typ, sf.Name)
			return p
		}
		fields = append(fields, argtag.Field{Name: sf.Name, Index: len(fields), Opts: fo})
		index = append(index, i)
	}
	switch {
	case p.co.AsRepr:
		p.err = &argtag.Error{Type: typ, Option: "as_repr", Msg: "as_repr requires an integer underlying type", Err: argtag.ErrMissingPrerequisite}
		return p
	case p.co.ToString:
		if !t.Implements(stringerTyp) && !reflect.PointerTo(t).Implements(stringerTyp) {
			p.err = &argtag.Error{Type: typ, Option: "to_string", Msg: "to_string requires a String method", Err: argtag.ErrMissingPrerequisite}
			return p
		}
	}
	active, err := argtag.Plan(typ, p.co, fields)
	if err != nil {
		p.err = err
		return p
	}
	if p.co.ToString {
		return p
	}
	for _, f := range active {
		sf := t.Field(index[f.Index])
		fp := fieldPlan{
			index:      index[f.Index],
			flag:       f.FlagName(),
			positional: f.Positional(),
		}
		ft := sf.Type
		if f.Opts.Formatter != "" {
			format, out, err := resolveFormatter(ft, f.Opts.Formatter)
			if err != nil {
				p.err = argtag.FieldError(err, typ, sf.Name)
				return p
			}
			fp.format = format
			ft = out
		}
		if err := checkFieldType(ft); err != nil {
			p.err = argtag.FieldError(err, typ, sf.Name)
			return p
		}
		p.fields = append(p.fields, fp)
	}
	return p
}

// checkFieldType rejects types that can never be rendered.
func checkFieldType(t reflect.Type) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if t.Implements(argType) {
			return nil
		}
		return &argtag.Error{Msg: fmt.Sprintf("fields of kind %s cannot be rendered; skip the field or give it a formatter", t.Kind()), Err: argtag.ErrUnsupported}
	}
	return nil
}

func encodeStruct(c Consumer, rv reflect.Value, p *structPlan) bool {
	if p.err != nil {
		panic(p.err)
	}
	if p.co.ToString {
		c.AddArg(addrOf(rv).Interface().(fmt.Stringer).String())
		return true
	}
	c.AddArgs(p.co.StaticArgs...)
	if p.co.HasValue {
		c.AddArg(p.co.Value)
		return true
	}
	anyAdded := false
	for _, f := range p.fields {
		fv := rv.Field(f.index)
		if f.format != nil {
			fv = f.format(fv)
		}
		var added bool
		if f.positional {
			added = encodeUnnamed(c, fv)
		} else {
			added = encodeNamed(c, f.flag, fv)
		}
		if added {
			anyAdded = true
		}
	}
	return anyAdded || len(p.co.StaticArgs) > 0
}

// validateType checks t and the struct types reachable from it.
func validateType(t reflect.Type, seen map[reflect.Type]bool) error {
	for {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array:
			t = t.Elem()
			continue
		case reflect.Map:
			t = t.Key()
			continue
		}
		break
	}
	if t.Kind() != reflect.Struct || seen[t] {
		return nil
	}
	seen[t] = true
	if t == listType || t == urlType || t.Implements(argType) || reflect.PointerTo(t).Implements(argType) {
		return nil
	}
	p := planFor(t)
	if p.err != nil {
		return p.err
	}
	for _, f := range p.fields {
		ft := t.Field(f.index).Type
		if f.format != nil {
			continue
		}
		if err := validateType(ft, seen); err != nil {
			return err
		}
	}
	return nil
}
