// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Field describes one candidate field of a struct.
type Field struct {
	Name  string // Go field name
	Index int    // ordinal among the candidate fields, in declaration order
	Opts  FieldOpts
}

// FlagName returns the name emitted ahead of the field's value: "-" for
// short fields, "--" otherwise, followed by the rename or the lowercased
// field name.
func (f Field) FlagName() string {
	name := f.Opts.Rename
	if name == "" {
		name = strings.ToLower(f.Name)
	}
	if f.Opts.Short {
		return "-" + name
	}
	return "--" + name
}

// Positional reports whether the field is emitted without its name.
func (f Field) Positional() bool {
	return f.Opts.Positional()
}

// Compare orders two fields' options. Variadic fields sort after all
// others and positioned fields sort after named ones, by position. ok is
// false when the options do not determine an order.
func Compare(a, b FieldOpts) (c int, ok bool) {
	if a.Variadic != b.Variadic {
		if a.Variadic {
			return 1, true
		}
		return -1, true
	}
	if a.Variadic {
		return 0, false
	}
	switch {
	case a.HasPosition && b.HasPosition:
		if a.Position == b.Position {
			return 0, false
		}
		return cmp.Compare(a.Position, b.Position), true
	case a.HasPosition:
		return 1, true
	case b.HasPosition:
		return -1, true
	}
	return 0, false
}

// Sort orders fields for emission. Fields that Compare cannot order keep
// their declaration order.
func Sort(fields []Field) {
	slices.SortStableFunc(fields, func(a, b Field) int {
		if c, ok := Compare(a.Opts, b.Opts); ok {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
}

// ValidateContainer checks options that conflict regardless of fields.
func ValidateContainer(co ContainerOpts) error {
	if co.ToString && co.AsRepr {
		return &Error{Option: "as_repr", Msg: "to_string and as_repr are mutually exclusive", Err: ErrConflictingOption}
	}
	if co.HasValue && (co.ToString || co.AsRepr) {
		return &Error{Option: "value", Msg: "value cannot be combined with to_string or as_repr", Err: ErrConflictingOption}
	}
	return nil
}

// Plan validates the fields of a struct with container options co and
// returns the active fields in emission order. typ is used in errors.
func Plan(typ string, co ContainerOpts, fields []Field) ([]Field, error) {
	if err := ValidateContainer(co); err != nil {
		return nil, withType(err, typ)
	}
	if co.HasValue && len(fields) > 0 {
		return nil, &Error{Type: typ, Option: "value", Msg: "value is only allowed on types without fields", Err: ErrConflictingOption}
	}
	active := make([]Field, 0, len(fields))
	var variadic []string
	for _, f := range fields {
		if co.Tuple {
			if f.Opts.Skip {
				return nil, &Error{Type: typ, Field: f.Name, Option: "skip", Msg: "skip is not allowed on tuple fields", Err: ErrConflictingOption}
			}
			if !f.Opts.HasPosition && f.Opts.Rename == "" && !f.Opts.Variadic {
				f.Opts.HasPosition = true
				f.Opts.Position = uint16(f.Index)
			}
		}
		if f.Opts.Skip {
			continue
		}
		if f.Opts.Variadic {
			variadic = append(variadic, f.Name)
		}
		active = append(active, f)
	}
	if len(variadic) > 1 {
		return nil, &Error{
			Type:   typ,
			Option: "variadic",
			Msg:    fmt.Sprintf("only one variadic field is allowed, found %s", strings.Join(variadic, ", ")),
			Err:    ErrConflictingOption,
		}
	}
	Sort(active)
	return active, nil
}

// FieldError attaches typ and field to err.
func FieldError(err error, typ, field string) error {
	return withType(withField(err, field), typ)
}
