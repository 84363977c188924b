// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argvgen

import (
	"gopkg.in/yaml.v3"
)

type typeDesc struct {
	Type       string      `yaml:"type"`
	Kind       Kind        `yaml:"kind"`
	DropName   bool        `yaml:"drop_name,omitempty"`
	StaticArgs []string    `yaml:"static_args,omitempty"`
	Value      *string     `yaml:"value,omitempty"`
	Fields     []fieldDesc `yaml:"fields,omitempty"`
	Variants   []typeDesc  `yaml:"variants,omitempty"`
}

type fieldDesc struct {
	Field     string  `yaml:"field"`
	Flag      string  `yaml:"flag,omitempty"`
	Position  *uint16 `yaml:"position,omitempty"`
	Variadic  bool    `yaml:"variadic,omitempty"`
	Formatter string  `yaml:"formatter,omitempty"`
}

// Describe renders the emission plan of specs as YAML, fields listed in
// the order they are emitted.
func Describe(specs []*TypeSpec) ([]byte, error) {
	descs := make([]typeDesc, 0, len(specs))
	for _, s := range specs {
		descs = append(descs, describe(s))
	}
	return yaml.Marshal(descs)
}

func describe(s *TypeSpec) typeDesc {
	d := typeDesc{
		Type:       s.Name,
		Kind:       s.Kind,
		DropName:   s.Opts.DropName,
		StaticArgs: s.Opts.StaticArgs,
	}
	if s.Opts.HasValue {
		v := s.Opts.Value
		d.Value = &v
	}
	for _, f := range s.Fields {
		fd := fieldDesc{
			Field:     f.Name,
			Variadic:  f.Opts.Variadic,
			Formatter: f.Opts.Formatter,
		}
		if f.Opts.HasPosition {
			p := f.Opts.Position
			fd.Position = &p
		}
		if !f.Positional {
			fd.Flag = f.Flag
		}
		d.Fields = append(d.Fields, fd)
	}
	for _, v := range s.Variants {
		d.Variants = append(d.Variants, describe(v))
	}
	return d
}
