// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argvgen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/types"
	"io"
	"strconv"
	"strings"
)

// ArgvPath is the import path of the runtime package referenced by
// generated code.
const ArgvPath = "github.com/yeetrun/argv/pkg/argv"

// Options control the generated file.
type Options struct {
	// Header is placed verbatim at the top of the file, typically a
	// license comment.
	Header string
	// Command is recorded in the generated-code notice.
	Command string
}

// Generate returns the formatted source of a file implementing argv.Arg
// for specs.
func Generate(pkg *Package, specs []*TypeSpec, opts Options) ([]byte, error) {
	g := &generator{argv: "argv."}
	if pkg.Path == ArgvPath {
		g.argv = ""
	}
	for _, s := range specs {
		g.typeSpec(s)
	}

	var out bytes.Buffer
	if h := strings.TrimSpace(opts.Header); h != "" {
		out.WriteString(h + "\n\n")
	}
	if opts.Command != "" {
		fmt.Fprintf(&out, "// Code generated by %s; DO NOT EDIT.\n\n", opts.Command)
	} else {
		out.WriteString("// Code generated by argvgen; DO NOT EDIT.\n\n")
	}
	fmt.Fprintf(&out, "package %s\n\n", pkg.Name)
	out.WriteString("import (\n")
	if g.strconv {
		out.WriteString("\t\"strconv\"\n\n")
	}
	if g.argv != "" {
		fmt.Fprintf(&out, "\t%q\n", ArgvPath)
	}
	out.WriteString(")\n")
	out.Write(g.buf.Bytes())

	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w\n%s", err, out.Bytes())
	}
	return src, nil
}

type generator struct {
	buf     bytes.Buffer
	argv    string // qualifier for the argv package
	strconv bool   // strconv is imported
}

func (g *generator) printf(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
}

func (g *generator) typeSpec(s *TypeSpec) {
	switch s.Kind {
	case KindEnum:
		for _, v := range s.Variants {
			g.typeSpec(v)
		}
		return
	case KindAsRepr:
		g.strconv = true
		g.methodHeader(s, "v")
		if s.Unsigned {
			g.printf("\tc.AddArg(strconv.FormatUint(uint64(v), 10))\n")
		} else {
			g.printf("\tc.AddArg(strconv.FormatInt(int64(v), 10))\n")
		}
		g.printf("\treturn true\n}\n")
	case KindToString:
		g.methodHeader(s, "v")
		g.printf("\tc.AddArg(v.String())\n\treturn true\n}\n")
	case KindStruct:
		g.structBody(s)
	}
	if s.Opts.DropName {
		g.printf("\n// AddTo implements %sNamedArg. The name is not emitted.\n", g.argv)
		g.printf("func (v %s) AddTo(_ string, c %sConsumer) bool {\n\treturn v.AddUnnamedTo(c)\n}\n", s.receiver(), g.argv)
	}
}

func (g *generator) methodHeader(s *TypeSpec, recv string) {
	g.printf("\n// AddUnnamedTo implements %sArg.\n", g.argv)
	if recv != "" {
		recv += " "
	}
	g.printf("func (%s%s) AddUnnamedTo(c %sConsumer) bool {\n", recv, s.receiver(), g.argv)
}

func (g *generator) structBody(s *TypeSpec) {
	static := len(s.Opts.StaticArgs) > 0
	if !static && !s.Opts.HasValue && len(s.Fields) == 0 {
		g.printf("\n// AddUnnamedTo implements %sArg. %s has no arguments.\n", g.argv, s.Name)
		g.printf("func (%s) AddUnnamedTo(%sConsumer) bool {\n\treturn false\n}\n", s.receiver(), g.argv)
		return
	}
	recv := "v"
	if len(s.Fields) == 0 {
		recv = ""
	}
	g.methodHeader(s, recv)
	if static {
		g.printf("\tc.AddArgs(%s)\n", quoteList(s.Opts.StaticArgs))
	}
	if s.Opts.HasValue {
		g.printf("\tc.AddArg(%s)\n\treturn true\n}\n", strconv.Quote(s.Opts.Value))
		return
	}
	acc := !static
	if acc {
		g.printf("\tanyAdded := false\n")
	}
	for _, f := range s.Fields {
		g.field(f, acc)
	}
	if acc {
		g.printf("\treturn anyAdded\n}\n")
	} else {
		g.printf("\treturn true\n}\n")
	}
}

// field writes the statements emitting f. With acc set, the statements
// record whether anything was added in anyAdded. Formatter methods on
// pointers and interfaces are only called on non-nil values.
func (g *generator) field(f *FieldSpec, acc bool) {
	var body bytes.Buffer
	g.fieldBody(&body, f, acc)
	if !f.nilable || body.Len() == 0 {
		g.buf.Write(body.Bytes())
		return
	}
	g.printf("\tif v.%s != nil {\n", f.Name)
	for _, line := range strings.SplitAfter(body.String(), "\n") {
		if line != "" {
			g.buf.WriteString("\t" + line)
		}
	}
	g.printf("\t}\n")
}

func (g *generator) fieldBody(w io.Writer, f *FieldSpec, acc bool) {
	x := "v." + f.Name
	switch {
	case f.formatterFunc:
		x = f.formatter + "(" + x + ")"
	case f.formatter != "":
		x = x + "." + f.formatter + "()"
	}
	name := strconv.Quote(f.Flag)
	mark := ""
	if acc {
		mark = "\tanyAdded = true\n"
	}

	var token string
	switch f.emit {
	case emitBool:
		if f.Positional {
			// Booleans have no unnamed form.
			return
		}
		fmt.Fprintf(w, "\tif %s {\n\t\tc.AddArg(%s)\n%s\t}\n", x, name, indent(mark))
		return
	case emitString:
		token = convert(x, "string", f.typ)
	case emitInt:
		g.strconv = true
		token = "strconv.FormatInt(" + convert(x, "int64", f.typ) + ", 10)"
	case emitUint:
		g.strconv = true
		token = "strconv.FormatUint(" + convert(x, "uint64", f.typ) + ", 10)"
	case emitFloat32:
		g.strconv = true
		token = "strconv.FormatFloat(float64(" + x + "), 'f', -1, 32)"
	case emitFloat64:
		g.strconv = true
		token = "strconv.FormatFloat(" + convert(x, "float64", f.typ) + ", 'f', -1, 64)"
	default:
		call := g.argv + "AddUnnamed(c, " + x + ")"
		if !f.Positional {
			call = g.argv + "AddNamed(c, " + name + ", " + x + ")"
		}
		if acc {
			fmt.Fprintf(w, "\tif %s {\n\t\tanyAdded = true\n\t}\n", call)
		} else {
			fmt.Fprintf(w, "\t%s\n", call)
		}
		return
	}
	if f.Positional {
		fmt.Fprintf(w, "\tc.AddArg(%s)\n%s", token, mark)
	} else {
		fmt.Fprintf(w, "\tc.AddArgs(%s, %s)\n%s", name, token, mark)
	}
}

// convert returns x converted to the predeclared type to, unless x already
// has that type.
func convert(x, to string, t types.Type) string {
	if b, ok := t.(*types.Basic); ok && b.Name() == to {
		return x
	}
	return to + "(" + x + ")"
}

func quoteList(ss []string) string {
	q := make([]string, len(ss))
	for i, s := range ss {
		q[i] = strconv.Quote(s)
	}
	return strings.Join(q, ", ")
}

func indent(s string) string {
	if s == "" {
		return ""
	}
	return "\t" + s
}
