// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argvgen

import (
	"cmp"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"slices"
	"strings"

	"github.com/yeetrun/argv/pkg/argtag"
	"tailscale.com/util/mak"
	"tailscale.com/util/set"
)

// Kind is the rendering strategy of a generated type.
type Kind string

const (
	KindStruct   Kind = "struct"    // fields in emission order
	KindEnum     Kind = "enum"      // sealed interface, one method per variant
	KindAsRepr   Kind = "as_repr"   // integer value
	KindToString Kind = "to_string" // String() as the sole token
)

// TypeSpec is the analyzed rendering of one declared type.
type TypeSpec struct {
	Name     string
	Kind     Kind
	Opts     argtag.ContainerOpts
	Fields   []*FieldSpec // KindStruct, in emission order
	Variants []*TypeSpec  // KindEnum, in declaration order
	Unsigned bool         // KindAsRepr

	typeParams []string
	pos        token.Pos
}

// FieldSpec is one active field of a struct.
type FieldSpec struct {
	argtag.Field
	Flag       string
	Positional bool

	formatter     string // method or function name
	formatterFunc bool   // formatter is a package-level function
	nilable       bool   // formatter method called on a pointer or interface
	typ           types.Type
	emit          emitKind
}

type emitKind int

const (
	emitDynamic emitKind = iota
	emitString
	emitBool
	emitInt
	emitUint
	emitFloat32
	emitFloat64
)

type analyzer struct {
	pkg *Package

	// generated holds the types receiving methods in this run.
	generated set.Set[*types.TypeName]
	// variantOf maps variants to their sealed interface.
	variantOf map[*types.TypeName]*types.TypeName
	docs      map[string][]*ast.Comment
}

// Analyze validates the annotations of the named types and returns their
// renderings in the order given.
func Analyze(pkg *Package, names []string) ([]*TypeSpec, error) {
	a := &analyzer{
		pkg:       pkg,
		generated: set.Set[*types.TypeName]{},
	}
	a.collectDocs()

	var objs []*types.TypeName
	seen := set.Set[string]{}
	for _, name := range names {
		if seen.Contains(name) {
			continue
		}
		seen.Add(name)
		obj, ok := pkg.Types.Scope().Lookup(name).(*types.TypeName)
		if !ok {
			return nil, fmt.Errorf("type %s not found in package %s", name, pkg.Path)
		}
		if obj.IsAlias() {
			return nil, &argtag.Error{Type: name, Msg: "type aliases are not supported; annotate the aliased type", Err: argtag.ErrUnsupported}
		}
		objs = append(objs, obj)
		a.generated.Add(obj)
	}
	for _, obj := range objs {
		iface, ok := obj.Type().Underlying().(*types.Interface)
		if !ok || !iface.IsMethodSet() {
			continue
		}
		for _, v := range a.variants(obj, iface) {
			if prev, ok := a.variantOf[v]; ok {
				return nil, fmt.Errorf("%s is a variant of both %s and %s", v.Name(), prev.Name(), obj.Name())
			}
			if a.generated.Contains(v) {
				return nil, &argtag.Error{Type: v.Name(), Msg: fmt.Sprintf("listed as a type and as a variant of %s", obj.Name()), Err: argtag.ErrConflictingOption}
			}
			mak.Set(&a.variantOf, v, obj)
			a.generated.Add(v)
		}
	}

	specs := make([]*TypeSpec, 0, len(objs))
	for _, obj := range objs {
		spec, err := a.analyzeType(obj)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// collectDocs records the doc comment of every type declaration.
func (a *analyzer) collectDocs() {
	for _, f := range a.pkg.Files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, s := range gd.Specs {
				ts := s.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				if doc != nil {
					mak.Set(&a.docs, ts.Name.Name, doc.List)
				}
			}
		}
	}
}

// directives returns the container options given in //argv: lines of the
// doc comment of the named type.
func (a *analyzer) directives(name string) (argtag.ContainerOpts, error) {
	var co argtag.ContainerOpts
	for _, c := range a.docs[name] {
		text, ok := argtag.Directive(c.Text)
		if !ok {
			continue
		}
		d, err := argtag.ParseContainer(text)
		if err != nil {
			return co, argtag.FieldError(err, name, "")
		}
		co = co.Merge(d)
	}
	return co, nil
}

// variants returns the named types of the package implementing iface, in
// declaration order.
func (a *analyzer) variants(obj *types.TypeName, iface *types.Interface) []*types.TypeName {
	var out []*types.TypeName
	scope := a.pkg.Types.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn == obj || tn.IsAlias() {
			continue
		}
		t := tn.Type()
		if types.IsInterface(t) {
			continue
		}
		if n, ok := t.(*types.Named); ok && n.TypeParams().Len() > 0 {
			continue
		}
		if types.Implements(t, iface) || types.Implements(types.NewPointer(t), iface) {
			out = append(out, tn)
		}
	}
	slices.SortFunc(out, func(x, y *types.TypeName) int {
		return cmp.Compare(x.Pos(), y.Pos())
	})
	return out
}

func (a *analyzer) analyzeType(obj *types.TypeName) (*TypeSpec, error) {
	name := obj.Name()
	co, err := a.directives(name)
	if err != nil {
		return nil, err
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, &argtag.Error{Type: name, Msg: "not a defined type", Err: argtag.ErrUnsupported}
	}
	switch u := named.Underlying().(type) {
	case *types.Struct:
		return a.analyzeStruct(named, u, co)
	case *types.Interface:
		return a.analyzeEnum(named, u, co)
	case *types.Basic:
		return a.analyzeBasic(named, u, co)
	}
	if co.AsRepr {
		return nil, &argtag.Error{Type: name, Option: "as_repr", Msg: "as_repr requires an integer underlying type", Err: argtag.ErrMissingPrerequisite}
	}
	if co.ToString {
		return a.toStringSpec(named, co)
	}
	return nil, &argtag.Error{Type: name, Msg: fmt.Sprintf("cannot generate for %s; add //argv:to_string", named.Underlying()), Err: argtag.ErrUnsupported}
}

func (a *analyzer) newSpec(named *types.Named, kind Kind, co argtag.ContainerOpts) *TypeSpec {
	spec := &TypeSpec{
		Name: named.Obj().Name(),
		Kind: kind,
		Opts: co,
		pos:  named.Obj().Pos(),
	}
	for i := range named.TypeParams().Len() {
		spec.typeParams = append(spec.typeParams, named.TypeParams().At(i).Obj().Name())
	}
	return spec
}

func (a *analyzer) toStringSpec(named *types.Named, co argtag.ContainerOpts) (*TypeSpec, error) {
	if err := argtag.ValidateContainer(co); err != nil {
		return nil, argtag.FieldError(err, named.Obj().Name(), "")
	}
	if !hasNiladicMethod(named, "String", a.pkg.Types) {
		return nil, &argtag.Error{Type: named.Obj().Name(), Option: "to_string", Msg: "to_string requires a String method", Err: argtag.ErrMissingPrerequisite}
	}
	return a.newSpec(named, KindToString, co), nil
}

func (a *analyzer) analyzeBasic(named *types.Named, b *types.Basic, co argtag.ContainerOpts) (*TypeSpec, error) {
	name := named.Obj().Name()
	if err := argtag.ValidateContainer(co); err != nil {
		return nil, argtag.FieldError(err, name, "")
	}
	switch {
	case co.AsRepr:
		if b.Info()&types.IsInteger == 0 {
			return nil, &argtag.Error{Type: name, Option: "as_repr", Msg: "as_repr requires an integer underlying type", Err: argtag.ErrMissingPrerequisite}
		}
		spec := a.newSpec(named, KindAsRepr, co)
		spec.Unsigned = b.Info()&types.IsUnsigned != 0
		return spec, nil
	case co.ToString:
		return a.toStringSpec(named, co)
	}
	return nil, &argtag.Error{Type: name, Msg: fmt.Sprintf("%s has underlying type %s; add //argv:as_repr or //argv:to_string", name, b), Err: argtag.ErrMissingPrerequisite}
}

func (a *analyzer) analyzeEnum(named *types.Named, iface *types.Interface, co argtag.ContainerOpts) (*TypeSpec, error) {
	name := named.Obj().Name()
	if !iface.IsMethodSet() {
		return nil, &argtag.Error{Type: name, Msg: "union constraints are not supported; use a sealed interface with struct variants", Err: argtag.ErrUnsupported}
	}
	if err := argtag.ValidateContainer(co); err != nil {
		return nil, argtag.FieldError(err, name, "")
	}
	if co.ToString || co.AsRepr || co.HasValue || co.Tuple {
		return nil, &argtag.Error{Type: name, Msg: "only drop_name and static_args apply to a sealed interface", Err: argtag.ErrConflictingOption}
	}
	spec := a.newSpec(named, KindEnum, co)
	for v, of := range a.variantOf {
		if of != named.Obj() {
			continue
		}
		vn := v.Type().(*types.Named)
		st, ok := vn.Underlying().(*types.Struct)
		if !ok {
			return nil, &argtag.Error{
				Type: v.Name(),
				Msg:  fmt.Sprintf("variant of %s has underlying type %s; discriminant values are not supported, use a struct variant with value=", name, vn.Underlying()),
				Err:  argtag.ErrUnsupported,
			}
		}
		vco, err := a.directives(v.Name())
		if err != nil {
			return nil, err
		}
		vspec, err := a.analyzeStruct(vn, st, co.Merge(vco))
		if err != nil {
			return nil, err
		}
		spec.Variants = append(spec.Variants, vspec)
	}
	if len(spec.Variants) == 0 {
		return nil, &argtag.Error{Type: name, Msg: "sealed interface has no variants in this package", Err: argtag.ErrMissingPrerequisite}
	}
	slices.SortFunc(spec.Variants, func(x, y *TypeSpec) int {
		return cmp.Compare(x.pos, y.pos)
	})
	return spec, nil
}

func (a *analyzer) analyzeStruct(named *types.Named, st *types.Struct, co argtag.ContainerOpts) (*TypeSpec, error) {
	name := named.Obj().Name()
	var (
		fields []argtag.Field
		vars   []*types.Var
	)
	for i := range st.NumFields() {
		f := st.Field(i)
		tag, hasTag := reflect.StructTag(st.Tag(i)).Lookup(argtag.TagKey)
		if f.Name() == "_" {
			if !hasTag {
				continue
			}
			fco, err := argtag.ParseContainer(tag)
			if err != nil {
				return nil, argtag.FieldError(err, name, "")
			}
			co = co.Merge(fco)
			continue
		}
		if !f.Exported() {
			continue
		}
		fo, err := argtag.ParseField(tag)
		if err != nil {
			return nil, argtag.FieldError(err, name, f.Name())
		}
		fields = append(fields, argtag.Field{Name: f.Name(), Index: len(fields), Opts: fo})
		vars = append(vars, f)
	}
	if co.AsRepr {
		return nil, &argtag.Error{Type: name, Option: "as_repr", Msg: "as_repr requires an integer underlying type", Err: argtag.ErrMissingPrerequisite}
	}
	active, err := argtag.Plan(name, co, fields)
	if err != nil {
		return nil, err
	}
	if co.ToString {
		return a.toStringSpec(named, co)
	}
	spec := a.newSpec(named, KindStruct, co)
	for _, f := range active {
		fs := &FieldSpec{
			Field:      f,
			Flag:       f.FlagName(),
			Positional: f.Positional(),
			typ:        vars[f.Index].Type(),
		}
		if f.Opts.Formatter != "" {
			if err := a.resolveFormatter(fs); err != nil {
				return nil, argtag.FieldError(err, name, f.Name)
			}
		}
		if err := a.checkFieldType(fs.typ); err != nil {
			return nil, argtag.FieldError(err, name, f.Name)
		}
		if fs.formatter == "" {
			if err := a.checkDirectives(fs.typ); err != nil {
				return nil, argtag.FieldError(err, name, f.Name)
			}
		}
		fs.emit = a.emitKind(fs.typ)
		spec.Fields = append(spec.Fields, fs)
	}
	return spec, nil
}

// resolveFormatter finds the method or package-level function named by the
// field's formatter option and updates the field's rendered type.
func (a *analyzer) resolveFormatter(fs *FieldSpec) error {
	name := fs.Opts.Formatter
	obj, _, _ := types.LookupFieldOrMethod(fs.typ, true, a.pkg.Types, name)
	if fn, ok := obj.(*types.Func); ok {
		sig := fn.Type().(*types.Signature)
		if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
			return &argtag.Error{Option: "formatter", Msg: fmt.Sprintf("method %s must take no arguments and return one value", name), Err: argtag.ErrMissingPrerequisite}
		}
		if _, tp := fs.typ.(*types.TypeParam); !tp {
			switch fs.typ.Underlying().(type) {
			case *types.Pointer, *types.Interface:
				fs.nilable = true
			}
		}
		fs.formatter = name
		fs.typ = sig.Results().At(0).Type()
		return nil
	}
	fn, ok := a.pkg.Types.Scope().Lookup(name).(*types.Func)
	if !ok {
		return &argtag.Error{Option: "formatter", Msg: fmt.Sprintf("no method or function named %s", name), Err: argtag.ErrMissingPrerequisite}
	}
	sig := fn.Type().(*types.Signature)
	if sig.TypeParams().Len() > 0 || sig.Params().Len() != 1 || sig.Results().Len() != 1 || sig.Variadic() {
		return &argtag.Error{Option: "formatter", Msg: fmt.Sprintf("function %s must take one argument and return one value", name), Err: argtag.ErrMissingPrerequisite}
	}
	if in := sig.Params().At(0).Type(); !types.AssignableTo(fs.typ, in) {
		return &argtag.Error{Option: "formatter", Msg: fmt.Sprintf("function %s takes %s, not %s", name, in, fs.typ), Err: argtag.ErrMissingPrerequisite}
	}
	fs.formatter = name
	fs.formatterFunc = true
	fs.typ = sig.Results().At(0).Type()
	return nil
}

func (a *analyzer) checkFieldType(t types.Type) error {
	if a.rendersItself(t) {
		return nil
	}
	for {
		p, ok := t.Underlying().(*types.Pointer)
		if !ok {
			break
		}
		t = p.Elem()
	}
	switch u := t.Underlying().(type) {
	case *types.Chan, *types.Signature:
		return &argtag.Error{Msg: fmt.Sprintf("fields of type %s cannot be rendered; skip the field or give it a formatter", t), Err: argtag.ErrUnsupported}
	case *types.Basic:
		if u.Kind() == types.UnsafePointer {
			return &argtag.Error{Msg: "unsafe.Pointer fields cannot be rendered", Err: argtag.ErrUnsupported}
		}
	}
	return nil
}

// checkDirectives rejects fields whose type, or element type, carries
// //argv: doc directives but is neither generated in this run nor already
// an Arg. Reflection cannot see doc comments, so such a field would render
// differently at runtime.
func (a *analyzer) checkDirectives(t types.Type) error {
	seen := set.Set[types.Type]{}
	for t != nil && !seen.Contains(t) && !a.rendersItself(t) {
		seen.Add(t)
		if n, ok := t.(*types.Named); ok && n.Obj().Pkg() == a.pkg.Types {
			name := n.Origin().Obj().Name()
			for _, c := range a.docs[name] {
				if _, ok := argtag.Directive(c.Text); ok {
					return &argtag.Error{
						Msg: fmt.Sprintf("%s has //argv: directives but no generated methods; add it to --type", name),
						Err: argtag.ErrMissingPrerequisite,
					}
				}
			}
		}
		switch u := t.Underlying().(type) {
		case *types.Pointer:
			t = u.Elem()
		case *types.Slice:
			t = u.Elem()
		case *types.Array:
			t = u.Elem()
		case *types.Map:
			t = u.Key()
		default:
			t = nil
		}
	}
	return nil
}

// rendersItself reports whether values of t have, or will have after this
// run, an AddUnnamedTo method.
func (a *analyzer) rendersItself(t types.Type) bool {
	if n, ok := t.(*types.Named); ok && a.generated.Contains(n.Origin().Obj()) {
		return true
	}
	return hasMethod(t, "AddUnnamedTo", a.pkg.Types)
}

func (a *analyzer) emitKind(t types.Type) emitKind {
	if a.rendersItself(t) || hasMethod(t, "AddTo", a.pkg.Types) {
		return emitDynamic
	}
	if n, ok := t.(*types.Named); ok {
		if obj := n.Obj(); obj.Pkg() != nil && obj.Pkg().Path() == "time" && obj.Name() == "Duration" {
			return emitDynamic
		}
	}
	b, ok := t.Underlying().(*types.Basic)
	if !ok {
		return emitDynamic
	}
	info := b.Info()
	switch {
	case info&types.IsString != 0:
		return emitString
	case info&types.IsBoolean != 0:
		return emitBool
	case info&types.IsInteger != 0 && info&types.IsUnsigned != 0:
		return emitUint
	case info&types.IsInteger != 0:
		return emitInt
	case b.Kind() == types.Float32:
		return emitFloat32
	case b.Kind() == types.Float64:
		return emitFloat64
	}
	return emitDynamic
}

func hasMethod(t types.Type, name string, pkg *types.Package) bool {
	obj, _, _ := types.LookupFieldOrMethod(t, true, pkg, name)
	_, ok := obj.(*types.Func)
	return ok
}

func hasNiladicMethod(t types.Type, name string, pkg *types.Package) bool {
	obj, _, _ := types.LookupFieldOrMethod(t, true, pkg, name)
	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}
	sig := fn.Type().(*types.Signature)
	if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}
	b, ok := sig.Results().At(0).Type().Underlying().(*types.Basic)
	return ok && b.Info()&types.IsString != 0
}

// receiver returns the receiver type expression of spec, including type
// parameters.
func (s *TypeSpec) receiver() string {
	if len(s.typeParams) == 0 {
		return s.Name
	}
	return s.Name + "[" + strings.Join(s.typeParams, ", ") + "]"
}
