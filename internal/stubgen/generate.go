package stubgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"go/types"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"
)

const (
	foundationtestName = "foundationtest"
	foundationtestPath = "github.com/Versent/go-foundationtest"

	// maxResults is the number of results the typed call helpers cover.
	maxResults = 4
)

// GenerateResult stores the result for a package from a call to Generate.
type GenerateResult struct {
	// PkgPath is the package's PkgPath.
	PkgPath string
	// OutputPath is the path where the generated output should be written.
	// May be empty if there were errors.
	OutputPath string
	// Content is the gofmt'd source code that was generated. May be nil if
	// there were errors during generation.
	Content []byte
	// Errs is a slice of errors identified during generation.
	Errs []error
}

// Commit writes the generated file to disk.
func (gen GenerateResult) Commit() error {
	if len(gen.Content) == 0 {
		return nil
	}
	return os.WriteFile(gen.OutputPath, gen.Content, 0666)
}

// GenerateOptions holds options for Generate.
type GenerateOptions struct {
	// Header will be inserted at the start of each generated file.
	Header []byte

	// PrefixOutputFile is the prefix of the file name to write the generated
	// output to. The suffix will be "double_gen.go".
	PrefixOutputFile string

	// Tags is a list of additional build tags to use when loading packages.
	Tags string

	// Dir is the directory to run the build system's query tool
	// that provides information about the packages.
	// If Dir is empty, the tool is run in the current directory.
	Dir string

	// Env is the environment to use when invoking the build system's query tool.
	// If Env is nil, the current environment is used.
	// As in os/exec's Cmd, only the last value in the slice for
	// each environment key is used.
	Env []string
}

// Generate generates a code file for each package matching the given patterns.
// The code file will contain a typed double for each struct type declared in
// a file of the package that has the mockstub build tag.  Every interface the
// struct embeds is replaced by an embedded foundationtest.Double, and every
// method of those interfaces, each name once, gets a method forwarding to the
// Double, unless the package already declares it for the struct.  A
// <struct>Methods variable lists the forwarded names.
// The generated files will be named double_gen.go, with an optional prefix,
// and carry a go:generate comment that can be used to regenerate them.
func Generate(ctx context.Context, patterns []string, opts GenerateOptions) ([]GenerateResult, []error) {
	pkgs, errs := load(ctx, opts.Dir, opts.Env, opts.Tags, patterns)
	if len(errs) > 0 {
		return nil, errs
	}
	generated := make([]GenerateResult, len(pkgs))
	for i, pkg := range pkgs {
		generated[i].PkgPath = pkg.PkgPath
		outDir, err := detectOutputDir(pkg.GoFiles)
		if err != nil {
			generated[i].Errs = append(generated[i].Errs, err)
			continue
		}
		outputFile := opts.PrefixOutputFile + "double_gen"
		if strings.HasSuffix(pkg.Name, "_test") {
			outputFile += "_test"
		}
		outputFile += ".go"
		generated[i].OutputPath = filepath.Join(outDir, outputFile)
		g := newGen(pkg)
		errs := generateDoubles(g, pkg)
		if len(errs) > 0 {
			generated[i].Errs = errs
			continue
		}
		goSrc := g.frame(opts.Tags)
		if len(goSrc) == 0 {
			continue
		}
		if len(opts.Header) > 0 {
			goSrc = append(append([]byte(nil), opts.Header...), goSrc...)
		}
		fmtSrc, err := format.Source(goSrc)
		if err != nil {
			// This is likely a bug from a poorly generated source file.
			// Add an error but also the unformatted source.
			generated[i].Errs = append(generated[i].Errs, err)
		} else {
			goSrc = fmtSrc
		}
		generated[i].Content = goSrc
	}

	return generated, nil
}

func detectOutputDir(paths []string) (string, error) {
	if len(paths) == 0 {
		return "", errors.New("no files to derive output directory from")
	}
	dir := filepath.Dir(paths[0])
	for _, p := range paths[1:] {
		if dir2 := filepath.Dir(p); dir2 != dir {
			return "", fmt.Errorf("found conflicting directories %q and %q", dir, dir2)
		}
	}
	return dir, nil
}

func isMockStub(syntax *ast.File) bool {
	for _, group := range syntax.Comments {
		for _, comment := range group.List {
			if comment.Text == "// +build mockstub" {
				return true
			}
			if strings.HasPrefix(comment.Text, "//go:build mockstub") {
				return true
			}
		}
	}
	return false
}

// declaredMethods returns the methods declared in pkg per receiver type name.
func declaredMethods(pkg *packages.Package) map[string]map[string]bool {
	declared := make(map[string]map[string]bool)
	for _, syntax := range pkg.Syntax {
		for _, decl := range syntax.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 {
				continue
			}
			recv := fn.Recv.List[0].Type
			if star, ok := recv.(*ast.StarExpr); ok {
				recv = star.X
			}
			ident, ok := recv.(*ast.Ident)
			if !ok {
				continue
			}
			if declared[ident.Name] == nil {
				declared[ident.Name] = make(map[string]bool)
			}
			declared[ident.Name][fn.Name.Name] = true
		}
	}
	return declared
}

func generateDoubles(g *gen, pkg *packages.Package) (errs []error) {
	declared := declaredMethods(pkg)
	for _, syntax := range pkg.Syntax {
		if !isMockStub(syntax) {
			continue
		}

		for _, decl := range syntax.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if ok && genDecl.Tok == token.IMPORT {
				if err := g.addImports(genDecl); err != nil {
					errs = append(errs, err)
				}
				continue
			}
			if !ok || genDecl.Tok != token.TYPE {
				if err := g.addDecl(nil, decl); err != nil {
					errs = append(errs, err)
				}
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				obj := pkg.TypesInfo.ObjectOf(typeSpec.Name)
				structType, ok := obj.Type().Underlying().(*types.Struct)
				if !ok {
					copied := &ast.GenDecl{
						Tok:   token.TYPE,
						Specs: []ast.Spec{cloneTypeSpec(typeSpec)},
					}
					if err := g.addDecl(nil, copied); err != nil {
						errs = append(errs, err)
					}
					continue
				}

				doc := typeSpec.Doc
				if doc == nil && !genDecl.Lparen.IsValid() {
					doc = genDecl.Doc
				}
				if err := generateDouble(g, typeSpec, doc, structType, declared[typeSpec.Name.Name]); err != nil {
					errs = append(errs, err)
				}
			}
		}
	}

	return errs
}

// generateDouble writes the double for one stub struct.
func generateDouble(g *gen, typeSpec *ast.TypeSpec, doc *ast.CommentGroup, structType *types.Struct, declared map[string]bool) error {
	structName := typeSpec.Name.Name
	if typeSpec.TypeParams != nil {
		return fmt.Errorf("%s: type parameters are not supported", structName)
	}
	astFields := typeSpec.Type.(*ast.StructType).Fields.List

	// The first field becomes the embedded Double.
	fields := []*ast.Field{nil}
	methods := make(map[string]*types.Func)
	embedsInterface := false
	for i := 0; i < structType.NumFields(); i++ {
		field := structType.Field(i)
		iface, isIface := field.Type().Underlying().(*types.Interface)
		if !field.Embedded() || !isIface {
			fields = append(fields, cloneField(fieldFor(astFields, field.Name())))
			continue
		}
		embedsInterface = true
		// var _ <iface> = (*<struct>)(nil)
		if err := g.addInterfaceAssertion(fieldFor(astFields, field.Name()).Type, structName); err != nil {
			return err
		}
		for j := 0; j < iface.NumMethods(); j++ {
			method := iface.Method(j)
			if prev, ok := methods[method.Name()]; ok {
				if !types.Identical(prev.Type(), method.Type()) {
					return fmt.Errorf("%s: conflicting signatures for method %s", structName, method.Name())
				}
				continue
			}
			methods[method.Name()] = method
		}
	}
	if !embedsInterface {
		g.addDoc(doc)
		return g.addDecl(typeSpec.Name, &ast.GenDecl{
			Tok:   token.TYPE,
			Specs: []ast.Spec{cloneTypeSpec(typeSpec)},
		})
	}
	fields[0] = &ast.Field{
		Type: &ast.SelectorExpr{
			X:   ast.NewIdent(g.resolveImportName(foundationtestName, foundationtestPath)),
			Sel: ast.NewIdent("Double"),
		},
	}

	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if declared[name] {
			continue
		}
		sig := methods[name].Type().(*types.Signature)
		methDecl, err := makeMethod(g, structName, name, sig)
		if err != nil {
			return err
		}
		if err := g.addDecl(methDecl.Name, methDecl); err != nil {
			return err
		}
	}
	if err := g.addDecl(typeSpec.Name, makeMethodsVar(structName, names)); err != nil {
		return err
	}

	g.addDoc(doc)
	return g.addDecl(typeSpec.Name, &ast.GenDecl{
		Tok: token.TYPE,
		Specs: []ast.Spec{
			&ast.TypeSpec{
				Name: ast.NewIdent(structName),
				Type: &ast.StructType{Fields: &ast.FieldList{List: fields}},
			},
		},
	})
}

// fieldFor returns the AST field declaring name, the type name for embedded
// fields.
func fieldFor(fields []*ast.Field, name string) *ast.Field {
	for _, field := range fields {
		if len(field.Names) == 0 {
			typ := field.Type
			if star, ok := typ.(*ast.StarExpr); ok {
				typ = star.X
			}
			switch typ := typ.(type) {
			case *ast.Ident:
				if typ.Name == name {
					return field
				}
			case *ast.SelectorExpr:
				if typ.Sel.Name == name {
					return field
				}
			}
			continue
		}
		for _, ident := range field.Names {
			if ident.Name == name {
				return &ast.Field{
					Doc:     field.Doc,
					Names:   []*ast.Ident{ident},
					Type:    field.Type,
					Tag:     field.Tag,
					Comment: field.Comment,
				}
			}
		}
	}
	return nil
}

// makeMethod builds
//
//	func (m *<struct>) <method>(v0 T0, ...) (R0, ...) {
//		return foundationtest.CallN[R0, ...](m.Double, "<method>", v0, ...)
//	}
func makeMethod(g *gen, structName, methodName string, sig *types.Signature) (*ast.FuncDecl, error) {
	if sig.Results().Len() > maxResults {
		return nil, fmt.Errorf("%s.%s: %d results, at most %d are supported", structName, methodName, sig.Results().Len(), maxResults)
	}
	methDecl := &ast.FuncDecl{
		Recv: &ast.FieldList{
			List: []*ast.Field{{
				Names: []*ast.Ident{ast.NewIdent("m")},
				Type:  &ast.StarExpr{X: ast.NewIdent(structName)},
			}},
		},
		Name: ast.NewIdent(methodName),
		Type: &ast.FuncType{
			Params:  g.fieldList("v", sig.Variadic(), sig.Params()),
			Results: g.fieldList("", false, sig.Results()),
		},
		Body: &ast.BlockStmt{},
	}

	var fun ast.Expr = &ast.SelectorExpr{
		X:   ast.NewIdent(g.resolveImportName(foundationtestName, foundationtestPath)),
		Sel: ast.NewIdent(fmt.Sprintf("Call%d", sig.Results().Len())),
	}
	switch n := sig.Results().Len(); {
	case n == 1:
		fun = &ast.IndexExpr{X: fun, Index: methDecl.Type.Results.List[0].Type}
	case n > 1:
		indices := make([]ast.Expr, n)
		for i, field := range methDecl.Type.Results.List {
			indices[i] = field.Type
		}
		fun = &ast.IndexListExpr{X: fun, Indices: indices}
	}
	call := &ast.CallExpr{
		Fun: fun,
		Args: []ast.Expr{
			&ast.SelectorExpr{X: ast.NewIdent("m"), Sel: ast.NewIdent("Double")},
			&ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(methodName)},
		},
	}
	forTuple("v", sig.Params(), func(_ int, name string, _ *types.Var) {
		call.Args = append(call.Args, ast.NewIdent(name))
	})

	if sig.Results().Len() > 0 {
		methDecl.Body.List = []ast.Stmt{&ast.ReturnStmt{Results: []ast.Expr{call}}}
	} else {
		methDecl.Body.List = []ast.Stmt{&ast.ExprStmt{X: call}}
	}
	return methDecl, nil
}

// makeMethodsVar builds
//
//	var <struct>Methods = []string{"<method>", ...}
func makeMethodsVar(structName string, names []string) *ast.GenDecl {
	elts := make([]ast.Expr, len(names))
	for i, name := range names {
		elts[i] = &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(name)}
	}
	return &ast.GenDecl{
		Tok: token.VAR,
		Specs: []ast.Spec{
			&ast.ValueSpec{
				Names: []*ast.Ident{ast.NewIdent(structName + "Methods")},
				Values: []ast.Expr{&ast.CompositeLit{
					Type: &ast.ArrayType{Elt: ast.NewIdent("string")},
					Elts: elts,
				}},
			},
		},
	}
}

// forTuple calls f with every element of tuple.  Parameters that are unnamed,
// blank or would shadow the receiver are named prefix followed by their
// index; with an empty prefix names are dropped.
func forTuple(prefix string, tuple *types.Tuple, f func(int, string, *types.Var)) {
	for i := 0; i < tuple.Len(); i++ {
		param := tuple.At(i)

		name := param.Name()
		switch {
		case prefix == "":
			name = ""
		case name == "" || name == "_" || name == "m":
			name = prefix + strconv.Itoa(i)
		}

		f(i, name, param)
	}
}

// fieldList returns a field list for the given tuple.
func (g *gen) fieldList(prefix string, variadic bool, tuple *types.Tuple) *ast.FieldList {
	if tuple == nil {
		return nil
	}
	fields := make([]*ast.Field, tuple.Len())
	forTuple(prefix, tuple, func(i int, name string, param *types.Var) {
		fields[i] = &ast.Field{}
		if variadic && i == tuple.Len()-1 {
			fields[i].Type = &ast.Ellipsis{
				Elt: ast.NewIdent(g.typeString(param.Type().(*types.Slice).Elem())),
			}
		} else {
			fields[i].Type = ast.NewIdent(g.typeString(param.Type()))
		}

		if name == "" {
			return
		}
		fields[i].Names = []*ast.Ident{ast.NewIdent(name)}
	})
	return &ast.FieldList{List: fields}
}

// importInfo holds info about an import.
type importInfo struct {
	// name is the identifier that is used in the generated source.
	name string
	// differs is true if the identifier does not match the last element of
	// the import path.
	differs bool
}

// gen is the file-wide generator state.
type gen struct {
	pkg         *packages.Package
	buf         bytes.Buffer
	imports     map[string]importInfo
	anonImports map[string]bool
}

func newGen(pkg *packages.Package) *gen {
	return &gen{
		pkg:         pkg,
		anonImports: make(map[string]bool),
		imports:     make(map[string]importInfo),
	}
}

func (g *gen) addDecl(name fmt.Stringer, decl ast.Decl) error {
	var buf bytes.Buffer
	if err := format.Node(&buf, g.pkg.Fset, decl); err != nil {
		if name == nil {
			name = g.pkg.Fset.Position(decl.Pos())
		}
		return fmt.Errorf("%s: error formatting declaration: %w", name, err)
	}
	g.buf.Write(buf.Bytes())
	g.buf.WriteString("\n\n") // Add some spacing between decls
	return nil
}

// addDoc writes the doc comment of the next declaration.
func (g *gen) addDoc(doc *ast.CommentGroup) {
	if doc == nil {
		return
	}
	for _, c := range doc.List {
		g.buf.WriteString(c.Text)
		g.buf.WriteByte('\n')
	}
}

// addImports records the imports of a stub file so that frame emits them
// ahead of every declaration.
func (g *gen) addImports(decl *ast.GenDecl) error {
	for _, spec := range decl.Specs {
		importSpec := spec.(*ast.ImportSpec)
		if importSpec.Name != nil && importSpec.Name.Name == "_" {
			g.anonImports[importSpec.Path.Value] = true
			continue
		}
		importPath, err := strconv.Unquote(importSpec.Path.Value)
		if err != nil {
			return fmt.Errorf("%s: bad import path: %w", importSpec.Path.Value, err)
		}
		name, ok := g.resolvePackageName(importPath)
		if importSpec.Name != nil {
			name, ok = importSpec.Name.Name, true
		}
		if !ok {
			name = path.Base(importPath)
		}
		g.imports[importPath] = importInfo{
			name:    name,
			differs: name != path.Base(importPath),
		}
	}
	return nil
}

func (g *gen) resolvePackageName(path string) (string, bool) {
	for _, pkg := range g.pkg.Imports {
		if pkg.PkgPath == path {
			return pkg.Name, true
		}
	}
	return "", false
}

// resolveImportName returns the identifier for the package at path, adding
// an import when the stub file does not provide one.
func (g *gen) resolveImportName(name, importPath string) string {
	imp, ok := g.imports[importPath]
	if !ok {
		imp = importInfo{
			name:    name,
			differs: name != path.Base(importPath),
		}
		g.imports[importPath] = imp
	}
	return imp.name
}

// typeString renders t as it is spelled inside the generated package.
func (g *gen) typeString(t types.Type) string {
	return types.TypeString(t, func(p *types.Package) string {
		if p.Path() == g.pkg.PkgPath {
			return ""
		}
		return g.resolveImportName(p.Name(), p.Path())
	})
}

func (g *gen) addInterfaceAssertion(ifaceType ast.Expr, structName string) error {
	varDecl := &ast.GenDecl{
		Tok: token.VAR,
		Specs: []ast.Spec{
			&ast.ValueSpec{
				Names: []*ast.Ident{ast.NewIdent("_")},
				Type:  cloneExpr(ifaceType),
				Values: []ast.Expr{
					&ast.CallExpr{
						Fun: &ast.ParenExpr{
							X: &ast.StarExpr{X: ast.NewIdent(structName)},
						},
						Args: []ast.Expr{ast.NewIdent("nil")},
					},
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := format.Node(&buf, g.pkg.Fset, varDecl); err != nil {
		return fmt.Errorf("%s: error formatting var: %w", structName, err)
	}
	g.buf.Write(buf.Bytes())
	g.buf.WriteString("\n\n") // Add some spacing between decls
	return nil
}

// frame bakes the built up source body into an unformatted Go source file.
func (g *gen) frame(tags string) []byte {
	if g.buf.Len() == 0 {
		return nil
	}
	var buf bytes.Buffer
	if len(tags) > 0 {
		tags = fmt.Sprintf(" gen -tags %q", tags)
	}
	buf.WriteString("// Code generated by doublegen. DO NOT EDIT.\n\n")
	buf.WriteString("//go:generate go run -mod=mod " + foundationtestPath + "/cmd/doublegen" + tags + "\n\n")
	buf.WriteString("//go:build !mockstub\n\n")
	buf.WriteString("package ")
	buf.WriteString(g.pkg.Name)
	buf.WriteString("\n\n")
	imps := make([]string, 0, len(g.imports))
	for path := range g.imports {
		imps = append(imps, path)
	}
	if len(imps) > 0 {
		buf.WriteString("import (\n")
		sort.Strings(imps)
		for _, path := range imps {
			// Omit the local package identifier if it matches the package name.
			info := g.imports[path]
			if info.differs {
				fmt.Fprintf(&buf, "\t%s %q\n", info.name, path)
			} else {
				fmt.Fprintf(&buf, "\t%q\n", path)
			}
		}
		buf.WriteString(")\n\n")
	}
	if len(g.anonImports) > 0 {
		buf.WriteString("import (\n")
		anonImps := make([]string, 0, len(g.anonImports))
		for path := range g.anonImports {
			anonImps = append(anonImps, path)
		}
		sort.Strings(anonImps)

		for _, path := range anonImps {
			fmt.Fprintf(&buf, "\t_ %s\n", path)
		}
		buf.WriteString(")\n\n")
	}
	buf.Write(g.buf.Bytes())
	return buf.Bytes()
}
