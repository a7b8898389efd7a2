package stubgen

import "go/ast"

// The clone helpers copy the parts of a stub file that end up in the
// generated file, dropping positions so that the printer lays them out
// afresh.  Comments are dropped with them: the printer places comments by
// position.

func cloneTypeSpec(spec *ast.TypeSpec) *ast.TypeSpec {
	return &ast.TypeSpec{
		Name:       ast.NewIdent(spec.Name.Name),
		TypeParams: cloneFieldList(spec.TypeParams),
		Assign:     spec.Assign,
		Type:       cloneExpr(spec.Type),
	}
}

func cloneField(field *ast.Field) *ast.Field {
	if field == nil {
		return nil
	}
	cloned := &ast.Field{Type: cloneExpr(field.Type)}
	for _, name := range field.Names {
		cloned.Names = append(cloned.Names, ast.NewIdent(name.Name))
	}
	if field.Tag != nil {
		cloned.Tag = &ast.BasicLit{Kind: field.Tag.Kind, Value: field.Tag.Value}
	}
	return cloned
}

func cloneFieldList(list *ast.FieldList) *ast.FieldList {
	if list == nil {
		return nil
	}
	cloned := &ast.FieldList{List: make([]*ast.Field, len(list.List))}
	for i, field := range list.List {
		cloned.List[i] = cloneField(field)
	}
	return cloned
}

// cloneExpr copies the type expressions a stub file uses.  Anything else is
// shared with the original.
func cloneExpr(expr ast.Expr) ast.Expr {
	switch x := expr.(type) {
	case *ast.Ident:
		return ast.NewIdent(x.Name)
	case *ast.SelectorExpr:
		return &ast.SelectorExpr{X: cloneExpr(x.X), Sel: ast.NewIdent(x.Sel.Name)}
	case *ast.StarExpr:
		return &ast.StarExpr{X: cloneExpr(x.X)}
	case *ast.ArrayType:
		return &ast.ArrayType{Len: x.Len, Elt: cloneExpr(x.Elt)}
	case *ast.MapType:
		return &ast.MapType{Key: cloneExpr(x.Key), Value: cloneExpr(x.Value)}
	case *ast.ChanType:
		return &ast.ChanType{Dir: x.Dir, Value: cloneExpr(x.Value)}
	case *ast.Ellipsis:
		return &ast.Ellipsis{Elt: cloneExpr(x.Elt)}
	case *ast.FuncType:
		return &ast.FuncType{Params: cloneFieldList(x.Params), Results: cloneFieldList(x.Results)}
	case *ast.StructType:
		return &ast.StructType{Fields: cloneFieldList(x.Fields)}
	case *ast.InterfaceType:
		return &ast.InterfaceType{Methods: cloneFieldList(x.Methods)}
	case *ast.IndexExpr:
		return &ast.IndexExpr{X: cloneExpr(x.X), Index: cloneExpr(x.Index)}
	default:
		return expr
	}
}
