package stubgen

import (
	"context"
	"strings"

	"golang.org/x/tools/go/packages"
)

// stubTag selects the files that declare stub structs.
const stubTag = "mockstub"

// load typechecks the packages matching patterns as the mockstub build sees
// them, so stub structs are visible and generated doubles are not.  extraTags
// is a space or comma separated list of further build tags.  dir and env
// default to the current directory and environment.
func load(ctx context.Context, dir string, env []string, extraTags string, patterns []string) ([]*packages.Package, []error) {
	tags := append([]string{stubTag}, strings.FieldsFunc(extraTags, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})...)
	cfg := &packages.Config{
		Context: ctx,
		// NeedDeps fills in the names of imported packages.
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedImports | packages.NeedDeps | packages.NeedTypes | packages.NeedTypesSizes |
			packages.NeedSyntax | packages.NeedTypesInfo,
		Dir:        dir,
		Env:        env,
		BuildFlags: []string{"-tags=" + strings.Join(tags, ",")},
	}
	// Escaped so that patterns starting with a dash are not read as flags.
	queries := make([]string, len(patterns))
	for i, p := range patterns {
		queries[i] = "pattern=" + p
	}
	pkgs, err := packages.Load(cfg, queries...)
	if err != nil {
		return nil, []error{err}
	}
	var errs []error
	for _, p := range pkgs {
		for _, e := range p.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return pkgs, nil
}
