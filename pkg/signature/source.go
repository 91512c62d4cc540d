package signature

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"

	"safecheck/pkg/core"
)

// SourceExtractor reads declared signatures out of Go source text,
// yielding the literal type spellings used at the declaration site.
// Alias names survive: `type Celsius = float64` extracts as "Celsius",
// with the Kind resolved through same-file type declarations.
type SourceExtractor struct{}

func (SourceExtractor) Name() string {
	return "source"
}

// FuncSignature pairs a declared function name with its signature.
type FuncSignature struct {
	Func      string         `json:"func" yaml:"func"`
	Signature core.Signature `json:"signature" yaml:"signature"`
}

// ExtractSource extracts the signature of the named function from a
// source buffer. Functions with zero or multiple parameters, multiple
// results, or non-identifier type expressions are errors.
func (e SourceExtractor) ExtractSource(src []byte, funcName string) (core.Signature, error) {
	file, err := parseSource(src)
	if err != nil {
		return core.Signature{}, err
	}
	aliases := collectTypeNames(file)

	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Name.Name != funcName {
			continue
		}
		return signatureOf(fd, aliases)
	}
	return core.Signature{}, fmt.Errorf("signature: function %q not found", funcName)
}

// ExtractFile extracts signatures for every eligible top-level function
// in a file: non-method, exactly one parameter, exactly one result.
// Ineligible functions are skipped.
func (e SourceExtractor) ExtractFile(path string) ([]FuncSignature, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	file, err := parseSource(src)
	if err != nil {
		return nil, err
	}
	aliases := collectTypeNames(file)

	var out []FuncSignature
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		sig, err := signatureOf(fd, aliases)
		if err != nil {
			continue
		}
		out = append(out, FuncSignature{Func: fd.Name.Name, Signature: sig})
	}
	return out, nil
}

func parseSource(src []byte) (*ast.File, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", src, 0)
	if err != nil {
		return nil, fmt.Errorf("signature: %w", err)
	}
	return file, nil
}

// collectTypeNames maps declared type names (aliases and definitions)
// to their underlying spelling, so descriptor kinds resolve through
// declarations like `type Celsius = float64`.
func collectTypeNames(file *ast.File) map[string]string {
	names := map[string]string{}
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if ident, ok := ts.Type.(*ast.Ident); ok {
				names[ts.Name.Name] = ident.Name
			}
		}
	}
	return names
}

func signatureOf(fd *ast.FuncDecl, aliases map[string]string) (core.Signature, error) {
	if fd.Recv != nil {
		return core.Signature{}, fmt.Errorf("signature: %s is a method", fd.Name.Name)
	}
	params := countFields(fd.Type.Params)
	if params != 1 {
		return core.Signature{}, fmt.Errorf("signature: %s has %d parameters, want exactly 1", fd.Name.Name, params)
	}
	results := countFields(fd.Type.Results)
	if results != 1 {
		return core.Signature{}, fmt.Errorf("signature: %s has %d results, want exactly 1", fd.Name.Name, results)
	}

	input, err := descriptorFromExpr(fd.Type.Params.List[0].Type, aliases)
	if err != nil {
		return core.Signature{}, fmt.Errorf("signature: %s: parameter: %w", fd.Name.Name, err)
	}
	output, err := descriptorFromExpr(fd.Type.Results.List[0].Type, aliases)
	if err != nil {
		return core.Signature{}, fmt.Errorf("signature: %s: result: %w", fd.Name.Name, err)
	}
	return core.Signature{Input: input, Output: output}, nil
}

func countFields(list *ast.FieldList) int {
	if list == nil {
		return 0
	}
	count := 0
	for _, field := range list.List {
		names := len(field.Names)
		if names == 0 {
			names = 1
		}
		count += names
	}
	return count
}

func descriptorFromExpr(expr ast.Expr, aliases map[string]string) (core.Descriptor, error) {
	ident, ok := expr.(*ast.Ident)
	if !ok {
		return core.Descriptor{}, fmt.Errorf("unsupported type expression")
	}
	return core.Descriptor{
		Name: ident.Name,
		Kind: kindForTypeName(ident.Name, aliases),
	}, nil
}

// kindForTypeName resolves a spelled type name to a Kind, chasing
// same-file type declarations. Names that do not bottom out on a basic
// type stay KindInvalid.
func kindForTypeName(name string, aliases map[string]string) core.Kind {
	for depth := 0; depth < 16; depth++ {
		switch name {
		case "int", "int8", "int16", "int32", "int64",
			"uint", "uint8", "uint16", "uint32", "uint64", "byte", "rune":
			return core.KindInteger
		case "float32", "float64":
			return core.KindFloat
		case "string":
			return core.KindString
		case "bool":
			return core.KindBool
		}
		next, ok := aliases[name]
		if !ok {
			return core.KindInvalid
		}
		name = next
	}
	return core.KindInvalid
}
