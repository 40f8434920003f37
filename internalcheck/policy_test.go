package internalcheck

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/BackendStack21/toyrsa-go"

func loadModule(t *testing.T, mode packages.LoadMode) []*packages.Package {
	t.Helper()
	cfg := &packages.Config{Mode: mode}

	pkgs, err := packages.Load(cfg, modulePath+"/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if len(pkgs) == 0 {
		t.Fatal("no packages loaded")
	}
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			t.Fatalf("load %s: %v", pkg.PkgPath, e)
		}
	}
	return pkgs
}

func TestRandomnessIsInjected(t *testing.T) {
	pkgs := loadModule(t, packages.NeedName|packages.NeedImports)

	var findings []string
	for _, pkg := range pkgs {
		for path := range pkg.Imports {
			switch {
			case path == "math/rand" || path == "math/rand/v2":
				findings = append(findings, fmt.Sprintf("%s imports %s", pkg.PkgPath, path))
			case path == "crypto/rand" && pkg.PkgPath != modulePath+"/utils":
				findings = append(findings, fmt.Sprintf("%s imports crypto/rand; take an io.Reader or use utils.RandReader", pkg.PkgPath))
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("randomness policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

// secretFields are the KeyPair fields that must never be logged.
var secretFields = map[string]bool{
	"PrivateExponent": true,
	"P":               true,
	"Q":               true,
}

func TestSecretsAreNotLogged(t *testing.T) {
	pkgs := loadModule(t, packages.NeedName|packages.NeedSyntax|packages.NeedTypes|packages.NeedTypesInfo|packages.NeedFiles)

	var findings []string
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			fset := pkg.Fset
			ast.Inspect(file, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok || !isLogCall(pkg.TypesInfo, call) {
					return true
				}

				for _, arg := range call.Args {
					ast.Inspect(arg, func(n ast.Node) bool {
						sel, ok := n.(*ast.SelectorExpr)
						if !ok || !secretFields[sel.Sel.Name] || !isKeyPair(pkg.TypesInfo.TypeOf(sel.X)) {
							return true
						}
						pos := fset.Position(sel.Pos())
						findings = append(findings, fmt.Sprintf("%s: %s logged; use logging.Redacted", pos, sel.Sel.Name))
						return true
					})
				}
				return true
			})
		}
	}

	if len(findings) > 0 {
		t.Fatalf("secret logging policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

func TestNoHexFormatting(t *testing.T) {
	pkgs := loadModule(t, packages.NeedName|packages.NeedSyntax|packages.NeedTypes|packages.NeedTypesInfo|packages.NeedFiles)

	var findings []string
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			fset := pkg.Fset
			ast.Inspect(file, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}
				selector, ok := call.Fun.(*ast.SelectorExpr)
				if !ok {
					return true
				}
				obj := pkg.TypesInfo.Uses[selector.Sel]
				if obj == nil || obj.Pkg() == nil {
					return true
				}

				formatIdx, ok := formatIndex(obj.Pkg().Path(), obj.Name())
				if !ok || len(call.Args) <= formatIdx {
					return true
				}
				lit, ok := call.Args[formatIdx].(*ast.BasicLit)
				if !ok || lit.Kind != token.STRING {
					return true
				}
				value, err := strconv.Unquote(lit.Value)
				if err != nil {
					return true
				}

				if strings.Contains(value, "%x") || strings.Contains(value, "%X") {
					pos := fset.Position(lit.Pos())
					findings = append(findings, fmt.Sprintf("%s: avoid %%x formatting of key material", pos))
				}
				return true
			})
		}
	}

	if len(findings) > 0 {
		t.Fatalf("hex formatting policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

func isLogCall(info *types.Info, call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	obj := info.Uses[sel.Sel]
	if obj == nil || obj.Pkg() == nil {
		return false
	}
	switch obj.Pkg().Path() {
	case modulePath + "/logging", "log/slog", "log":
		return true
	}
	return false
}

func isKeyPair(t types.Type) bool {
	if t == nil {
		return false
	}
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == modulePath && obj.Name() == "KeyPair"
}

func formatIndex(pkgPath, name string) (int, bool) {
	switch pkgPath {
	case "fmt":
		switch name {
		case "Errorf", "Printf", "Sprintf":
			return 0, true
		case "Fprintf":
			return 1, true
		}
	case "log":
		switch name {
		case "Printf", "Fatalf", "Panicf":
			return 0, true
		}
	case modulePath:
		if name == "Errorf" {
			return 1, true
		}
	}
	return 0, false
}
