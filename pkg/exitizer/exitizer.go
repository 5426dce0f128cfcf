// Package exitizer reports direct os.Exit calls in the main function of
// package main. Such calls bypass deferred cleanup, in particular the
// storage dump on shutdown.
package exitizer

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
)

var Analyzer = &analysis.Analyzer{
	Name: "exitizer",
	Doc:  "check for os.Exit calls in main function",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	for _, file := range pass.Files {
		ast.Inspect(file, func(node ast.Node) bool {
			funcDecl, ok := node.(*ast.FuncDecl)
			if ok && funcDecl.Name.Name == "main" {
				reportExitCalls(pass, funcDecl)
				return false
			}

			return true
		})
	}

	return nil, nil
}

func reportExitCalls(pass *analysis.Pass, node ast.Node) {
	ast.Inspect(node, func(node ast.Node) bool {
		callExpr, ok := node.(*ast.CallExpr)
		if !ok {
			return true
		}

		selectorExpr, ok := callExpr.Fun.(*ast.SelectorExpr)
		if !ok {
			return false
		}
		x, ok := selectorExpr.X.(*ast.Ident)
		if !ok {
			return false
		}

		if x.Name == "os" && selectorExpr.Sel.Name == "Exit" {
			pass.Reportf(callExpr.Pos(), "os.Exit call")
			return false
		}

		return true
	})
}
