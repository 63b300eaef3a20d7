// SPDX-License-Identifier: Apache-2.0
/*
Copyright (C) 2024 The Falco Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package abicheck

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"regexp"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Symbol is a C function, identified by its name and number of
// parameters. Pkg is the Go package defining it, if any.
type Symbol struct {
	Name   string
	Params int
	Pos    string
	Pkg    string
}

const exportPrefix = "//export "

var prototypeRegex = regexp.MustCompile(`^[A-Za-z_][\w\s\*]*?\b([A-Za-z_]\w*)\s*\(([^)]*)\)\s*;`)

// Exported returns the functions marked with a cgo export directive in
// the packages matching the patterns, keyed by C name.
func Exported(patterns ...string) (map[string]Symbol, error) {
	cfg := &packages.Config{
		Mode: packages.NeedFiles | packages.NeedName,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	res := make(map[string]Symbol)
	fset := token.NewFileSet()
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			return nil, fmt.Errorf("package %s: %s", pkg.PkgPath, e.Error())
		}
		// GoFiles are the sources as written, before cgo rewrites them
		for _, path := range pkg.GoFiles {
			file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
			if err != nil {
				return nil, err
			}
			for _, decl := range file.Decls {
				fn, ok := decl.(*ast.FuncDecl)
				if !ok || fn.Doc == nil {
					continue
				}
				for _, c := range fn.Doc.List {
					if !strings.HasPrefix(c.Text, exportPrefix) {
						continue
					}
					name := strings.TrimSpace(strings.TrimPrefix(c.Text, exportPrefix))
					if prev, ok := res[name]; ok {
						return nil, fmt.Errorf("%s exported twice, at %s and %s", name, prev.Pos, fset.Position(fn.Pos()))
					}
					res[name] = Symbol{
						Name:   name,
						Params: fn.Type.Params.NumFields(),
						Pos:    fset.Position(fn.Pos()).String(),
						Pkg:    pkg.PkgPath,
					}
				}
			}
		}
	}
	return res, nil
}

// Declared returns the function prototypes of the C header at path, keyed
// by name. Prototypes are expected to fit on a single line.
func Declared(path string) (map[string]Symbol, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	res := make(map[string]Symbol)
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		m := prototypeRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		res[m[1]] = Symbol{
			Name:   m[1],
			Params: countParams(m[2]),
			Pos:    fmt.Sprintf("%s:%d", path, i+1),
		}
	}
	return res, nil
}

func countParams(params string) int {
	params = strings.TrimSpace(params)
	if params == "" || params == "void" {
		return 0
	}
	return strings.Count(params, ",") + 1
}

// Diff returns a description of every mismatch between the declared and
// the exported functions.
func Diff(declared, exported map[string]Symbol) []string {
	var res []string
	for name, d := range declared {
		e, ok := exported[name]
		if !ok {
			res = append(res, fmt.Sprintf("%s: %s is declared but not exported", d.Pos, name))
			continue
		}
		if d.Params != e.Params {
			res = append(res, fmt.Sprintf("%s: %s has %d parameters, exported with %d at %s", d.Pos, name, d.Params, e.Params, e.Pos))
		}
	}
	for name, e := range exported {
		if _, ok := declared[name]; !ok {
			res = append(res, fmt.Sprintf("%s: %s is exported but not declared", e.Pos, name))
		}
	}
	return res
}
