package server

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const modulePath = "github.com/decker502/dragonsweeper"

// TestHeadlessImportGraph the server and its command must build without
// graphics or audio libraries.
func TestHeadlessImportGraph(t *testing.T) {
	root := filepath.Join("..", "..")
	seen := map[string]bool{}
	queue := []string{modulePath + "/pkg/server", modulePath + "/cmd/dragonsweeper-server"}

	for len(queue) > 0 {
		pkg := queue[0]
		queue = queue[1:]
		if seen[pkg] {
			continue
		}
		seen[pkg] = true

		dir := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(pkg, modulePath)))
		for _, imp := range packageImports(t, dir) {
			if strings.HasPrefix(imp, "github.com/hajimehoshi/ebiten") {
				t.Errorf("%s imports %s", pkg, imp)
			}
			if strings.HasPrefix(imp, modulePath+"/") {
				queue = append(queue, imp)
			}
		}
	}
}

// packageImports 返回目录中非测试源文件的导入路径
func packageImports(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read %s: %v", dir, err)
	}
	var imports []string
	fset := token.NewFileSet()
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		for _, spec := range f.Imports {
			path, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				t.Fatalf("import path %s: %v", spec.Path.Value, err)
			}
			imports = append(imports, path)
		}
	}
	return imports
}
