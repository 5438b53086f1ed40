// Package scaffold creates a new project from the embedded templates.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const templateSuffix = ".tmpl"

//go:embed all:templates
var templates embed.FS

// A real .gitignore under templates would apply to this repository.
var renames = map[string]string{
	"gitignore": ".gitignore",
}

var executables = map[string]bool{
	"scripts/pre-push": true,
}

// Holds the project's own requires once it has been set up.
var keepExisting = map[string]bool{
	"go.mod": true,
}

// Create copies every template into dst, overwriting existing files except
// go.mod. It returns the created file paths relative to dst.
func Create(dst string) ([]string, error) {
	root, err := fs.Sub(templates, "templates")
	if err != nil {
		return nil, err
	}

	var created []string
	err = fs.WalkDir(root, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		name := strings.TrimSuffix(p, templateSuffix)
		if renamed, ok := renames[path.Base(name)]; ok {
			name = path.Join(path.Dir(name), renamed)
		}

		data, err := fs.ReadFile(root, p)
		if err != nil {
			return err
		}

		target := filepath.Join(dst, filepath.FromSlash(name))
		if keepExisting[name] {
			if _, err := os.Stat(target); err == nil {
				return nil
			}
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}

		perm := os.FileMode(0o644)
		if executables[name] {
			perm = 0o755
		}
		if err := os.WriteFile(target, data, perm); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		if err := os.Chmod(target, perm); err != nil {
			return err
		}

		created = append(created, name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
