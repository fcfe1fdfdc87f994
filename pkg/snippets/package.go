package snippets

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/mod/modfile"
)

// PackageNameFor derives the package name for a generated stub file in
// dir: normally the last path element, but for a module root the last
// element of the module path from go.mod. Falls back to "steps" when
// nothing usable is found.
func PackageNameFor(dir string) string {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "steps"
	}
	name := filepath.Base(absDir)
	if data, readErr := os.ReadFile(filepath.Join(absDir, "go.mod")); readErr == nil {
		if path := modfile.ModulePath(data); path != "" {
			name = path[strings.LastIndex(path, "/")+1:]
		}
	}
	return sanitizePackageName(name)
}

// sanitizePackageName lower-cases the candidate and strips anything a
// package identifier cannot contain.
func sanitizePackageName(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || r == '_':
			sb.WriteRune(r)
		case unicode.IsDigit(r):
			if sb.Len() == 0 {
				continue
			}
			sb.WriteRune(r)
		case r == '-' || r == '.':
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "steps"
	}
	return sb.String()
}
