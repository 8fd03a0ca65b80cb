package confkit

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectRoot walks up from the working directory until it finds go.mod or
// .git. It falls back to the working directory itself.
func ProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return ".", fmt.Errorf("getwd: %w", err)
	}
	dir := wd
	for i := 0; i < maxDotenvDepth; i++ {
		if fileExists(filepath.Join(dir, "go.mod")) || dirExists(filepath.Join(dir, ".git")) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return wd, nil
}

// ProjectPath joins the project root with rel.
func ProjectPath(rel string) (string, error) {
	root, err := ProjectRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, rel), nil
}

// LocateFile returns path unchanged when it exists or is absolute, and
// otherwise the same relative path under the project root when that exists.
// Binaries started from a subdirectory still find etc/ this way.
func LocateFile(path string) string {
	if filepath.IsAbs(path) || fileExists(path) {
		return path
	}
	candidate, err := ProjectPath(path)
	if err != nil || !fileExists(candidate) {
		return path
	}
	return candidate
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
