package confkit

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

const maxDotenvDepth = 8

var dotenvOnce sync.Once

// LoadDotenvOnce loads provider credentials from a .env file. ENV_FILE
// points at an explicit file; otherwise the working directory and its
// parents are searched up to the module root. Variables already present in
// the environment win unless DOTENV_OVERLOAD=1. NO_DOTENV=1 disables it.
func LoadDotenvOnce() {
	dotenvOnce.Do(loadDotenv)
}

func loadDotenv() {
	if os.Getenv("NO_DOTENV") == "1" {
		return
	}

	load := godotenv.Load
	if os.Getenv("DOTENV_OVERLOAD") == "1" {
		load = godotenv.Overload
	}

	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		_ = load(envFile)
		return
	}

	dir, err := os.Getwd()
	if err != nil {
		_ = load(".env")
		return
	}
	for i := 0; i < maxDotenvDepth; i++ {
		candidate := filepath.Join(dir, ".env")
		if fileExists(candidate) {
			_ = load(candidate)
			return
		}
		if fileExists(filepath.Join(dir, "go.mod")) || dirExists(filepath.Join(dir, ".git")) {
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
