package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads env vars from .env.local and .env in the current
// working directory and next to the executable. It only sets vars that
// are not already set, matching godotenv's behavior. Missing files are
// fine; malformed ones are fatal.
func LoadDotEnv(logPrefix string) {
	paths := []string{".env.local", ".env"}

	if exe, err := os.Executable(); err == nil && exe != "" {
		dir := filepath.Dir(exe)
		paths = append(paths, filepath.Join(dir, ".env.local"), filepath.Join(dir, ".env"))
	}

	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}

		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			log.Fatalf("%s failed to load %s: %v", logPrefix, p, err)
		}
		log.Printf("%s loaded env from %s", logPrefix, p)
	}
}
