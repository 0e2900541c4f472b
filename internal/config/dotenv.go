package config

import (
	"os"
	"path/filepath"
)

const dotenvFilename = ".env"

// findDotEnv walks from the working directory up to the filesystem root and
// returns the first regular file called filename.
func findDotEnv(filename string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findUpward(dir, filename)
}

func findUpward(dir, filename string) (string, error) {
	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}
