package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hackasm/pkg/asm"
	"hackasm/pkg/cpu"
)

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// ReplaceExt swaps the extension of path for ext (which includes the dot).
func ReplaceExt(path, ext string) string {
	old := filepath.Ext(path)
	if old == "" {
		return path + ext
	}
	return strings.TrimSuffix(path, old) + ext
}

// LoadProgram returns the instruction words in path. A .hack file is parsed
// as is; anything else is assembled as Hack assembly.
func LoadProgram(path string) ([]uint16, error) {
	if strings.EqualFold(filepath.Ext(path), ".hack") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return cpu.ParseHack(f)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	words, _, err := asm.AssembleSource(string(source))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}
