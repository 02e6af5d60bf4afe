package utils

import (
	"os"
	"path/filepath"
)

func GetDefaultLogDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// If we can't find a home directory, fall back to the temp dir
		return filepath.Join(os.TempDir(), "neurocards-logs")
	}
	return filepath.Join(homeDir, "neurocards-logs")
}
