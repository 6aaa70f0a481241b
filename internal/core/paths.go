package core

import (
	"os"
	"path/filepath"
)

type Paths struct {
	DataDir     string
	LogFile     string
	HistoryFile string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		dataDir := filepath.Join(os.TempDir(), "rpn")

		defaultPaths = &Paths{
			DataDir:     dataDir,
			LogFile:     filepath.Join(dataDir, "rpn.log"),
			HistoryFile: filepath.Join(dataDir, "history.db"),
		}

		err := os.MkdirAll(defaultPaths.DataDir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

func DataDir() string {
	ensureDefaultPaths()
	return defaultPaths.DataDir
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

func HistoryFile() string {
	ensureDefaultPaths()
	return defaultPaths.HistoryFile
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}
