package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExecutableDir is the directory of the running binary, or the working
// directory when that cannot be resolved.
func ExecutableDir() string {
	if exe, err := os.Executable(); err == nil && exe != "" {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil && resolved != "" {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil && wd != "" {
		return wd
	}
	return "."
}

// ResolveRuntimePath anchors a relative directory at the binary's location.
// An empty raw falls back to fallbackSubdir.
func ResolveRuntimePath(raw, fallbackSubdir string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = strings.TrimSpace(fallbackSubdir)
	}
	switch {
	case target == "":
		return ExecutableDir()
	case filepath.IsAbs(target):
		return filepath.Clean(target)
	}
	return filepath.Join(ExecutableDir(), target)
}

// LogDir is the configured log directory, or "" to let the logger choose.
func (c *AppConfig) LogDir() string {
	if strings.TrimSpace(c.Paths.Logs) == "" {
		return ""
	}
	return ResolveRuntimePath(c.Paths.Logs, "")
}

// StaticDir is where the local blob driver keeps uploaded objects.
func (c *AppConfig) StaticDir() string {
	return ResolveRuntimePath(c.Storage.StaticDir, "static")
}
