// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the dashboard aggregates as tools over stdio transport.
package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveDataset resolves a CSV path to an absolute, symlink-free path.
// It returns an error if the path does not exist or is not a regular file.
func ResolveDataset(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("dataset path is empty")
	}
	if strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("cannot resolve path %q: contains a NUL byte", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	absPath, err = filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("path %q does not exist", path)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%q is not a regular file", path)
	}
	return absPath, nil
}
