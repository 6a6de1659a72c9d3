package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// ModuleInfo is the part of a go.mod file matchgen cares about
type ModuleInfo struct {
	Path     string   // module path
	File     string   // location of the go.mod file
	Requires []string // required module paths
}

// Provides reports whether importPath belongs to the module itself or to one
// of its requirements
func (m *ModuleInfo) Provides(importPath string) bool {
	if within(importPath, m.Path) {
		return true
	}
	for _, req := range m.Requires {
		if within(importPath, req) {
			return true
		}
	}
	return false
}

func within(importPath, modulePath string) bool {
	return importPath == modulePath || strings.HasPrefix(importPath, modulePath+"/")
}

// ParseGoMod parses the go.mod file at goModPath
func ParseGoMod(goModPath string) (*ModuleInfo, error) {
	cleanPath := filepath.Clean(goModPath)
	if filepath.Base(cleanPath) != "go.mod" {
		return nil, fmt.Errorf("file is not a go.mod file: %s", goModPath)
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read go.mod file: %w", err)
	}

	modFile, err := modfile.Parse(cleanPath, content, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.mod file: %w", err)
	}

	if modFile.Module == nil {
		return nil, fmt.Errorf("no module declaration found in go.mod")
	}

	info := &ModuleInfo{Path: modFile.Module.Mod.Path, File: cleanPath}
	for _, req := range modFile.Require {
		info.Requires = append(info.Requires, req.Mod.Path)
	}
	return info, nil
}

// FindGoModFile searches for go.mod file starting from the given directory and walking up
func FindGoModFile(startDir string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if stat, err := os.Stat(goModPath); err == nil && !stat.IsDir() {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("go.mod file not found")
}
