package cli

import (
	"github.com/toyz/matchgen/internal/resolver"
	"github.com/toyz/matchgen/internal/utils"
)

// CheckModule reads the go.mod governing dir and warns when the package
// declaring the marker type is provided by neither the main module nor one
// of its requirements. It returns nil when no module information is found.
func CheckModule(dir, marker string, diagnostics *utils.DiagnosticSystem) *utils.ModuleInfo {
	goModPath, err := utils.FindGoModFile(dir)
	if err != nil {
		diagnostics.Debug("No go.mod found from %s: %v", dir, err)
		return nil
	}

	info, err := utils.ParseGoMod(goModPath)
	if err != nil {
		diagnostics.Warn("Could not read %s: %v", goModPath, err)
		return nil
	}
	diagnostics.Verbose("Module %s (%s)", info.Path, info.File)

	corePkg, _, err := resolver.SplitQualifiedName(marker)
	if err != nil {
		return info
	}
	if !info.Provides(corePkg) {
		diagnostics.Warn("Module %s does not require the package %s; factory capabilities will not resolve", info.Path, corePkg)
	}
	return info
}
