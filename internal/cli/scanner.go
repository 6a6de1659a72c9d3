package cli

import (
	"context"
	"fmt"
	"go/types"
	"time"

	"github.com/toyz/matchgen/internal/factory"
	"github.com/toyz/matchgen/internal/loader"
	"github.com/toyz/matchgen/internal/models"
	"github.com/toyz/matchgen/internal/resolver"
	"github.com/toyz/matchgen/internal/utils"
)

// PackageResult lists the factory methods found in one package
type PackageResult struct {
	Package string                 `json:"package" yaml:"package"`
	Methods []models.FactoryMethod `json:"methods" yaml:"methods"`
}

// Result is the output of a scan
type Result struct {
	Target   string          `json:"target,omitempty" yaml:"target,omitempty"`
	Packages []PackageResult `json:"packages" yaml:"packages"`
}

// Methods returns the number of factory methods across all packages
func (r *Result) Methods() int {
	count := 0
	for _, pkg := range r.Packages {
		count += len(pkg.Methods)
	}
	return count
}

// Summary contains information about a completed scan
type Summary struct {
	PackagesScanned int
	FactoryMethods  int
	Generified      int
	Module          string
	Elapsed         time.Duration
}

// ScanError reports the package a fatal scan error came from
type ScanError struct {
	Package string
	Err     error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan of package %s failed: %v", e.Package, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Scanner drives one factory reader per loaded package
type Scanner struct {
	config      Config
	diagnostics *utils.DiagnosticSystem
	summary     Summary
}

// NewScanner creates a scanner for the given configuration
func NewScanner(config Config, diagnostics *utils.DiagnosticSystem) *Scanner {
	if diagnostics == nil {
		diagnostics = config.Diagnostics()
	}
	return &Scanner{config: config, diagnostics: diagnostics}
}

// GetSummary returns the summary of the last scan
func (s *Scanner) GetSummary() Summary {
	return s.summary
}

// Run loads the packages matching patterns and scans them
func (s *Scanner) Run(ctx context.Context, patterns []string) (*Result, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	s.summary = Summary{}
	s.diagnostics.Verbose("Loading packages %v from %s", patterns, s.config.Dir)

	if info := CheckModule(s.config.Dir, s.config.Marker, s.diagnostics); info != nil {
		s.summary.Module = info.Path
	}

	loadConfig := loader.Config{Dir: s.config.Dir, Tests: s.config.Tests, Require: s.config.CapabilityPackages()}
	pkgs, err := loader.Load(ctx, loadConfig, patterns...)
	if err != nil {
		s.diagnostics.Error("Failed to load packages: %v", err)
		return nil, err
	}

	result, err := s.ScanPackages(pkgs)
	s.summary.Elapsed = time.Since(startTime)
	return result, err
}

// ScanPackages scans already loaded packages. A fatal error in any package
// aborts the scan and no result is returned.
func (s *Scanner) ScanPackages(pkgs []*loader.Package) (*Result, error) {
	result := &Result{Target: s.config.Target, Packages: make([]PackageResult, 0, len(pkgs))}

	shared := sharedResolver(pkgs)

	for _, pkg := range pkgs {
		s.diagnostics.Debug("Scanning package %s", pkg.Path)

		opts := append(s.config.ReaderOptions(s.diagnostics), factory.WithResolver(shared))
		methods, err := factory.NewReader(pkg, s.config.Target, opts...).All()
		if err != nil {
			s.diagnostics.Error("Scan of %s failed: %v", pkg.Path, err)
			return nil, &ScanError{Package: pkg.Path, Err: err}
		}

		s.summary.PackagesScanned++
		if len(methods) == 0 {
			continue
		}

		s.summary.FactoryMethods += len(methods)
		for _, method := range methods {
			if method.IsGenerified() {
				s.summary.Generified++
			}
		}
		result.Packages = append(result.Packages, PackageResult{Package: pkg.Path, Methods: methods})
	}

	return result, nil
}

// sharedResolver resolves capabilities across the universes of every loaded
// package so that one lookup table serves the whole scan
func sharedResolver(pkgs []*loader.Package) resolver.Resolver {
	var roots []*types.Package
	for _, pkg := range pkgs {
		roots = append(roots, pkg.Universe()...)
	}
	return resolver.NewPackageResolver(roots...)
}
