package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/toyz/matchgen/internal/cli"
	"github.com/toyz/matchgen/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	config   cli.Config
	patterns []string
	output   string
	help     bool
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	flags := flag.NewFlagSet("matchgen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		configFlag    = flags.String("config", cli.DefaultConfigFile, "TOML configuration file")
		targetFlag    = flags.String("target", "", "Generation target whose exclusions apply")
		markerFlag    = flags.String("marker", "", "Fully qualified name of the factory marker type")
		matcherFlag   = flags.String("matcher", "", "Fully qualified name of the matcher interface")
		accessorFlag  = flags.String("accessor", "", "Marker field listing excluded targets")
		namespaceFlag = flags.String("namespace", "", "Directive namespace (//<namespace>::factory)")
		formatFlag    = flags.String("format", "", "Output format: json or yaml")
		dirFlag       = flags.String("dir", "", "Directory packages are loaded from")
		outputFlag    = flags.String("output", "", "Write results to a file instead of stdout")
		testsFlag     = flags.Bool("tests", false, "Include test files")
		verboseFlag   = flags.Bool("verbose", false, "Enable verbose output")
		quietFlag     = flags.Bool("quiet", false, "Only show errors")
		helpFlag      = flags.Bool("help", false, "Show help information")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: matchgen [options] <package-patterns...>\n\n")
		fmt.Fprintf(stderr, "Matchgen Factory Scanner\n")
		fmt.Fprintf(stderr, "Finds matcher factory functions marked with //hamcrest::factory and describes their signatures.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  matchgen ./...                        # Scan every package of the module\n")
		fmt.Fprintf(stderr, "  matchgen --target gwt ./matchers/...  # Apply the exclusions of the gwt target\n")
		fmt.Fprintf(stderr, "  matchgen --format yaml ./matchers     # Emit YAML\n")
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if *helpFlag {
		flags.Usage()
		return &options{help: true}, nil
	}

	// Only an explicitly named config file has to exist
	configSet := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configSet = true
		}
	})
	config, err := cli.LoadConfig(*configFlag, configSet)
	if err != nil {
		return nil, err
	}

	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "target":
			config.Target = *targetFlag
		case "marker":
			config.Marker = *markerFlag
		case "matcher":
			config.Matcher = *matcherFlag
		case "accessor":
			config.Accessor = *accessorFlag
		case "namespace":
			config.Namespace = *namespaceFlag
		case "format":
			config.Format = strings.ToLower(*formatFlag)
		case "dir":
			config.Dir = *dirFlag
		case "tests":
			config.Tests = *testsFlag
		case "verbose":
			config.Verbose = *verboseFlag
		case "quiet":
			config.Quiet = *quietFlag
		}
	})

	if flags.NArg() == 0 {
		flags.Usage()
		return nil, fmt.Errorf("at least one package pattern is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &options{config: config, patterns: flags.Args(), output: *outputFlag}, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if err != flag.ErrHelp {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
	if opts.help {
		return 0
	}

	diagnostics := diagnosticsFor(opts.config, stderr)
	diagnostics.Section("Matchgen Factory Scanner")

	if opts.config.Verbose {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Patterns: %s", strings.Join(opts.patterns, ", "))
		diagnostics.List("Target: %q", opts.config.Target)
		diagnostics.List("Marker: %s", opts.config.Marker)
		diagnostics.List("Matcher: %s", opts.config.Matcher)
		diagnostics.List("Format: %s", opts.config.Format)
	}

	scanner := cli.NewScanner(opts.config, diagnostics)
	result, err := scanner.Run(ctx, opts.patterns)
	if err != nil {
		diagnostics.Error("Scan failed: %v", err)
		return 1
	}

	out := stdout
	if opts.output != "" {
		file, err := os.Create(opts.output)
		if err != nil {
			diagnostics.Error("Cannot create %s: %v", opts.output, err)
			return 1
		}
		defer file.Close()
		out = file
	}
	if err := cli.WriteResult(out, opts.config.Format, result); err != nil {
		diagnostics.Error("%v", err)
		return 1
	}

	report(diagnostics, result, scanner.GetSummary(), opts.config.Verbose)
	return 0
}

func report(diagnostics *utils.DiagnosticSystem, result *cli.Result, summary cli.Summary, verbose bool) {
	if verbose && len(result.Packages) > 0 {
		diagnostics.Subsection("Factory Methods")
		for _, pkg := range result.Packages {
			diagnostics.List("%s", pkg.Package)
			diagnostics.Indent()
			for _, method := range pkg.Methods {
				diagnostics.List("%s", method.Name)
			}
			diagnostics.Unindent()
		}
	}

	stats := map[string]interface{}{
		"Packages scanned": summary.PackagesScanned,
		"Factory methods":  summary.FactoryMethods,
		"Generified":       summary.Generified,
		"Elapsed":          summary.Elapsed.Round(time.Millisecond),
	}
	if summary.Module != "" {
		stats["Module"] = summary.Module
	}
	diagnostics.Summary("Scan Complete!", stats)

	if summary.FactoryMethods == 0 {
		diagnostics.Warn("No factory methods found")
		return
	}
	diagnostics.Success("Described %d factory methods", summary.FactoryMethods)
}

func diagnosticsFor(config cli.Config, stderr io.Writer) *utils.DiagnosticSystem {
	level := utils.DiagnosticInfo
	switch {
	case config.Quiet:
		level = utils.DiagnosticError
	case config.Verbose:
		level = utils.DiagnosticVerbose
	}
	return utils.NewDiagnosticSystemWithWriters(level, stderr, stderr)
}
