package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/toyz/matchgen/internal/annotations"
	"github.com/toyz/matchgen/internal/errors"
	"github.com/toyz/matchgen/internal/factory"
	"github.com/toyz/matchgen/internal/resolver"
	"github.com/toyz/matchgen/internal/utils"
)

// DefaultConfigFile is read from the working directory when present
const DefaultConfigFile = "matchgen.toml"

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the configuration for a scan
type Config struct {
	// Target is the generation target whose exclusions apply
	Target string `toml:"target"`

	// Marker is the fully qualified name of the marker type
	Marker string `toml:"marker"`

	// Matcher is the fully qualified name of the matcher capability
	Matcher string `toml:"matcher"`

	// Accessor is the marker field listing excluded targets
	Accessor string `toml:"accessor"`

	// Namespace is the directive namespace
	Namespace string `toml:"namespace"`

	// Format is the output format, json or yaml
	Format string `toml:"format"`

	// Dir is the directory packages are loaded from
	Dir string `toml:"dir"`

	// Tests includes test files in the scan
	Tests bool `toml:"tests"`

	// Verbose enables detailed logging
	Verbose bool `toml:"verbose"`

	// Quiet only reports errors
	Quiet bool `toml:"quiet"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	return Config{
		Marker:    factory.DefaultMarker,
		Matcher:   factory.DefaultMatcher,
		Accessor:  factory.DefaultAccessor,
		Namespace: annotations.DefaultNamespace,
		Format:    FormatJSON,
		Dir:       ".",
	}
}

// LoadConfig reads a TOML configuration over the defaults. A missing file
// is only an error when required is set.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return cfg, errors.WrapConfigurationError(path, "read", err)
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.WrapConfigurationError(path, "decode", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return cfg, errors.New(errors.ConfigurationErrorCode,
			fmt.Sprintf("unknown keys in %s: %s", path, strings.Join(keys, ", "))).
			WithSuggestion("Supported keys: target, marker, matcher, accessor, namespace, format, dir, tests, verbose, quiet")
	}
	return cfg, nil
}

// Validate checks the configuration before a scan. Failures carry the
// ValidationErrorCode and name the offending field.
func (c Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatYAML:
	default:
		return invalid("format", fmt.Sprintf("unsupported output format '%s'", c.Format)).
			WithSuggestion("Use --format json or --format yaml")
	}
	if c.Verbose && c.Quiet {
		return invalid("verbose", "verbose and quiet are mutually exclusive")
	}
	for _, capability := range []struct{ field, name string }{{"marker", c.Marker}, {"matcher", c.Matcher}} {
		if _, _, err := resolver.SplitQualifiedName(capability.name); err != nil {
			return errors.WrapValidationError(capability.field, err).
				WithSuggestion("Qualified names look like github.com/toyz/matchgen/pkg/hamcrest.Matcher")
		}
	}
	if c.Accessor == "" {
		return invalid("accessor", "accessor must not be empty")
	}
	if c.Namespace == "" {
		return invalid("namespace", "namespace must not be empty")
	}
	return nil
}

func invalid(field, message string) *errors.BaseError {
	return errors.New(errors.ValidationErrorCode, message).WithContext("field", field)
}

// Diagnostics returns the diagnostic system matching the verbosity settings
func (c Config) Diagnostics() *utils.DiagnosticSystem {
	switch {
	case c.Quiet:
		return utils.NewQuietDiagnostics()
	case c.Verbose:
		return utils.NewVerboseDiagnostics()
	default:
		return utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
}

// ReaderOptions translates the configuration into factory reader options
func (c Config) ReaderOptions(logger factory.Logger) []factory.Option {
	return []factory.Option{
		factory.WithMarker(c.Marker),
		factory.WithMatcher(c.Matcher),
		factory.WithAccessor(c.Accessor),
		factory.WithNamespace(c.Namespace),
		factory.WithLogger(logger),
	}
}

// CapabilityPackages returns the packages declaring the marker and matcher
func (c Config) CapabilityPackages() []string {
	var paths []string
	for _, name := range []string{c.Marker, c.Matcher} {
		path, _, err := resolver.SplitQualifiedName(name)
		if err == nil && !slices.Contains(paths, path) {
			paths = append(paths, path)
		}
	}
	return paths
}
