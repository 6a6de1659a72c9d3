package cli

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/toyz/matchgen/internal/errors"
)

// WriteResult encodes result to w in the given format
func WriteResult(w io.Writer, format string, result *Result) error {
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(result); err != nil {
			return errors.WrapOutputError(format, err)
		}
		if err := encoder.Close(); err != nil {
			return errors.WrapOutputError(format, err)
		}
	case FormatJSON, "":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return errors.WrapOutputError(FormatJSON, err)
		}
	default:
		return errors.New(errors.OutputErrorCode, "unsupported output format '"+format+"'").
			WithContext("format", format)
	}
	return nil
}
