package errors

import "fmt"

// WrapParseError wraps an error with a "failed to parse" message
func WrapParseError(item string, cause error) *SyntaxError {
	message := fmt.Sprintf("failed to parse %s", item)
	return &SyntaxError{
		BaseError: Wrap(SyntaxErrorCode, message, cause),
	}
}

// WrapValidationError wraps an error with a "failed to validate" message
func WrapValidationError(field string, cause error) *BaseError {
	return Wrap(ValidationErrorCode, fmt.Sprintf("failed to validate %s", field), cause).
		WithContext("field", field)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// WrapOutputError wraps errors raised while writing results
func WrapOutputError(format string, cause error) *BaseError {
	message := fmt.Sprintf("failed to write %s output", format)
	return Wrap(OutputErrorCode, message, cause).
		WithContext("format", format)
}
