package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrIllegalState is matched by every IllegalStateError via errors.Is
var ErrIllegalState = stderrors.New("illegal state")

// ConfigurationError reports that the scanned code base is incompatible with
// the configured core library. It always aborts the whole scan.
type ConfigurationError struct {
	*BaseError
	Capability string // fully qualified name that failed to resolve
	Member     string // member of the capability, if any
}

// NewConfigurationError creates a configuration error for a capability
func NewConfigurationError(capability, message string) *ConfigurationError {
	return &ConfigurationError{
		BaseError:  New(ConfigurationErrorCode, fmt.Sprintf("cannot load core library: %s", message)),
		Capability: capability,
	}
}

// WithMember records the capability member involved in the failure
func (e *ConfigurationError) WithMember(member string) *ConfigurationError {
	e.Member = member
	e.BaseError.WithContext("member", member)
	return e
}

// WithCause adds the underlying cause
func (e *ConfigurationError) WithCause(cause error) *ConfigurationError {
	e.BaseError.WithCause(cause)
	return e
}

// WithLocation adds location information to the error
func (e *ConfigurationError) WithLocation(loc SourceLocation) *ConfigurationError {
	e.BaseError.WithLocation(loc)
	return e
}

// SyntaxError represents a malformed directive comment
type SyntaxError struct {
	*BaseError
	Directive string // raw directive text
}

// NewSyntaxError creates a syntax error
func NewSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, message),
	}
}

// WithDirective records the raw directive text
func (e *SyntaxError) WithDirective(raw string) *SyntaxError {
	e.Directive = raw
	e.BaseError.WithContext("directive", raw)
	return e
}

// WithLocation adds location information to the error
func (e *SyntaxError) WithLocation(loc SourceLocation) *SyntaxError {
	e.BaseError.WithLocation(loc)
	return e
}

// LoadError reports that a package could not be loaded or type checked
type LoadError struct {
	*BaseError
	Package string
}

// NewLoadError creates a load error for a package
func NewLoadError(pkg string, cause error) *LoadError {
	return &LoadError{
		BaseError: Wrap(LoadErrorCode, fmt.Sprintf("failed to load package %s", pkg), cause),
		Package:   pkg,
	}
}

// IllegalStateError reports misuse of an iteration protocol
type IllegalStateError struct {
	*BaseError
}

// NewIllegalStateError creates an illegal state error
func NewIllegalStateError(message string) *IllegalStateError {
	return &IllegalStateError{
		BaseError: Wrap(IllegalStateErrorCode, message, ErrIllegalState),
	}
}

// IsFatal reports whether err aborts a scan
func IsFatal(err error) bool {
	var mErr MatchgenError
	if stderrors.As(err, &mErr) {
		return mErr.ErrorCode().IsFatal()
	}
	return false
}
