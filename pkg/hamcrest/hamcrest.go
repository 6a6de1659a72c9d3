// Package hamcrest holds the capability types that matchgen resolves by name
// when it scans a matcher library.
//
// A factory function is an exported package level function returning a
// Matcher and carrying a factory directive in its doc comment:
//
//	//hamcrest::factory -excludes=gwt
//	func EqualToIgnoringCase(s string) hamcrest.Matcher[string]
//
// The scanner never imports this package. It locates Matcher and Factory in
// the type information of the packages it loads, so a matcher library can be
// scanned by a matchgen binary built without it.
package hamcrest

// Description accumulates the text produced by a matcher when it describes
// itself or a mismatch.
type Description interface {
	AppendText(text string) Description
	AppendValue(value any) Description
}

// Matcher checks a value of type T.
type Matcher[T any] interface {
	Matches(actual T) bool
	DescribeTo(description Description)
}

// Factory is the marker type for factory directives. Each field is a
// directive parameter: -excludes=gwt,js sets Excludes.
type Factory struct {
	// Excludes lists the generation targets that must not receive sugar
	// for the marked function.
	Excludes []string
}
