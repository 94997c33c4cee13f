// Package errors provides structured, coded errors for uishka.
//
// Every error carries a code (e.g., "E002") that maps to a short message, a
// detailed explanation and a documentation URL. Builders attach the component
// kind and the subject (property, selector or config key) involved.
//
// # Error Categories
//
//   - usage: misuse of the component API (abstract kind, duplicate node, frozen instance)
//   - binding: reactive-property locator diagnostics; logged, never returned
//   - config: uishka.json problems
//   - cli: command-line failures
//
// # Matching
//
// UishkaError implements Is by code, so a freshly built error can act as a sentinel:
//
//	if errors.Is(err, uerrors.New("E002")) { ... }
//
// # Usage
//
//	err := errors.New("E002").
//	    WithKind("Button").
//	    WithSubject("#buy").
//	    WithSuggestion("Destroy the existing instance first")
//
//	fmt.Println(err.Format())
package errors
