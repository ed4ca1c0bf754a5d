// Package errors provides structured, actionable errors for Feather.
//
// Every error carries a code (e.g. "E101") that maps to a registered
// template with a category, a short message and a longer explanation.
// Runtime failures that the engine recovers from (a panicking effect, a
// runaway flush loop) are reported through the logger as *FeatherError
// values so they can be matched with errors.As and grouped by code.
//
// # Error Categories
//
//   - runtime: hook and effect failures inside a mounted root
//   - config: feather.yaml loading and validation
//   - protocol: mutation frame encoding and decoding
//   - cli: command-line usage errors
//
// # Usage
//
//	err := errors.New("E201").
//	    WithDetail(`runtime.max_flush_passes must be positive, got -1`).
//	    WithSuggestion("Remove the key to use the default of 100")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E201: Invalid configuration
//	//
//	//   runtime.max_flush_passes must be positive, got -1
//	//
//	//   Hint: Remove the key to use the default of 100
package errors
