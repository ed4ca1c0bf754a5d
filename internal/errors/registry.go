package errors

import "slices"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E101-E199)
	// ============================================

	"E101": {
		Category: CategoryRuntime,
		Message:  "Effect panicked",
		Detail:   "An effect callback panicked during commit. The panic was recovered and the remaining effects still ran.",
	},
	"E102": {
		Category: CategoryRuntime,
		Message:  "Effect cleanup panicked",
		Detail:   "A cleanup returned by an effect panicked. The panic was recovered and the remaining cleanups and effects still ran.",
	},
	"E103": {
		Category: CategoryRuntime,
		Message:  "Flush limit exceeded",
		Detail:   "State kept changing while effects were flushed. Rendering stopped after the configured number of passes; an effect probably sets state unconditionally.",
	},
	"E104": {
		Category: CategoryRuntime,
		Message:  "Hook order changed",
		Detail:   "A component called hooks in a different order than on its first render. Hooks must not be called conditionally or inside loops of varying length.",
	},
	"E105": {
		Category: CategoryRuntime,
		Message:  "Root disposed",
		Detail:   "The root was unmounted. Setters and dispatches after Unmount are ignored.",
	},

	// ============================================
	// Config Errors (E201-E299)
	// ============================================

	"E201": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "feather.yaml could not be read or contains an invalid value.",
	},

	// ============================================
	// Protocol Errors (E301-E399)
	// ============================================

	"E301": {
		Category: CategoryProtocol,
		Message:  "Malformed mutation frame",
		Detail:   "A mutation frame was truncated or contained an unknown operation.",
	},

	// ============================================
	// CLI Errors (E401-E499)
	// ============================================

	"E401": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The live server stopped with an error.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
