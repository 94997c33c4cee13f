package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Usage Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryUsage,
		Message:  "Abstract component kind cannot be instantiated",
		Detail:   "The Base kind only exists to be specialized. Define a concrete kind with component.Define and construct on it.",
		DocURL:   "https://uishka.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryUsage,
		Message:  "Node already bound to a live instance",
		Detail:   "A kind keeps at most one live instance per node. Destroy the existing instance before constructing another one over the same node.",
		DocURL:   "https://uishka.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryUsage,
		Message:  "Component node is nil",
		Detail:   "A component must be constructed over an element of the document.",
		DocURL:   "https://uishka.dev/docs/errors/E003",
	},
	"E006": {
		Category: CategoryUsage,
		Message:  "Reactive property not declared",
		Detail:   "The property was never bound on this instance, or its locator did not resolve when it was bound.",
		DocURL:   "https://uishka.dev/docs/errors/E006",
	},
	"E007": {
		Category: CategoryUsage,
		Message:  "Instance is frozen",
		Detail:   "Freeze seals the instance against new fields. Existing fields can still be updated.",
		DocURL:   "https://uishka.dev/docs/errors/E007",
	},
	"E008": {
		Category: CategoryUsage,
		Message:  "Component kind already defined",
		Detail:   "Kind names are unique within an environment.",
		DocURL:   "https://uishka.dev/docs/errors/E008",
	},
	"E009": {
		Category: CategoryUsage,
		Message:  "Invalid access mode",
		Detail:   "Access modes are text, markup or attribute:<name>. textContent, innerHTML and bare attribute names are also accepted.",
		DocURL:   "https://uishka.dev/docs/errors/E009",
	},
	"E010": {
		Category: CategoryUsage,
		Message:  "Instance destroyed during construction",
		Detail:   "The build function destroyed the instance before it was registered. It is not registered and cannot be looked up.",
		DocURL:   "https://uishka.dev/docs/errors/E010",
	},

	// ============================================
	// Binding Diagnostics (E004-E005)
	// ============================================

	"E004": {
		Category: CategoryBinding,
		Message:  "Element not found for locator",
		Detail:   "The reactive property locator matched no descendant of the component node, so the property was not installed.",
		DocURL:   "https://uishka.dev/docs/errors/E004",
	},
	"E005": {
		Category: CategoryBinding,
		Message:  "Invalid selector",
		Detail:   "The selector could not be parsed as CSS, or as XPath when prefixed with xpath:.",
		DocURL:   "https://uishka.dev/docs/errors/E005",
	},

	// ============================================
	// Configuration Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid uishka.json",
		Detail:   "The uishka.json configuration file is malformed.",
		DocURL:   "https://uishka.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Missing required configuration",
		Detail:   "A required configuration value is not set.",
		DocURL:   "https://uishka.dev/docs/errors/E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is outside its allowed set.",
		DocURL:   "https://uishka.dev/docs/errors/E122",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Cannot read document",
		Detail:   "The HTML document could not be opened or parsed.",
		DocURL:   "https://uishka.dev/docs/errors/E140",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Inspector failed",
		Detail:   "The inspector server stopped with an error.",
		DocURL:   "https://uishka.dev/docs/errors/E141",
	},
	"E142": {
		Category: CategoryCLI,
		Message:  "Snapshot failed",
		Detail:   "The snapshot could not be written to or read from its store.",
		DocURL:   "https://uishka.dev/docs/errors/E142",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
