package errors

import "sort"

// Registered error codes.
const (
	CodeReadonlySet    = "R001"
	CodeReadonlyDelete = "R002"
	CodeRecursionLimit = "R003"

	CodeTreeDecode      = "T001"
	CodeTreeInvalidType = "T002"
	CodeTreeDuplicate   = "T003"

	CodeConfigNotFound = "C001"
	CodeConfigParse    = "C002"
	CodeConfigInvalid  = "C003"

	CodeServerBadRequest = "S001"
	CodeServerUpgrade    = "S002"
	CodeServerRateLimit  = "S003"
	CodeServerMessage    = "S004"

	CodeCLIUsage = "X001"
	CodeCLIInput = "X002"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	CodeReadonlySet:    {Category: CategoryReactive, Message: "Set on readonly target ignored"},
	CodeReadonlyDelete: {Category: CategoryReactive, Message: "Delete on readonly target ignored"},
	CodeRecursionLimit: {Category: CategoryReactive, Message: "Job exceeded recursion limit"},

	CodeTreeDecode:      {Category: CategoryTree, Message: "Tree document could not be decoded"},
	CodeTreeInvalidType: {Category: CategoryTree, Message: "Unknown node type"},
	CodeTreeDuplicate:   {Category: CategoryTree, Message: "Duplicate sibling key"},

	CodeConfigNotFound: {Category: CategoryConfig, Message: "Configuration file not found"},
	CodeConfigParse:    {Category: CategoryConfig, Message: "Configuration file could not be parsed"},
	CodeConfigInvalid:  {Category: CategoryConfig, Message: "Configuration is invalid"},

	CodeServerBadRequest: {Category: CategoryServer, Message: "Bad request"},
	CodeServerUpgrade:    {Category: CategoryServer, Message: "WebSocket upgrade failed"},
	CodeServerRateLimit:  {Category: CategoryServer, Message: "Rate limit exceeded"},
	CodeServerMessage:    {Category: CategoryServer, Message: "Invalid websocket message"},

	CodeCLIUsage: {Category: CategoryCLI, Message: "Invalid command usage"},
	CodeCLIInput: {Category: CategoryCLI, Message: "Input file could not be read"},
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

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
