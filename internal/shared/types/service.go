package types

// Category represents service categories
type Category string

const (
	CategoryEditor Category = "editor"
	CategorySystem Category = "system"
)

// Service represents a service definition
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool represents a command the front-end can invoke by ID
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Context provides execution context for services
type Context struct {
	RequestID *string `json:"request_id,omitempty"`
	WindowID  *string `json:"window_id,omitempty"`
}

// Result represents a command execution result.
// Data carries the typed output; Error is plain descriptive text.
type Result struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *string     `json:"error,omitempty"`
}

// Success wraps a command output
func Success(data interface{}) *Result {
	return &Result{Success: true, Data: data}
}

// Failure wraps a command error message
func Failure(message string) *Result {
	msg := message
	return &Result{Success: false, Error: &msg}
}
