package types

// InvokeRequest is the body of a command invocation; keys are argument names.
type InvokeRequest map[string]interface{}

// DialogMessage is a frame exchanged with the front-end dialog host.
type DialogMessage struct {
	Type       string   `json:"type"`
	ID         string   `json:"id,omitempty"`
	Mode       string   `json:"mode,omitempty"`
	Title      string   `json:"title,omitempty"`
	Label      string   `json:"label,omitempty"`
	Extensions []string `json:"extensions,omitempty"`
	Path       *string  `json:"path,omitempty"`
	Message    string   `json:"message,omitempty"`
}
