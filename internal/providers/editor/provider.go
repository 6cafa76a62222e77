package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/BlogWriter/backend/internal/dialog"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/shared/types"
)

// ErrUnknownTool is returned by Execute for IDs the provider does not define.
var ErrUnknownTool = errors.New("unknown tool")

// Provider implements the editor's document commands
type Provider struct {
	dialogs Dialogs
	filter  dialog.Filter
	maxOpen int64
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewProvider creates an editor provider. Zero config values fall back to
// Markdown files and a 10 MiB read limit.
func NewProvider(dialogs Dialogs, cfg Config, logger *logging.Logger) *Provider {
	if logger == nil {
		logger = logging.NewNop()
	}
	if len(cfg.Filter.Extensions) == 0 {
		cfg.Filter = dialog.Filter{Label: "Markdown", Extensions: []string{"md"}}
	}
	if cfg.MaxOpenBytes <= 0 {
		cfg.MaxOpenBytes = 10 * 1024 * 1024
	}
	return &Provider{
		dialogs: dialogs,
		filter:  cfg.Filter,
		maxOpen: cfg.MaxOpenBytes,
		logger:  logger,
	}
}

// WithMetrics records command outcomes on m
func (p *Provider) WithMetrics(m *monitoring.Metrics) *Provider {
	p.metrics = m
	return p
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "editor",
		Name:        "Markdown Editor",
		Description: "Open, save and inspect Markdown documents on the local filesystem",
		Category:    types.CategoryEditor,
		Capabilities: []string{
			"greet",
			"dialog",
			"read",
			"write",
			"stat",
			"mkdir",
		},
		Tools: []types.Tool{
			{
				ID:          "greet",
				Name:        "Greet",
				Description: "Return a greeting for the given name",
				Parameters: []types.Parameter{
					{Name: "name", Type: "string", Description: "Name to greet", Required: true},
				},
				Returns: "string",
			},
			{
				ID:          "save_file",
				Name:        "Save File",
				Description: "Ask for a target path and write the content there",
				Parameters: []types.Parameter{
					{Name: "content", Type: "string", Description: "Document text", Required: true},
				},
				Returns: "null",
			},
			{
				ID:          "open_file",
				Name:        "Open File",
				Description: "Ask for a file and return its text",
				Parameters:  []types.Parameter{},
				Returns:     "string",
			},
			{
				ID:          "check_file_exists",
				Name:        "Check File Exists",
				Description: "Report whether a path names an existing regular file",
				Parameters: []types.Parameter{
					{Name: "file_path", Type: "string", Description: "Path to check", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "get_file_info",
				Name:        "Get File Info",
				Description: "Return a snapshot of a path's filesystem state",
				Parameters: []types.Parameter{
					{Name: "file_path", Type: "string", Description: "Path to inspect", Required: true},
				},
				Returns: "FileInfo",
			},
			{
				ID:          "create_directory",
				Name:        "Create Directory",
				Description: "Create a directory and any missing parents",
				Parameters: []types.Parameter{
					{Name: "dir_path", Type: "string", Description: "Directory to create", Required: true},
				},
				Returns: "null",
			},
		},
	}
}

// Execute runs an editor command. Command failures come back as an
// unsuccessful Result; the error return is reserved for unknown tools.
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	timer := monitoring.NewTimer(p.metrics, toolID)

	var res *types.Result
	switch toolID {
	case "greet":
		res = p.greet(params)
	case "save_file":
		res = p.saveFile(params)
	case "open_file":
		res = p.openFile()
	case "check_file_exists":
		res = p.checkFileExists(params)
	case "get_file_info":
		res = p.getFileInfo(params)
	case "create_directory":
		res = p.createDirectory(params)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, toolID)
	}

	timer.Stop(res.Success)
	return res, nil
}

func (p *Provider) greet(params map[string]interface{}) *types.Result {
	name, ok := stringParam(params, "name")
	if !ok {
		return types.Failure("name parameter required")
	}
	return types.Success(p.Greet(name))
}

func (p *Provider) saveFile(params map[string]interface{}) *types.Result {
	content, ok := stringParam(params, "content")
	if !ok {
		return types.Failure("content parameter required")
	}
	if err := p.SaveFile(content); err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(nil)
}

func (p *Provider) openFile() *types.Result {
	content, err := p.OpenFile()
	if err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(content)
}

func (p *Provider) checkFileExists(params map[string]interface{}) *types.Result {
	path, ok := stringParam(params, "file_path", "filePath")
	if !ok {
		return types.Failure("file_path parameter required")
	}
	exists, err := p.CheckFileExists(path)
	if err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(exists)
}

func (p *Provider) getFileInfo(params map[string]interface{}) *types.Result {
	path, ok := stringParam(params, "file_path", "filePath")
	if !ok {
		return types.Failure("file_path parameter required")
	}
	info, err := p.GetFileInfo(path)
	if err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(info)
}

func (p *Provider) createDirectory(params map[string]interface{}) *types.Result {
	path, ok := stringParam(params, "dir_path", "dirPath")
	if !ok {
		return types.Failure("dir_path parameter required")
	}
	if err := p.CreateDirectory(path); err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(nil)
}

// stringParam returns the first key present as a string. The front-end
// may send either snake_case or camelCase argument names.
func stringParam(params map[string]interface{}, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := params[key].(string); ok {
			return v, true
		}
	}
	return "", false
}
