// Package service routes editor commands to their providers.
//
// Providers describe themselves with a types.Service definition; every
// tool they list becomes an invocable command addressed by its bare ID
// (for example "open_file"). Command IDs are unique across providers.
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(editorProvider)
//	result, err := registry.Execute(ctx, "get_file_info", params, appCtx)
package service
