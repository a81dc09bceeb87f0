// Package api builds the huma API shared by the server and handler tests.
package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
)

const (
	// Title is the OpenAPI document title.
	Title = "hello-svc"
	// DocsPath serves the interactive API reference.
	DocsPath = "/api-docs"
)

// Config returns the huma configuration for the service. Response bodies are
// the exact documented payloads, so huma's schema link hook (which injects a
// $schema field and a Link header) is removed.
func Config(version string) huma.Config {
	cfg := huma.DefaultConfig(Title, version)
	cfg.DocsPath = DocsPath
	cfg.CreateHooks = nil
	cfg.Info.Description = "Greeting, health probe and service metadata endpoints."
	return cfg
}

// New mounts a huma API on router. JSON is the default format;
// application/cbor is served only when the client asks for it.
func New(router chi.Router, version string) huma.API {
	api := humachi.New(router, Config(version))
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, addCBORContent)
	return api
}

// addCBORContent advertises application/cbor next to every JSON body in the OpenAPI document.
func addCBORContent(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}
