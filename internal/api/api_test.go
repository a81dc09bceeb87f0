package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

type testOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

func TestConfig(t *testing.T) {
	cfg := Config("1.2.3")

	if cfg.DocsPath != DocsPath {
		t.Fatalf("expected docs path %s, got %s", DocsPath, cfg.DocsPath)
	}
	if len(cfg.CreateHooks) != 0 {
		t.Fatalf("expected no create hooks, got %d", len(cfg.CreateHooks))
	}
	if cfg.Info.Title != Title || cfg.Info.Version != "1.2.3" {
		t.Fatalf("unexpected info: %+v", cfg.Info)
	}
}

func TestNewOmitsSchemaLink(t *testing.T) {
	router := chi.NewRouter()
	api := New(router, "test")
	huma.Get(api, "/greet", func(context.Context, *struct{}) (*testOutput, error) {
		out := &testOutput{}
		out.Body.Message = "hi"
		return out, nil
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/greet", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if link := resp.Header().Get("Link"); link != "" {
		t.Fatalf("expected no Link header, got %q", link)
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if _, ok := body["$schema"]; ok {
		t.Fatalf("expected no $schema field, got %v", body)
	}
	if len(body) != 1 || body["message"] != "hi" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestNewAddsCBORContentTypes(t *testing.T) {
	api := New(chi.NewRouter(), "test")

	type postInput struct {
		Body struct {
			Name string `json:"name"`
		}
	}
	huma.Post(api, "/test", func(_ context.Context, input *postInput) (*testOutput, error) {
		out := &testOutput{}
		out.Body.Message = "Hello, " + input.Body.Name
		return out, nil
	})

	op := api.OpenAPI().Paths["/test"].Post
	if op.RequestBody == nil {
		t.Fatal("expected request body in operation")
	}
	for _, ct := range []string{"application/json", "application/cbor"} {
		if _, ok := op.RequestBody.Content[ct]; !ok {
			t.Fatalf("expected %s in request body content", ct)
		}
		if _, ok := op.Responses["200"].Content[ct]; !ok {
			t.Fatalf("expected %s in 200 response content", ct)
		}
	}
}

func TestAddCBORContentSkipsNilContent(t *testing.T) {
	op := &huma.Operation{
		Responses: map[string]*huma.Response{
			"204": {Description: "No Content"},
		},
	}

	addCBORContent(nil, op)

	if op.RequestBody != nil {
		t.Fatal("expected request body to stay nil")
	}
	if op.Responses["204"].Content != nil {
		t.Fatal("expected nil response content to stay nil")
	}
}
