package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/hello-svc/internal/http/health"
	"github.com/janisto/hello-svc/internal/http/hello"
	"github.com/janisto/hello-svc/internal/http/info"
)

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, version string) {
	hello.Register(api)
	health.Register(api)
	info.Register(api, version)
}
