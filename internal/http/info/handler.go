package info

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Register wires the service metadata route into the provided API router.
// version is the build version reported in the payload.
func Register(api huma.API, version string) {
	huma.Register(api, huma.Operation{
		OperationID: "get-info",
		Method:      http.MethodGet,
		Path:        "/info",
		Summary:     "Describe the service",
		Tags:        []string{"Info"},
	}, func(context.Context, *struct{}) (*Output, error) {
		return &Output{Body: ServiceInfo{
			Service:     ServiceName,
			Version:     version,
			Description: ServiceDescription,
		}}, nil
	})
}
