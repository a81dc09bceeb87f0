package info

// Service metadata reported by the info endpoint.
const (
	ServiceName        = "hello-svc"
	ServiceDescription = "Hello World service with deployment strategy"
)

// ServiceInfo describes the running service. Field order is the wire order.
type ServiceInfo struct {
	Service     string `json:"service" doc:"Service name" example:"hello-svc"`
	Version     string `json:"version" doc:"Service version" example:"0.1.0"`
	Description string `json:"description" doc:"Human-readable description" example:"Hello World service with deployment strategy"`
}

// Output wraps ServiceInfo as the response body.
type Output struct {
	Body ServiceInfo
}
