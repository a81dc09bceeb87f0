package health

// StatusHealthy is reported while the process is able to serve requests.
const StatusHealthy = "healthy"

// Status is the payload for the health endpoint.
type Status struct {
	Status string `json:"status" doc:"Liveness status" example:"healthy"`
}

// Output wraps Status as the response body.
type Output struct {
	Body Status
}
