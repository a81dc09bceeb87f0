package hello

// Message is the fixed greeting returned by the root endpoint.
const Message = "Hello World"

// Greeting models the response payload for the greeting endpoint.
type Greeting struct {
	Message string `json:"message" doc:"Greeting message" example:"Hello World"`
}

// GetOutput wraps Greeting as the response body.
type GetOutput struct {
	Body Greeting
}
