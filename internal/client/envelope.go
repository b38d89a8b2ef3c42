// Package client holds the outbound HTTP clients for the peer services that
// own projects and users. Every endpoint answers with the shared response
// envelope: a success flag plus a typed payload.
package client

// CheckResponse is the envelope returned by existence-check endpoints.
type CheckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    bool   `json:"data"`
}

// ManagerResponse is the envelope returned by the project manager lookup.
type ManagerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    string `json:"data"`
}
