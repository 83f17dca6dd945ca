package models

// CreatedResponse is returned by create endpoints; ID identifies the record
// in whichever backend ended up holding it.
type CreatedResponse struct {
	ID string `json:"id"`
}

// UploadResponse is returned by the image upload endpoint. URL is either a
// durable blob-store URL or a data URI from the local fallback.
type UploadResponse struct {
	URL string `json:"url"`
}

// ErrorResponse is the JSON error body used by the HTTP layer.
type ErrorResponse struct {
	Error string `json:"error"`
}
