package schema

// UploadPayload is the JSON body POSTed to the report endpoint.
type UploadPayload struct {
	Key  string  `json:"key"`
	Year int     `json:"year"`
	Data *Report `json:"data"`
}

// UploadResponse is the JSON body returned by the report endpoint.
// PreviewURL is set on success; Error carries the server-side reason
// when Success is false.
type UploadResponse struct {
	Success    bool   `json:"success"`
	PreviewURL string `json:"preview_url,omitempty"`
	Error      string `json:"error,omitempty"`
}
