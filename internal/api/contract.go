package api

type CreateDeviceRequest struct {
	Name      string  `json:"name"`
	Threshold *uint64 `json:"threshold"`
}

type UpdateThresholdRequest struct {
	Threshold *uint64 `json:"threshold"`
}

type GPSEventRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// EncodeRequest carries the union of inputs of the three operations; each
// operation reads only its own fields.
type EncodeRequest struct {
	Name      string   `json:"name,omitempty"`
	DeviceID  string   `json:"device_id,omitempty"`
	Threshold *uint64  `json:"threshold,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type SubmissionResponse struct {
	SubmissionID string `json:"submission_id"`
	Digest       string `json:"digest,omitempty"`
	Error        string `json:"error,omitempty"`
}

type AccountResponse struct {
	Connected bool   `json:"connected"`
	Address   string `json:"address,omitempty"`
	PublicKey string `json:"public_key,omitempty"`
	Network   string `json:"network"`
}

type NetworksResponse struct {
	Selected string            `json:"selected"`
	Networks map[string]string `json:"networks"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
