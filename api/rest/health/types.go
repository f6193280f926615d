package health

import "context"

type Response struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Version  string `json:"version,omitempty"`
	Database string `json:"database"` // "ok", "unavailable" or "disabled"
	Cache    string `json:"cache"`    // "ok", "unavailable" or "memory"
}

type PingResponse struct {
	Message string `json:"message"`
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// backing services checked by /health; nil fields are not configured
type Dependencies struct {
	Database Pinger
	Cache    Pinger
}
