package geo

// Payload is the persisted and transmitted form of a consent record. All
// fields are optional; which ones are set decides the state.
type Payload struct {
	Lat             *float64 `json:"lat,omitempty"`
	Lon             *float64 `json:"lon,omitempty"`
	Accuracy        *float64 `json:"accuracy,omitempty"`
	Timestamp       int64    `json:"timestamp,omitempty"`
	InsecureContext bool     `json:"insecureContext,omitempty"`
	Unsupported     bool     `json:"unsupported,omitempty"`
	Denied          *bool    `json:"denied,omitempty"`
	Declined        bool     `json:"declined,omitempty"`
	Code            *int     `json:"code,omitempty"`
	Message         string   `json:"message,omitempty"`
}

func (p *Payload) HasCoords() bool {
	return p.Lat != nil && p.Lon != nil
}

func (p *Payload) IsDenied() bool {
	return p.Denied != nil && *p.Denied
}

type Status string

const (
	StatusEmpty       Status = "empty"
	StatusInsecure    Status = "insecure"
	StatusUnsupported Status = "unsupported"
	StatusDenied      Status = "denied"
	StatusDeclined    Status = "declined"
	StatusOK          Status = "ok"
	StatusStored      Status = "stored"

	// request outcomes that are not derived from a stored record
	StatusDisabled Status = "disabled"
	StatusError    Status = "error"
)

// StatusOf applies the fixed precedence
// insecureContext > unsupported > denied > declined > coordinates > stored.
func StatusOf(p *Payload) Status {
	switch {
	case p == nil:
		return StatusEmpty
	case p.InsecureContext:
		return StatusInsecure
	case p.Unsupported:
		return StatusUnsupported
	case p.IsDenied():
		return StatusDenied
	case p.Declined:
		return StatusDeclined
	case p.HasCoords():
		return StatusOK
	default:
		return StatusStored
	}
}

type StatusResult struct {
	Status  Status   `json:"status"`
	Payload *Payload `json:"payload"`
}

type Result struct {
	Status  Status   `json:"status"`
	Payload *Payload `json:"payload,omitempty"`
}

func ptr[T any](v T) *T {
	return &v
}
