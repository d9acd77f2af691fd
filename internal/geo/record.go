package geo

import "time"

type Kind string

const (
	KindInsecure    Kind = "insecure"
	KindUnsupported Kind = "unsupported"
	KindDenied      Kind = "denied"
	KindDeclined    Kind = "declined"
	KindFailed      Kind = "failed"
	KindStored      Kind = "stored"
)

// Record is one persisted consent state. The empty state is a nil Record.
type Record interface {
	Kind() Kind
	At() time.Time
	Payload() *Payload
	record()
}

type Insecure struct{ Timestamp time.Time }

type Unsupported struct{ Timestamp time.Time }

type Denied struct {
	Code      int
	Message   string
	Timestamp time.Time
}

type Declined struct{ Timestamp time.Time }

// Failed is a location failure other than a permission denial. It is
// persisted but does not block a new request.
type Failed struct {
	Code      int
	Message   string
	Timestamp time.Time
}

type Stored struct {
	Lat       float64
	Lon       float64
	Accuracy  *float64
	Timestamp time.Time
}

func (Insecure) Kind() Kind    { return KindInsecure }
func (Unsupported) Kind() Kind { return KindUnsupported }
func (Denied) Kind() Kind      { return KindDenied }
func (Declined) Kind() Kind    { return KindDeclined }
func (Failed) Kind() Kind      { return KindFailed }
func (Stored) Kind() Kind      { return KindStored }

func (r Insecure) At() time.Time    { return r.Timestamp }
func (r Unsupported) At() time.Time { return r.Timestamp }
func (r Denied) At() time.Time      { return r.Timestamp }
func (r Declined) At() time.Time    { return r.Timestamp }
func (r Failed) At() time.Time      { return r.Timestamp }
func (r Stored) At() time.Time      { return r.Timestamp }

func (Insecure) record()    {}
func (Unsupported) record() {}
func (Denied) record()      {}
func (Declined) record()    {}
func (Failed) record()      {}
func (Stored) record()      {}

func (r Insecure) Payload() *Payload {
	return &Payload{Unsupported: true, InsecureContext: true, Timestamp: millis(r.Timestamp)}
}

func (r Unsupported) Payload() *Payload {
	return &Payload{Unsupported: true, Timestamp: millis(r.Timestamp)}
}

func (r Denied) Payload() *Payload {
	return &Payload{Denied: ptr(true), Code: ptr(r.Code), Message: r.Message, Timestamp: millis(r.Timestamp)}
}

func (r Declined) Payload() *Payload {
	return &Payload{Declined: true, Timestamp: millis(r.Timestamp)}
}

func (r Failed) Payload() *Payload {
	p := &Payload{Denied: ptr(false), Message: r.Message, Timestamp: millis(r.Timestamp)}
	if r.Code != 0 {
		p.Code = ptr(r.Code)
	}
	return p
}

func (r Stored) Payload() *Payload {
	p := &Payload{Lat: ptr(r.Lat), Lon: ptr(r.Lon), Timestamp: millis(r.Timestamp)}
	if r.Accuracy != nil {
		p.Accuracy = ptr(*r.Accuracy)
	}
	return p
}

// Decode turns a payload into its record using the StatusOf precedence.
// Payloads with no recognised flag and no coordinates decode as Failed.
func Decode(p *Payload) Record {
	if p == nil {
		return nil
	}
	ts := fromMillis(p.Timestamp)
	code := 0
	if p.Code != nil {
		code = *p.Code
	}

	switch StatusOf(p) {
	case StatusInsecure:
		return Insecure{Timestamp: ts}
	case StatusUnsupported:
		return Unsupported{Timestamp: ts}
	case StatusDenied:
		return Denied{Code: code, Message: p.Message, Timestamp: ts}
	case StatusDeclined:
		return Declined{Timestamp: ts}
	case StatusOK:
		s := Stored{Lat: *p.Lat, Lon: *p.Lon, Timestamp: ts}
		if p.Accuracy != nil {
			s.Accuracy = ptr(*p.Accuracy)
		}
		return s
	default:
		return Failed{Code: code, Message: p.Message, Timestamp: ts}
	}
}

func millis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
