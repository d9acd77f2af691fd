package geo

import (
	"fmt"
	"math"
	"time"
)

// ViewState is the visual state of the consent banner. The zero value
// means the prompt with its allow/decline buttons is shown.
type ViewState string

const (
	ViewPrompt      ViewState = ""
	ViewRequesting  ViewState = "requesting"
	ViewDisabled    ViewState = "disabled"
	ViewInsecure    ViewState = "insecure"
	ViewUnsupported ViewState = "unsupported"
	ViewDenied      ViewState = "denied"
	ViewDeclined    ViewState = "declined"
	ViewStored      ViewState = "stored"
)

const (
	msgPrompt      = "Quieres activar geolocalizacion para ajustar horarios y contenidos cercanos? (opcional)"
	msgError       = "No se pudo obtener tu ubicacion. Revisa permisos e intentalo de nuevo."
	msgDisabled    = "Geolocalizacion desactivada para esta version."
	msgInsecure    = "Geolocalizacion necesita https o localhost; no se pidio tu ubicacion."
	msgUnsupported = "Tu navegador no admite geolocalizacion; no se recopilaron datos."
	msgDenied      = "Se nego geolocalizacion desde el navegador. Puedes reactivarla en ajustes."
	msgDeclined    = "Marcaste que ahora no. Puedes cambiarlo cuando quieras."
	msgRegistered  = "Preferencia registrada."
)

type View struct {
	State   ViewState `json:"state"`
	Message string    `json:"message"`
}

// ShowPrompt reports whether the allow/decline buttons are visible.
func (v View) ShowPrompt() bool {
	return v.State == ViewPrompt
}

// RequestingView is shown while a location query is in flight.
func RequestingView(timeout time.Duration) View {
	return View{
		State:   ViewRequesting,
		Message: fmt.Sprintf("Calculando zona aproximada (max %ds)...", int(timeout.Seconds())),
	}
}

// ResolveView maps a stored payload plus the last request outcome to the
// banner. A non-empty hint wins over the stored payload.
func ResolveView(p *Payload, hint Status, loc *time.Location) View {
	return View{State: resolveState(p, hint), Message: resolveMessage(p, hint, loc)}
}

func resolveState(p *Payload, hint Status) ViewState {
	switch hint {
	case StatusDisabled:
		return ViewDisabled
	case StatusInsecure:
		return ViewInsecure
	case StatusUnsupported:
		return ViewUnsupported
	case StatusDenied:
		return ViewDenied
	case StatusDeclined:
		return ViewDeclined
	case StatusStored, StatusOK:
		return ViewStored
	}

	switch {
	case p == nil:
		return ViewPrompt
	case p.InsecureContext:
		return ViewInsecure
	case p.Unsupported:
		return ViewUnsupported
	case p.Declined:
		return ViewDeclined
	case p.IsDenied():
		return ViewDenied
	case p.Lat != nil || p.Lon != nil:
		return ViewStored
	}
	return ViewPrompt
}

func resolveMessage(p *Payload, hint Status, loc *time.Location) string {
	switch {
	case hint == StatusError:
		return msgError
	case hint == StatusDisabled:
		return msgDisabled
	case p == nil:
		return msgPrompt
	case p.InsecureContext:
		return msgInsecure
	case p.Unsupported:
		return msgUnsupported
	case p.IsDenied():
		return msgDenied
	case p.Declined:
		return msgDeclined
	case p.HasCoords():
		return storedMessage(p, loc)
	}
	return msgRegistered
}

func storedMessage(p *Payload, loc *time.Location) string {
	accuracy := ""
	if p.Accuracy != nil && !math.IsNaN(*p.Accuracy) {
		accuracy = fmt.Sprintf(" (precision ~%d m)", int64(math.Floor(*p.Accuracy+0.5)))
	}
	if p.Timestamp == 0 {
		return "Geolocalizacion activada" + accuracy + "."
	}
	if loc == nil {
		loc = time.Local
	}
	date := time.UnixMilli(p.Timestamp).In(loc).Format("2/1/2006, 15:04:05")
	return "Geolocalizacion activada" + accuracy + ". Ultimo guardado " + date + "."
}
