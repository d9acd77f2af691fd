package controllers

import "net/http"

// StubController answers the parts of the API that are not built yet.
type StubController struct{}

func NewStubController() *StubController {
	return &StubController{}
}

func (sc *StubController) Blog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusMessage{Status: "ok", Message: "blog stub (login disabled)"})
}

func (sc *StubController) Api(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusMessage{Status: "ok", Message: "api stub"})
}

func (sc *StubController) NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}
