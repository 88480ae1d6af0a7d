package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the failure shape shared by every endpoint.
type Envelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

func Fail(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, Envelope{Error: true, Message: message})
}

func BadRequest(w http.ResponseWriter, message string) {
	Fail(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	Fail(w, http.StatusUnauthorized, message)
}

func NotFound(w http.ResponseWriter, message string) {
	Fail(w, http.StatusNotFound, message)
}

func InternalError(w http.ResponseWriter) {
	Fail(w, http.StatusInternalServerError, "Internal Server Error")
}
