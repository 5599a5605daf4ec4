package handler

import (
	"encoding/json"
	"net/http"
)

// Response is the uniform envelope every endpoint answers with.
// Data is omitted on failures and on responses that carry no payload.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// respond writes a success envelope with the given status and payload.
func respond(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// respondError writes a failure envelope. The message is the only
// detail the client sees; internals never leak through here.
func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
