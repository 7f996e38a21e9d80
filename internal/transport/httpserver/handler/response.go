package handler

import (
	"encoding/json"
	"net/http"
)

// apiResponse is the envelope every endpoint answers with: the HTTP status
// repeated in the body, the payload (possibly empty) and a human-readable
// message.
type apiResponse struct {
	Status  int         `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func writeData(w http.ResponseWriter, status int, data interface{}, message string) {
	if data == nil {
		data = struct{}{}
	}
	writeJSON(w, status, apiResponse{Status: status, Data: data, Message: message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{Status: status, Data: struct{}{}, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
