package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// JSON writes the payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("respond: encode payload failed", "error", err)
	}
}

// Message writes the standard {"message": ...} body used for acknowledgements.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

// Error writes an error response. Same wire shape as Message; kept separate so
// call sites read as what they are.
func Error(w http.ResponseWriter, status int, message string) {
	Message(w, status, message)
}
