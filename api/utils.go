package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// RespondWithError sends the standard JSON error envelope.
func RespondWithError(w http.ResponseWriter, status int, errMsg string) {
	log.Println("[ERROR]", errMsg)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   errMsg,
	})
}

// RespondWithJSON sends a success envelope with the given payload fields.
func RespondWithJSON(w http.ResponseWriter, status int, payload map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		payload = map[string]interface{}{}
	}
	if _, ok := payload["success"]; !ok {
		payload["success"] = true
	}
	json.NewEncoder(w).Encode(payload)
}
