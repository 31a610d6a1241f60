package api

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, data)
}

func created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, data)
}

func errorJSON(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}

func badRequest(w http.ResponseWriter, message string) {
	errorJSON(w, http.StatusBadRequest, message)
}

func notFound(w http.ResponseWriter, message string) {
	errorJSON(w, http.StatusNotFound, message)
}

func internalError(w http.ResponseWriter, message string) {
	errorJSON(w, http.StatusInternalServerError, message)
}
