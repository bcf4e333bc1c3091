package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/paydesk/internal/common"
	"github.com/dmitrijs2005/paydesk/internal/server/services"
)

const (
	detailNoCredentials = "Authentication credentials were not provided."
	detailBadToken      = "Given token not valid for any token type"
	detailNotFound      = "Not found."
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// mapError translates service errors into the response shapes a
// django-rest-framework backend produces.
func mapError(w http.ResponseWriter, err error) {
	var fe services.FieldErrors
	switch {
	case errors.As(err, &fe):
		writeJSON(w, http.StatusBadRequest, fe)
	case errors.Is(err, services.ErrInvalidCredentials):
		writeJSON(w, http.StatusBadRequest, services.FieldErrors{
			"non_field_errors": {"Unable to log in with provided credentials."},
		})
	case errors.Is(err, services.ErrInvalidGoogleToken):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid Google token"})
	case errors.Is(err, services.ErrProductNotFound):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Product not found"})
	case errors.Is(err, common.ErrorNotFound):
		writeDetail(w, http.StatusNotFound, detailNotFound)
	default:
		writeDetail(w, http.StatusInternalServerError, "A server error occurred.")
	}
}
