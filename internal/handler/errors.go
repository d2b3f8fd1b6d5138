package handler

import (
	"errors"
	"net/http"

	"mindnotes/internal/domain"
	"mindnotes/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var cascadeErr *domain.PartialCascadeError
	var httpErr domain.HTTPError

	switch {
	case errors.As(err, &cascadeErr):
		// The tree may be partially mutated: tell the popup to re-fetch
		// its folder and bookmark collections rather than trust its view.
		httputil.RespondErrorWithExtras(w, cascadeErr.StatusCode(), cascadeErr.Error(),
			map[string]interface{}{"refetch": true})
	case errors.As(err, &httpErr):
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
