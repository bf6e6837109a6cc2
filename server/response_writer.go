package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-token-service/oauthmodel"
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// writeTokenResponse renders a successful issuance in the negotiated format.
func writeTokenResponse(w http.ResponseWriter, format oauthmodel.ResponseFormat, resp *oauthmodel.AccessTokenResponse) {
	setNoStoreHeaders(w)
	switch format {
	case oauthmodel.FormatJSON:
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	default:
		w.Header().Set("Content-Type", contentTypeText)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(resp.FormEncoded()))
	}
}

// writeErrorResponse renders a failure as its OAuth2 error code.
func writeErrorResponse(w http.ResponseWriter, format oauthmodel.ResponseFormat, code string) {
	setNoStoreHeaders(w)

	status := http.StatusBadRequest
	if code == oauthmodel.CodeServerError {
		status = http.StatusInternalServerError
	}

	body := oauthmodel.ErrorResponse{Error: code}
	switch format {
	case oauthmodel.FormatJSON:
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(&body)
	default:
		w.Header().Set("Content-Type", contentTypeText)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body.FormEncoded()))
	}
}

func setNoStoreHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
