package apperr

import (
	"encoding/json"
	"net/http"
)

type envelope struct {
	Error body `json:"error"`
}

type body struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// WriteHTTP renders err as the JSON error envelope. Errors without a code are internal.
func WriteHTTP(w http.ResponseWriter, err error) {
	code := CodeInternal
	message := ""
	var details any
	if e := As(err); e != nil {
		code = e.Code()
		message = e.Message()
		details = e.Details()
	}

	meta := MetadataFor(code)
	if message == "" || code == CodeInternal {
		message = meta.PublicMessage
	}
	if !meta.DetailsAllowed {
		details = nil
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(meta.HTTPStatus)
	_ = json.NewEncoder(w).Encode(envelope{Error: body{Code: code, Message: message, Details: details}})
}
