package httpapi

import (
	"errors"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

const maxRequestBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = jsonAPI.NewEncoder(w).Encode(body)
}

// decodeJSON reads the request body into target. An empty body leaves target untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}

	err := jsonAPI.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(target)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	return errInvalidRequestBody
}
