package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"dabetai-api/pkg/response"
	"dabetai-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

var errEmptyBody = errors.New("request body is empty")

// decodeJSON decodes the body into dst and rejects fields dst does not declare.
func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	if decoder.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

// bindJSON decodes and validates req, writing the 400 response on failure.
func bindJSON(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := decodeJSON(r, req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}
