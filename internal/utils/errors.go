package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

func New(code int, message string) error {
	return &CustomError{
		Code:    code,
		Message: message,
	}
}

// WriteError writes err as a JSON body. A CustomError's code becomes the
// HTTP status; anything else is a 500.
func WriteError(w http.ResponseWriter, err error) {
	var ce *CustomError
	if !errors.As(err, &ce) {
		ce = &CustomError{Code: http.StatusInternalServerError, Message: "internal error"}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ce.Code)
	json.NewEncoder(w).Encode(map[string]*CustomError{"error": ce})
}
