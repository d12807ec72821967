package rest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// codeNoRows is PostgREST's answer to a single-row read that matched
// nothing.
const codeNoRows = "PGRST116"

// Error is a structured PostgREST failure.
type Error struct {
	Code    string
	Message string
	Details string
	Hint    string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNotFound reports whether err means "no rows".
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == codeNoRows
}

// wrap lifts the client's "(code) message" errors into *Error.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if e := parseError(msg); e != nil {
		return e
	}
	if strings.HasPrefix(msg, "(") {
		if end := strings.Index(msg, ") "); end > 1 {
			return &Error{Code: msg[1:end], Message: msg[end+2:]}
		}
	}
	return err
}

// parseError recognises a PostgREST error object in a response body.
func parseError(body string) *Error {
	if !gjson.Valid(body) {
		return nil
	}
	res := gjson.Parse(body)
	if !res.IsObject() || !res.Get("message").Exists() || !res.Get("code").Exists() {
		return nil
	}
	return &Error{
		Code:    res.Get("code").String(),
		Message: res.Get("message").String(),
		Details: res.Get("details").String(),
		Hint:    res.Get("hint").String(),
	}
}
