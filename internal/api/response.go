package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"journalapi/internal/domain"
)

const msgInvalidBody = "Invalid request body"

var errTrailingData = errors.New("unexpected data after JSON body")

// emptyObject renders as {} and is returned for single-record lookups that
// match nothing.
var emptyObject = struct{}{}

type createdResponse struct {
	ID int64 `json:"id"`
}

// idRequest is the body of DELETE requests.
type idRequest struct {
	ID domain.ID `json:"id"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, msg)
}

// decodeBody reads a single JSON value into v. An empty body leaves v
// untouched; anything after the first value is an error.
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

// pathID parses the {id} URL parameter. ok is false for values that cannot be
// an integer key.
func pathID(r *http.Request) (id int64, ok bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}
