package http

import (
	"encoding/json"
	apperrors "househunt/pkg/errors"
	"net/http"
	"strconv"
)

const HeaderTotalCount = "X-Total-Count"

// InsertResult, UpdateResult and DeleteResult mirror the acknowledgement
// documents the listing frontend expects from write routes.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	// Return error so caller can log - no recovery possible after WriteHeader
	return json.NewEncoder(w).Encode(data)
}

func WriteText(w http.ResponseWriter, statusCode int, body string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err := w.Write([]byte(body))
	return err
}

func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	return WriteJSON(w, appErr.StatusCode(), appErr.Response())
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, data)
}

func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, data)
}

// WritePage writes one page of results as a bare array and reports the size of
// the whole filtered set in X-Total-Count.
func WritePage(w http.ResponseWriter, data any, totalCount int64) error {
	w.Header().Set(HeaderTotalCount, strconv.FormatInt(totalCount, 10))
	return WriteJSON(w, http.StatusOK, data)
}
