package httpapi

import (
	"errors"
	"net/http"

	"github.com/khatabase/khata/gst"
	"github.com/khatabase/khata/ledger"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }
func notFound(w http.ResponseWriter)               { writeErr(w, http.StatusNotFound, "not_found", "not_found") }
func conflict(w http.ResponseWriter, msg string)   { writeErr(w, http.StatusConflict, msg, "conflict") }
func internalErr(w http.ResponseWriter, msg string) {
	writeErr(w, http.StatusInternalServerError, msg, "")
}
func unprocessable(w http.ResponseWriter, msg, code string) {
	writeErr(w, http.StatusUnprocessableEntity, msg, code)
}

// writeLedgerErr maps ledger errors onto HTTP statuses: missing records are
// 404, duplicates 409, rule violations 422 and everything else 500.
func writeLedgerErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound),
		errors.Is(err, ledger.ErrUnknownAccount),
		errors.Is(err, ledger.ErrUnknownParent):
		writeErr(w, http.StatusNotFound, err.Error(), "not_found")
	case errors.Is(err, ledger.ErrDuplicateAccount),
		errors.Is(err, ledger.ErrDuplicateTransaction):
		conflict(w, err.Error())
	case errors.Is(err, ledger.ErrEmptyTransaction):
		unprocessable(w, err.Error(), "too_few_entries")
	case errors.Is(err, ledger.ErrNoDebit), errors.Is(err, ledger.ErrNoCredit):
		unprocessable(w, err.Error(), "one_sided")
	case errors.Is(err, ledger.ErrNonPositiveAmount):
		unprocessable(w, err.Error(), "invalid_amount")
	case errors.Is(err, ledger.ErrUnbalanced):
		unprocessable(w, err.Error(), "unbalanced")
	case errors.Is(err, ledger.ErrInvalidSide),
		errors.Is(err, ledger.ErrEmptyID),
		errors.Is(err, ledger.ErrEmptyDescription),
		errors.Is(err, ledger.ErrInvalidName),
		errors.Is(err, ledger.ErrInvalidType),
		errors.Is(err, ledger.ErrImmutableType),
		errors.Is(err, ledger.ErrParentCycle):
		unprocessable(w, err.Error(), "validation_error")
	default:
		internalErr(w, err.Error())
	}
}

// writeGSTErr maps gst errors onto HTTP statuses.
func writeGSTErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gst.ErrInvalidRate):
		unprocessable(w, err.Error(), "invalid_rate")
	case errors.Is(err, gst.ErrNonPositiveAmount):
		unprocessable(w, err.Error(), "invalid_amount")
	case errors.Is(err, gst.ErrInvalidCategory):
		unprocessable(w, err.Error(), "invalid_category")
	default:
		internalErr(w, err.Error())
	}
}
