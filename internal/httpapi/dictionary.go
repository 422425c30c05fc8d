package httpapi

import (
	"net/http"

	"github.com/khatabase/khata/internal/dictionary"
	"github.com/khatabase/khata/ledger"
)

type dictionaryEntryResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Parent string `json:"parent,omitempty"`
}

// dictionaryAccounts serves the curated starter chart of accounts,
// optionally filtered by ?type=.
func (s *Server) dictionaryAccounts(w http.ResponseWriter, r *http.Request) {
	defs := dictionary.Defaults()
	if t := r.URL.Query().Get("type"); t != "" {
		at := ledger.AccountType(t)
		if !at.Valid() {
			badRequest(w, "unknown account type")
			return
		}
		defs = dictionary.ByType(at)
	}
	out := make([]dictionaryEntryResponse, 0, len(defs))
	for _, d := range defs {
		out = append(out, dictionaryEntryResponse{
			ID:     d.ID,
			Name:   d.Name,
			Type:   string(d.Type),
			Parent: d.Parent,
		})
	}
	toJSON(w, http.StatusOK, out)
}
