// GST handlers: forward and reverse single calculations plus whole invoices.
// Results are returned rounded to two decimal places.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/khatabase/khata/gst"
)

func (s *Server) gstCalculate(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req gstCalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}
	calc := gst.New(req.InterState)
	var (
		out gst.Calculation
		err error
	)
	if req.Category != "" {
		out, err = calc.CalculateByCategory(req.Amount, gst.Category(req.Category), req.Rate)
	} else if req.Rate != nil {
		out, err = calc.Calculate(req.Amount, *req.Rate)
	} else {
		badRequest(w, "either rate or category is required")
		return
	}
	if err != nil {
		writeGSTErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toGSTCalculationResponse(out.Rounded()))
}

// gstReverse extracts the base amount and tax out of a tax-inclusive total.
func (s *Server) gstReverse(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req gstCalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}
	rate := req.Rate
	if rate == nil {
		if req.Category == "" {
			badRequest(w, "either rate or category is required")
			return
		}
		r, err := gst.Category(req.Category).Rate()
		if err != nil {
			writeGSTErr(w, err)
			return
		}
		rate = &r
	}
	out, err := gst.New(req.InterState).ReverseCalculate(req.Amount, *rate)
	if err != nil {
		writeGSTErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toGSTCalculationResponse(out.Rounded()))
}

func (s *Server) gstInvoice(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req gstInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}
	if len(req.Items) == 0 {
		badRequest(w, "invoice needs at least one item")
		return
	}
	items := make([]gst.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, gst.LineItem{
			Description: it.Description,
			BaseAmount:  it.Amount,
			Category:    gst.Category(it.Category),
			Rate:        it.Rate,
		})
	}
	inv, err := gst.New(req.InterState).CalculateInvoice(items)
	if err != nil {
		writeGSTErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toGSTInvoiceResponse(inv.Rounded()))
}
