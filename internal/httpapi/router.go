// Package httpapi wires the HTTP surface of the khata service.
// It keeps handlers thin, delegating bookkeeping rules to the ledger package.
package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"log/slog"

	"github.com/khatabase/khata/ledger"
)

// Server wires handlers and middleware using Chi. All bookkeeping goes
// through a single Ledger built on the provided storage backend.
type Server struct {
	led   *ledger.Ledger
	store ledger.Storage
	log   *slog.Logger
	rt    *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by request/response logging and panic recovery.
func New(store ledger.Storage, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		led:   ledger.New(store),
		store: store,
		log:   logger,
		rt:    r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// Ledger exposes the underlying ledger for dev seeding from main.
func (s *Server) Ledger() *ledger.Ledger { return s.led }

// routes declares the public HTTP API endpoints.
func (s *Server) routes() {
	// Accounts (v1)
	s.rt.Post("/v1/accounts", s.postAccount)
	s.rt.Get("/v1/accounts", s.listAccounts)
	s.rt.Get("/v1/accounts/{id}", s.getAccount)
	s.rt.Patch("/v1/accounts/{id}", s.updateAccount)
	s.rt.Get("/v1/accounts/{id}/balance", s.getAccountBalance)
	s.rt.Get("/v1/accounts/{id}/transactions", s.getAccountTransactions)
	// Transactions (v1)
	s.rt.Post("/v1/transactions", s.postTransaction)
	s.rt.Get("/v1/transactions", s.listTransactions)
	s.rt.Get("/v1/transactions/{id}", s.getTransaction)
	s.rt.Post("/v1/transactions/{id}/reverse", s.reverseTransaction)
	// Reports (v1)
	s.rt.Get("/v1/reports/trial-balance", s.trialBalance)
	s.rt.Get("/v1/reports/balance-sheet", s.balanceSheet)
	s.rt.Get("/v1/reports/income-statement", s.incomeStatement)
	// GST (v1)
	s.rt.Post("/v1/gst/calculate", s.gstCalculate)
	s.rt.Post("/v1/gst/reverse", s.gstReverse)
	s.rt.Post("/v1/gst/invoice", s.gstInvoice)
	// Starter chart of accounts (v1)
	s.rt.Get("/v1/dictionary/accounts", s.dictionaryAccounts)
	// Health and metrics (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Get("/metrics", metricsHandler().ServeHTTP)
}
