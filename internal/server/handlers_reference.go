package server

import (
	"net/http"

	"github.com/simonvc/fecledger/internal/ledger"
)

func (s *Server) getChart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ledger.ChartOfAccounts())
}

func (s *Server) getJournals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ledger.AllJournals())
}
