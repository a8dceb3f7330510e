package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bistfolio/bistfolio/internal/modules/corporate"
	"github.com/bistfolio/bistfolio/internal/modules/ledger"
	"github.com/bistfolio/bistfolio/internal/modules/marketdata"
	"github.com/bistfolio/bistfolio/internal/modules/valuation"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"service": "bistfolio",
	})
}

// handleSystemStatus handles system status requests
func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "running",
		"market": s.marketHours.Status(),
		"memory": map[string]interface{}{
			"alloc_mb": m.Alloc / 1024 / 1024,
			"sys_mb":   m.Sys / 1024 / 1024,
			"num_gc":   m.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	})
}

// handleListTransactions returns the full ordered ledger, optionally
// filtered by symbol.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	var txs []ledger.Transaction
	var err error

	if symbol := r.URL.Query().Get("symbol"); symbol != "" {
		txs, err = s.ledgerRepo.ListBySymbol(strings.ToUpper(symbol))
	} else {
		txs, err = s.ledgerRepo.List()
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"count":        len(txs),
	})
}

type createTransactionRequest struct {
	Type     string  `json:"type"`
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Date     string  `json:"date"`
	Note     string  `json:"note"`
}

// handleCreateTransaction records a new ledger entry
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := ledger.ParseDay(req.Date)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	tx := ledger.NewTransaction(ledger.Type(req.Type), strings.ToUpper(req.Symbol), req.Quantity, req.Price, date)
	tx.Note = req.Note

	if err := s.ledgerRepo.Create(tx); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusCreated, tx)
}

// handleDeleteTransaction removes a ledger entry by ID
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.ledgerRepo.Delete(id); err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// handleHoldings returns current share quantities per symbol
func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := s.valuations.Holdings()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"holdings": holdings,
		"count":    len(holdings),
	})
}

// handleProfitLoss returns the per-symbol FIFO profit/loss summary
func (s *Server) handleProfitLoss(w http.ResponseWriter, r *http.Request) {
	summary, err := s.valuations.ProfitLoss()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

// handleTimeline returns the daily valuation curve. Defaults to the
// trailing year when no range is given.
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	today := ledger.Today()
	start := today.AddDays(-365)
	end := today

	var err error
	if raw := r.URL.Query().Get("start"); raw != "" {
		if start, err = ledger.ParseDay(raw); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid start date")
			return
		}
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		if end, err = ledger.ParseDay(raw); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid end date")
			return
		}
	}
	if end.Before(start) {
		s.writeError(w, http.StatusBadRequest, "end date before start date")
		return
	}

	points, err := s.valuations.Timeline(start, end)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"timeline": points,
		"count":    len(points),
	})
}

// handlePerformance returns investor-relative performance for one symbol
func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))

	perf, err := s.valuations.PerformanceFor(symbol)
	if err != nil {
		switch {
		case errors.Is(err, valuation.ErrNotHeld):
			s.writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, valuation.ErrNoPrice):
			s.writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	s.writeJSON(w, http.StatusOK, perf)
}

// handleDashboard returns cached at-a-glance portfolio metrics
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	metrics, err := s.dashboard.Metrics()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, metrics)
}

// handleSectors returns the portfolio grouped by sector
func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	breakdown, err := s.sectors.Analyze()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, breakdown)
}

// handleRiskAssessment runs the full risk pipeline for every holding
func (s *Server) handleRiskAssessment(w http.ResponseWriter, r *http.Request) {
	report, err := s.risk.Assess()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// handleChart returns a split-adjusted, indicator-enriched price chart
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))

	days := 365
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "invalid days parameter")
			return
		}
		days = parsed
	}

	today := ledger.Today()
	bars, err := s.history.GetDailyPrices(symbol, today.AddDays(-days), today)
	if err != nil {
		if errors.Is(err, marketdata.ErrNoPriceData) {
			s.writeError(w, http.StatusNotFound, "no price history for "+symbol)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	bars = corporate.AdjustForKnownSplits(symbol, bars)

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":  symbol,
		"chart":   marketdata.BuildChart(bars),
		"summary": marketdata.Summarize(bars),
	})
}

// handleCorporateEvent converts a percentage corporate action into a
// ledger transaction and records it.
func (s *Server) handleCorporateEvent(w http.ResponseWriter, r *http.Request) {
	var event corporate.PercentEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	event.Symbol = strings.ToUpper(event.Symbol)

	txs, err := s.ledgerRepo.List()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	tx, err := corporate.Apply(txs, event)
	if err != nil {
		if errors.Is(err, corporate.ErrNoSharesHeld) {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.ledgerRepo.Create(tx); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, tx)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
