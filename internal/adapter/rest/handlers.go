package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/aimarketsim/backend/internal/domain"
	"github.com/aimarketsim/backend/internal/usecase/registry"
)

type registerCompanyRequest struct {
	Name        string          `json:"name"`
	Symbol      string          `json:"symbol"`
	Description string          `json:"description"`
	Address     string          `json:"address"`
	StockPrice  decimal.Decimal `json:"stockPrice"`
	TotalShares int64           `json:"totalShares"`
	Color       string          `json:"color"`
}

type updatePriceRequest struct {
	StockPrice decimal.Decimal `json:"stockPrice"`
}

type makeInvestmentRequest struct {
	Investor  string `json:"investor"`
	CompanyID string `json:"companyId"`
	Shares    int64  `json:"shares"`
}

type initiateNegotiationRequest struct {
	InvestorID      string `json:"investorId"`
	CompanyName     string `json:"companyName"`
	TargetCompanyID string `json:"targetCompanyId"`
	Shares          int64  `json:"shares"`
}

type respondNegotiationRequest struct {
	Accept bool `json:"accept"`
}

type logTransactionRequest struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRegisterCompany(w http.ResponseWriter, r *http.Request) {
	var req registerCompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	company, err := s.engine.RegisterCompany(r.Context(), registry.RegisterCompanyInput{
		Name:        req.Name,
		Symbol:      req.Symbol,
		Description: req.Description,
		Address:     req.Address,
		StockPrice:  req.StockPrice,
		TotalShares: req.TotalShares,
		Color:       req.Color,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, company)
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.engine.Companies(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := s.engine.FindCompany(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (s *Server) handleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	var req updatePriceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.engine.UpdateStockPrice(r.Context(), id, req.StockPrice); err != nil {
		writeError(w, err)
		return
	}
	company, err := s.engine.FindCompany(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (s *Server) handleCompanyInvestments(w http.ResponseWriter, r *http.Request) {
	investments, err := s.engine.InvestmentsByCompany(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, investments)
}

func (s *Server) handlePriceHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.engine.PriceHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleMakeInvestment(w http.ResponseWriter, r *http.Request) {
	var req makeInvestmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	investment, err := s.engine.MakeDirectInvestment(r.Context(), req.Investor, req.CompanyID, req.Shares)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, investment)
}

func (s *Server) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if investor := r.URL.Query().Get("investor"); investor != "" {
		investments, err := s.engine.InvestmentsByInvestor(ctx, investor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, investments)
		return
	}
	investments, err := s.engine.Investments(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, investments)
}

func (s *Server) handleInitiateNegotiation(w http.ResponseWriter, r *http.Request) {
	var req initiateNegotiationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	negotiation, err := s.engine.InitiateNegotiation(r.Context(), req.InvestorID, req.CompanyName, req.TargetCompanyID, req.Shares)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, negotiation)
}

func (s *Server) handlePendingNegotiations(w http.ResponseWriter, r *http.Request) {
	pending, err := s.engine.PendingNegotiations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

func (s *Server) handleRespondNegotiation(w http.ResponseWriter, r *http.Request) {
	var req respondNegotiationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	negotiation, err := s.engine.RespondToNegotiation(r.Context(), chi.URLParam(r, "id"), req.Accept)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, negotiation)
}

func (s *Server) handleTransactionLog(w http.ResponseWriter, r *http.Request) {
	entries, err := s.engine.TransactionLog(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleLogTransaction(w http.ResponseWriter, r *http.Request) {
	var req logTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	typ := domain.LogType(req.Type)
	switch typ {
	case domain.LogInfo, domain.LogSuccess, domain.LogError:
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid log type"})
		return
	}
	s.engine.LogTransaction(r.Context(), typ, req.Message)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMarketCap(w http.ResponseWriter, r *http.Request) {
	distribution, err := s.engine.MarketCapDistribution(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, distribution)
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	timeline, err := s.engine.InvestmentTimeline(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, timeline)
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	investor := r.URL.Query().Get("investor")
	if investor == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "investor query parameter required"})
		return
	}
	holdings, err := s.engine.HoldingsOf(r.Context(), investor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, holdings)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	investor := r.URL.Query().Get("investor")
	if investor == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "investor query parameter required"})
		return
	}
	portfolio, err := s.engine.Portfolio(r.Context(), investor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, portfolio)
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.ErrValidation
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errorStatus(err), errorResponse{Error: err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientShares):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
