package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/port/inbound/command"
	"github.com/market-scout/marketscout/internal/port/inbound/query"
)

type marketResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func toMarketResponse(m *model.Market) marketResponse {
	return marketResponse{
		ID:        m.ID(),
		Name:      m.Name(),
		Address:   m.Address(),
		Type:      m.Type(),
		CreatedAt: m.CreatedAt(),
	}
}

func (s *Server) handleListMarkets(w http.ResponseWriter, r *http.Request) {
	markets, err := s.handlers.ListMarkets.Handle(r.Context(), query.ListMarkets{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]marketResponse, 0, len(markets))
	for _, m := range markets {
		out = append(out, toMarketResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

type createMarketRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Type    string `json:"type"`
}

func (s *Server) handleCreateMarket(w http.ResponseWriter, r *http.Request) {
	var req createMarketRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	result, err := s.handlers.CreateMarket.Handle(r.Context(), command.CreateMarket{
		Name:    req.Name,
		Address: req.Address,
		Type:    req.Type,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": result.MarketID})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	entries, err := s.handlers.GetLeaderboard.Handle(r.Context(), query.GetLeaderboard{Limit: limit})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleMarketSentiment(w http.ResponseWriter, r *http.Request) {
	result, err := s.handlers.GetMarketSentiment.Handle(r.Context(), query.GetMarketSentiment{
		MarketID: r.PathValue("id"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type recordReviewRequest struct {
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

type recordReviewResponse struct {
	ReviewID       string  `json:"review_id"`
	SentimentScore float64 `json:"sentiment_score"`
}

func (s *Server) handleRecordReview(w http.ResponseWriter, r *http.Request) {
	var req recordReviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	claims := claimsFrom(r.Context())

	result, err := s.handlers.RecordReview.Handle(r.Context(), command.RecordReview{
		MarketID: r.PathValue("id"),
		UserID:   claims.Subject,
		Comment:  req.Comment,
		Rating:   req.Rating,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, recordReviewResponse{
		ReviewID:       result.ReviewID,
		SentimentScore: result.SentimentScore,
	})
}
