package query

import (
	"context"

	"github.com/market-scout/marketscout/internal/app/service"
	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/port/inbound/query"
)

const defaultLeaderboardLimit = 10

// getLeaderboardHandler implements query.GetLeaderboardHandler.
type getLeaderboardHandler struct {
	leaderboard *service.LeaderboardService
}

// NewGetLeaderboardHandler creates a new GetLeaderboardHandler.
func NewGetLeaderboardHandler(leaderboard *service.LeaderboardService) query.GetLeaderboardHandler {
	return &getLeaderboardHandler{leaderboard: leaderboard}
}

func (h *getLeaderboardHandler) Handle(ctx context.Context, qry query.GetLeaderboard) ([]model.LeaderboardEntry, error) {
	limit := qry.Limit
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	return h.leaderboard.TopN(ctx, limit)
}
