package query

import (
	"context"

	"github.com/market-scout/marketscout/internal/domain/model"
)

// GetLeaderboard returns the top N markets by composite popularity score.
type GetLeaderboard struct {
	Limit int64
}

func (q GetLeaderboard) QueryName() string {
	return "marketscout.get_leaderboard"
}

// GetLeaderboardHandler handles the GetLeaderboard query.
type GetLeaderboardHandler interface {
	Handle(ctx context.Context, qry GetLeaderboard) ([]model.LeaderboardEntry, error)
}
