package command

import (
	"context"

	"go.uber.org/zap"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
	"github.com/market-scout/marketscout/internal/domain/event"
	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/port/inbound/command"
	"github.com/market-scout/marketscout/internal/port/outbound/cache"
	"github.com/market-scout/marketscout/internal/port/outbound/messaging"
	"github.com/market-scout/marketscout/internal/port/outbound/repository"
)

// createMarketHandler implements command.CreateMarketHandler.
type createMarketHandler struct {
	marketRepo    repository.MarketRepository
	responseCache cache.ResponseCache
	publisher     messaging.EventPublisher
	logger        *zap.Logger
}

// NewCreateMarketHandler creates a new CreateMarketHandler.
func NewCreateMarketHandler(
	marketRepo repository.MarketRepository,
	responseCache cache.ResponseCache,
	publisher messaging.EventPublisher,
	logger *zap.Logger,
) command.CreateMarketHandler {
	return &createMarketHandler{
		marketRepo:    marketRepo,
		responseCache: responseCache,
		publisher:     publisher,
		logger:        logger,
	}
}

func (h *createMarketHandler) Handle(ctx context.Context, cmd command.CreateMarket) (command.CreateMarketResult, error) {
	taken, err := h.marketRepo.ExistsByName(ctx, cmd.Name)
	if err != nil {
		return command.CreateMarketResult{}, err
	}
	if taken {
		return command.CreateMarketResult{}, domainerror.ErrMarketNameTaken
	}

	market, err := model.NewMarket(cmd.Name, cmd.Address, cmd.Type)
	if err != nil {
		return command.CreateMarketResult{}, err
	}

	if err := h.marketRepo.Create(ctx, market); err != nil {
		return command.CreateMarketResult{}, err
	}

	// The cached market listing is now stale. Invalidation is this write
	// path's responsibility; the cache does not infer it. Best-effort:
	// the entry expires by TTL anyway.
	if err := h.responseCache.Invalidate(ctx, cache.RequestKey("/markets", nil)); err != nil {
		h.logger.Warn("failed to invalidate market listing cache", zap.Error(err))
	}

	_ = h.publisher.Publish(ctx, event.NewMarketCreated(market.ID(), market.Name()))

	return command.CreateMarketResult{MarketID: market.ID()}, nil
}
