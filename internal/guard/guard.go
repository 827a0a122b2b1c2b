package guard

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/iurnickita/iptvshop/internal/model"
	"github.com/iurnickita/iptvshop/internal/store"
)

// Guard отвечает, был ли запрос уже выполнен.
// Ключ: email для пробного доступа, id заказа провайдера для заказов.
//
//go:generate mockgen -destination=../mocks/guard.go -package=mocks . Guard
type Guard interface {
	IsDuplicate(ctx context.Context, flow model.Flow, key string) bool
	Remember(ctx context.Context, flow model.Flow, key string)
}

// Cache - быстрая память о выполненных запросах перед походом в БД.
type Cache interface {
	Seen(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

type guard struct {
	store  store.Store
	cache  Cache
	zaplog *zap.Logger
}

// NewGuard собирает проверку повторов. cache может быть nil.
func NewGuard(store store.Store, cache Cache, zaplog *zap.Logger) Guard {
	return &guard{store: store, cache: cache, zaplog: zaplog}
}

// Key нормализует ключ повтора для сценария.
func Key(flow model.Flow, order model.Order) string {
	if flow == model.FlowTrial {
		return strings.ToLower(order.CustomerEmail)
	}
	return order.OrderID
}

func (g *guard) IsDuplicate(ctx context.Context, flow model.Flow, key string) bool {
	if key == "" || key == model.NotAvailable {
		return false
	}

	if g.cache != nil {
		seen, err := g.cache.Seen(ctx, cacheKey(flow, key))
		if err != nil {
			g.zaplog.Warn("duplicate cache unavailable, falling back to store",
				zap.String("flow", string(flow)),
				zap.Error(err))
		} else if seen {
			return true
		}
	}

	var exists bool
	var err error
	switch flow {
	case model.FlowTrial:
		exists, err = g.store.TrialExists(ctx, key)
	default:
		exists, err = g.store.OrderExists(ctx, key)
	}
	if err != nil {
		// fail-open: уникальный индекс в БД всё равно отсечёт повтор при вставке
		g.zaplog.Error("duplicate check failed, treating request as new",
			zap.String("flow", string(flow)),
			zap.String("key", key),
			zap.Error(err))
		return false
	}
	return exists
}

func (g *guard) Remember(ctx context.Context, flow model.Flow, key string) {
	if g.cache == nil || key == "" || key == model.NotAvailable {
		return
	}
	if err := g.cache.Mark(ctx, cacheKey(flow, key)); err != nil {
		g.zaplog.Warn("duplicate cache write failed",
			zap.String("flow", string(flow)),
			zap.Error(err))
	}
}

func cacheKey(flow model.Flow, key string) string {
	return "fulfilled:" + string(flow) + ":" + key
}
