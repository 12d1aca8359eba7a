// Package memory — LRU-кэш проекций статуса с TTL.
package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/order_intake/internal/domain"
	"github.com/Gunvolt24/order_intake/internal/ports"
	"github.com/Gunvolt24/order_intake/pkg/metrics"
)

var _ ports.StatusCache = (*StatusCache)(nil)

type entry struct {
	id        string
	view      *domain.OrderStatusView
	expiresAt time.Time
}

// StatusCache — LRU + TTL. Голова списка — самый свежий элемент.
// ttl <= 0 отключает истечение; capacity <= 0 трактуется как 1.
type StatusCache struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu    sync.Mutex
	ll    *list.List
	index map[string]*list.Element
}

func NewStatusCache(capacity int, ttl time.Duration) *StatusCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &StatusCache{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[string]*list.Element, capacity),
	}
}

// Get — копия проекции; истёкший элемент удаляется на месте.
func (c *StatusCache) Get(_ context.Context, orderUID string) (*domain.OrderStatusView, bool) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[orderUID]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		c.reportSize()
		return nil, false
	}
	c.ll.MoveToFront(elem)

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return cloneView(ent.view), true
}

func (c *StatusCache) Set(_ context.Context, view *domain.OrderStatusView) error {
	if view == nil || view.OrderUID == "" {
		return nil
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[view.OrderUID]; ok {
		ent := elem.Value.(*entry)
		ent.view = cloneView(view)
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		id:        view.OrderUID,
		view:      cloneView(view),
		expiresAt: c.expiryFrom(now),
	})
	c.index[view.OrderUID] = elem

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	c.reportSize()
	return nil
}

// WarmUp — последовательный Set; при переполнении остаются последние элементы среза.
func (c *StatusCache) WarmUp(ctx context.Context, views []*domain.OrderStatusView) error {
	for _, v := range views {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Set(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// Len — текущее число элементов (включая ещё не вычищенные истёкшие).
func (c *StatusCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
