package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/order_intake/internal/domain"
	"github.com/Gunvolt24/order_intake/pkg/metrics"
)

// evictLRU — удаляет наименее используемый элемент.
func (c *StatusCache) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
	}
}

// removeElement — удаляет элемент из списка и индекса.
func (c *StatusCache) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	if ent, ok := elem.Value.(*entry); ok {
		delete(c.index, ent.id)
	}
	c.ll.Remove(elem)
}

func (c *StatusCache) isExpired(ent *entry, now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *StatusCache) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack — удаляет истёкшие элементы с хвоста до первого актуального.
func (c *StatusCache) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for back := c.ll.Back(); back != nil; back = c.ll.Back() {
		if !now.After(back.Value.(*entry).expiresAt) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
	}
}

func (c *StatusCache) reportSize() {
	metrics.CacheSize.Set(float64(c.ll.Len()))
}

// cloneView — глубокая копия: наружу не отдаём внутренние срезы.
func cloneView(v *domain.OrderStatusView) *domain.OrderStatusView {
	if v == nil {
		return nil
	}
	cp := *v
	if v.Items != nil {
		cp.Items = append([]domain.OrderItemView(nil), v.Items...)
	}
	return &cp
}
