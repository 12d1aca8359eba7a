// Package memory — хранилище заказов в памяти процесса.
// Используется для локального запуска без Postgres и в тестах конкурентности.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Gunvolt24/order_intake/internal/domain"
	"github.com/Gunvolt24/order_intake/internal/ports"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository — map order_uid -> заказ под одним мьютексом.
// Проверка уникальности и вставка выполняются в одной критической секции.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	items  map[int64][]domain.OrderItem
	nextID int64
	itemID int64
	now    func() time.Time
}

// NewOrderRepository — пустое хранилище.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*domain.Order),
		items:  make(map[int64][]domain.OrderItem),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return ctxErr(err)
	}
	if order == nil || order.OrderUID == "" {
		return errors.New("order is empty or order_uid is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.OrderUID]; ok {
		return fmt.Errorf("insert order %s: %w", order.OrderUID, domain.ErrUniqueViolation)
	}

	r.nextID++
	order.ID = r.nextID
	if order.Status == "" {
		order.Status = domain.OrderStatusReceived
	}

	items := make([]domain.OrderItem, len(order.Items))
	for i := range order.Items {
		r.itemID++
		order.Items[i].ID = r.itemID
		order.Items[i].OrderID = order.ID
		items[i] = order.Items[i]
	}

	stored := *order
	stored.Items = nil
	r.orders[order.OrderUID] = &stored
	r.items[order.ID] = items
	return nil
}

func (r *OrderRepository) FindByUID(ctx context.Context, orderUID string) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, ctxErr(err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.orders[orderUID]
	if !ok {
		return nil, nil
	}
	cp := *stored
	return &cp, nil
}

func (r *OrderRepository) FindItemsByOrderID(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, ctxErr(err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.OrderItem(nil), r.items[orderID]...), nil
}

func (r *OrderRepository) ExistsByUID(ctx context.Context, orderUID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, ctxErr(err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.orders[orderUID]
	return ok, nil
}

func (r *OrderRepository) UpdateStatus(
	ctx context.Context, orderUID string, from []domain.OrderStatus, to domain.OrderStatus,
) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, ctxErr(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[orderUID]
	if !ok {
		return nil, domain.NewOrderNotFoundError(orderUID)
	}
	allowed := false
	for _, s := range from {
		if s == stored.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, stored.Status, to)
	}

	stored.Status = to
	stored.UpdatedAt = r.now()
	cp := *stored
	return &cp, nil
}

// LastN — последние n заказов по updated_at (при равенстве — по ID).
func (r *OrderRepository) LastN(ctx context.Context, n int) ([]*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, ctxErr(err)
	}
	if n <= 0 {
		return nil, nil
	}

	r.mu.RLock()
	all := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		all = append(all, &cp)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].UpdatedAt.Equal(all[j].UpdatedAt) {
			return all[i].UpdatedAt.After(all[j].UpdatedAt)
		}
		return all[i].ID > all[j].ID
	})
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func ctxErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrTimeout, err)
	}
	return err
}
