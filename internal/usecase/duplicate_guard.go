package usecase

import (
	"context"

	"github.com/Gunvolt24/order_intake/internal/ports"
)

// DuplicateGuard — предварительная проверка существования заказа.
// Только подсказка: между Exists и Save может вклиниться конкурент,
// окончательное решение принимает уникальный индекс хранилища.
type DuplicateGuard struct {
	repo ports.OrderRepository
}

func NewDuplicateGuard(repo ports.OrderRepository) *DuplicateGuard {
	return &DuplicateGuard{repo: repo}
}

// Exists — есть ли уже заказ с таким order_uid.
func (g *DuplicateGuard) Exists(ctx context.Context, orderUID string) (bool, error) {
	return g.repo.ExistsByUID(ctx, orderUID)
}
