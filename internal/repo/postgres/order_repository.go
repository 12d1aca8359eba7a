package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/order_intake/internal/domain"
	"github.com/Gunvolt24/order_intake/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

const orderColumns = `id, order_uid, customer_name, customer_email, customer_phone, status, created_at, updated_at`

// OrderRepository — реализация репозитория заказов на Postgres (pgxpool).
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository - конструктор OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

// Save — транзакционно сохраняет новый заказ и его позиции.
// Повторный order_uid отклоняется уникальным индексом -> domain.ErrUniqueViolation.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	defer observe("save", time.Now())

	if order == nil || order.OrderUID == "" {
		return errors.New("order is empty or order_uid is required")
	}

	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return mapErr("begin", err)
	}
	defer func() {
		// При уже завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
		if rbErr := transaction.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	if order.Status == "" {
		order.Status = domain.OrderStatusReceived
	}

	// 1) orders — обычный INSERT: конфликт по order_uid должен всплыть как 23505.
	err = transaction.QueryRow(ctx, `
		INSERT INTO orders (order_uid, customer_name, customer_email, customer_phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		order.OrderUID, order.Customer.Name, order.Customer.Email, order.Customer.Phone,
		string(order.Status), order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return mapErr("insert order", err)
	}

	// 2) order_items — одним батчем, с возвратом id каждой позиции.
	if len(order.Items) > 0 {
		if err = insertItems(ctx, transaction, order.ID, order.Items); err != nil {
			return err
		}
	}

	if err = transaction.Commit(ctx); err != nil {
		return mapErr("commit", err)
	}
	return nil
}

// FindByUID — заказ без позиций. Если не нашли, возвращает (nil, nil).
func (r *OrderRepository) FindByUID(ctx context.Context, orderUID string) (*domain.Order, error) {
	defer observe("find_by_uid", time.Now())

	order, err := scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_uid = $1`, orderUID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapErr("select order", err)
	}
	return order, nil
}

// FindItemsByOrderID — позиции заказа в порядке вставки.
func (r *OrderRepository) FindItemsByOrderID(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	defer observe("find_items", time.Now())

	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_id, quantity
		FROM order_items WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, mapErr("select items", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0, 4)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("items rows", err)
	}
	return items, nil
}

// ExistsByUID — дешёвая проверка наличия заказа.
func (r *OrderRepository) ExistsByUID(ctx context.Context, orderUID string) (bool, error) {
	defer observe("exists", time.Now())

	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE order_uid = $1)`, orderUID,
	).Scan(&exists); err != nil {
		return false, mapErr("exists", err)
	}
	return exists, nil
}

// UpdateStatus — compare-and-set по статусу: строка меняется, только если
// текущий статус входит в from. Иначе различаем «нет заказа» и «недопустимый переход».
func (r *OrderRepository) UpdateStatus(
	ctx context.Context, orderUID string, from []domain.OrderStatus, to domain.OrderStatus,
) (*domain.Order, error) {
	defer observe("update_status", time.Now())

	if len(from) == 0 {
		return nil, fmt.Errorf("%w: nothing transitions into %s", domain.ErrInvalidTransition, to)
	}

	order, err := scanOrder(r.pool.QueryRow(ctx, `
		UPDATE orders
		SET status = $2, updated_at = now()
		WHERE order_uid = $1 AND status = ANY($3::text[])
		RETURNING `+orderColumns,
		orderUID, string(to), statusStrings(from),
	))
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapErr("update status", err)
	}

	var current string
	err = r.pool.QueryRow(ctx, `SELECT status FROM orders WHERE order_uid = $1`, orderUID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewOrderNotFoundError(orderUID)
	}
	if err != nil {
		return nil, mapErr("select status", err)
	}
	return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current, to)
}

// LastN — последние N заказов без позиций (для прогрева кэша).
func (r *OrderRepository) LastN(ctx context.Context, n int) ([]*domain.Order, error) {
	defer observe("last_n", time.Now())

	if n <= 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY updated_at DESC, id DESC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, mapErr("select last orders", err)
	}
	defer rows.Close()

	result := make([]*domain.Order, 0, n)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("last rows", err)
	}
	return result, nil
}

// insertItems — вставка позиций через pgx.Batch: один round-trip, id каждой позиции возвращается.
func insertItems(ctx context.Context, tx pgx.Tx, orderID int64, items []domain.OrderItem) error {
	batch := &pgx.Batch{}
	for i := range items {
		batch.Queue(`
			INSERT INTO order_items (order_id, product_id, quantity)
			VALUES ($1, $2, $3)
			RETURNING id
		`, orderID, items[i].ProductID, items[i].Quantity)
	}

	results := tx.SendBatch(ctx, batch)
	for i := range items {
		if err := results.QueryRow().Scan(&items[i].ID); err != nil {
			_ = results.Close()
			return mapErr("insert item", err)
		}
		items[i].OrderID = orderID
	}
	if err := results.Close(); err != nil {
		return mapErr("insert items", err)
	}
	return nil
}
