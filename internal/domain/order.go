package domain

import "time"

// CustomerDetails — контактные данные клиента; живут только внутри заказа.
type CustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderItem — позиция заказа. OrderID — FK на orders.id.
type OrderItem struct {
	ID        int64  `json:"id"`
	OrderID   int64  `json:"order_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Order — принятый заказ.
// OrderUID — внешний бизнес-ключ: неизменяем и уникален; ID присваивает хранилище.
type Order struct {
	ID        int64           `json:"id"`
	OrderUID  string          `json:"order_uid"`
	Customer  CustomerDetails `json:"customer"`
	Items     []OrderItem     `json:"items"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SubmitOrderRequest — входящая заявка на заказ (тело POST /order/submit).
type SubmitOrderRequest struct {
	OrderUID string             `json:"order_uid"`
	Customer *CustomerDetails   `json:"customer"`
	Items    []OrderItemRequest `json:"items"`
}

// OrderItemRequest — позиция во входящей заявке.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderStatusView — проекция для GET /order/status/{id}.
type OrderStatusView struct {
	OrderUID  string          `json:"order_uid"`
	Status    OrderStatus     `json:"status"`
	UpdatedAt time.Time       `json:"updated_at"`
	Items     []OrderItemView `json:"items"`
}

// OrderItemView — позиция в проекции статуса.
type OrderItemView struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// NewOrderFromRequest — собирает новый заказ в начальном статусе RECEIVED.
// Запрос должен быть уже провалидирован.
func NewOrderFromRequest(req *SubmitOrderRequest, now time.Time) *Order {
	order := &Order{
		OrderUID:  req.OrderUID,
		Status:    OrderStatusReceived,
		CreatedAt: now,
		UpdatedAt: now,
		Items:     make([]OrderItem, 0, len(req.Items)),
	}
	if req.Customer != nil {
		order.Customer = *req.Customer
	}
	for _, it := range req.Items {
		order.Items = append(order.Items, OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return order
}

// NewStatusView — строит проекцию статуса из заказа и его позиций.
func NewStatusView(order *Order, items []OrderItem) *OrderStatusView {
	view := &OrderStatusView{
		OrderUID:  order.OrderUID,
		Status:    order.Status,
		UpdatedAt: order.UpdatedAt,
		Items:     make([]OrderItemView, 0, len(items)),
	}
	for _, it := range items {
		view.Items = append(view.Items, OrderItemView{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return view
}
