package domain

import "time"

// StatusEvent — событие смены статуса от контура исполнения (Kafka).
type StatusEvent struct {
	OrderUID string      `json:"order_uid"`
	Status   OrderStatus `json:"status"`
}

// OrderReceivedEvent — публикуется после успешного приёма заказа.
type OrderReceivedEvent struct {
	OrderUID  string          `json:"order_uid"`
	Status    OrderStatus     `json:"status"`
	Items     []OrderItemView `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewOrderReceivedEvent — событие по только что сохранённому заказу.
func NewOrderReceivedEvent(order *Order) OrderReceivedEvent {
	ev := OrderReceivedEvent{
		OrderUID:  order.OrderUID,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		Items:     make([]OrderItemView, 0, len(order.Items)),
	}
	for _, it := range order.Items {
		ev.Items = append(ev.Items, OrderItemView{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return ev
}
