package domain

// OrderStatus — состояние заказа.
//
//	RECEIVED ──> ACCEPTED ──> COMPLETED
//	    │            │
//	    └────────────┴──────> FAILED
//
// RECEIVED выставляется атомарно с созданием заказа; остальные переходы
// инициирует внешний контур исполнения (события из Kafka).
type OrderStatus string

const (
	OrderStatusReceived  OrderStatus = "RECEIVED"
	OrderStatusAccepted  OrderStatus = "ACCEPTED"
	OrderStatusFailed    OrderStatus = "FAILED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

// predecessors — из каких статусов разрешён переход в ключевой статус.
var predecessors = map[OrderStatus][]OrderStatus{
	OrderStatusAccepted:  {OrderStatusReceived},
	OrderStatusFailed:    {OrderStatusReceived, OrderStatusAccepted},
	OrderStatusCompleted: {OrderStatusAccepted},
}

// Valid — известен ли статус.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusReceived, OrderStatusAccepted, OrderStatusFailed, OrderStatusCompleted:
		return true
	}
	return false
}

// IsTerminal — из статуса нет переходов.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusFailed || s == OrderStatusCompleted
}

// CanTransitionTo — разрешён ли переход s -> next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, from := range predecessors[next] {
		if from == s {
			return true
		}
	}
	return false
}

// Predecessors — статусы, из которых можно перейти в next.
// Для RECEIVED (и неизвестных статусов) список пуст: в него не переходят.
func Predecessors(next OrderStatus) []OrderStatus {
	return append([]OrderStatus(nil), predecessors[next]...)
}
