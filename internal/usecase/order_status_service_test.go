package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gunvolt24/order_intake/internal/domain"
	"github.com/Gunvolt24/order_intake/internal/ports/mocks"
	"github.com/Gunvolt24/order_intake/internal/usecase"
	"github.com/golang/mock/gomock"
)

func storedOrder(status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:        11,
		OrderUID:  orderUID,
		Status:    status,
		UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

var storedItems = []domain.OrderItem{{ID: 1, OrderID: 11, ProductID: "sku-1", Quantity: 2}}

func TestGetOrderStatus_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	cache := mocks.NewMockStatusCache(ctrl)
	view := &domain.OrderStatusView{OrderUID: orderUID, Status: domain.OrderStatusCompleted}
	cache.EXPECT().Get(gomock.Any(), orderUID).Return(view, true)

	svc := usecase.NewOrderStatusService(repo, cache, noopLogger{})
	got, err := svc.GetOrderStatus(context.Background(), orderUID)
	if err != nil || got != view {
		t.Fatalf("expected cached view, got %+v err=%v", got, err)
	}
}

func TestGetOrderStatus_NonTerminalNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	cache := mocks.NewMockStatusCache(ctrl)

	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), orderUID).Return(nil, false),
		repo.EXPECT().FindByUID(gomock.Any(), orderUID).Return(storedOrder(domain.OrderStatusAccepted), nil),
		repo.EXPECT().FindItemsByOrderID(gomock.Any(), int64(11)).Return(storedItems, nil),
	)
	// cache.Set не ожидается: ACCEPTED ещё может измениться

	svc := usecase.NewOrderStatusService(repo, cache, noopLogger{})
	got, err := svc.GetOrderStatus(context.Background(), orderUID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.OrderStatusAccepted || len(got.Items) != 1 || got.Items[0].ProductID != "sku-1" {
		t.Fatalf("unexpected view %+v", got)
	}
}

func TestGetOrderStatus_TerminalCached(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	cache := mocks.NewMockStatusCache(ctrl)

	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), orderUID).Return(nil, false),
		repo.EXPECT().FindByUID(gomock.Any(), orderUID).Return(storedOrder(domain.OrderStatusFailed), nil),
		repo.EXPECT().FindItemsByOrderID(gomock.Any(), int64(11)).Return(storedItems, nil),
		cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil),
	)

	svc := usecase.NewOrderStatusService(repo, cache, noopLogger{})
	if _, err := svc.GetOrderStatus(context.Background(), orderUID); err != nil {
		t.Fatal(err)
	}
}

func TestGetOrderStatus_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	repo.EXPECT().FindByUID(gomock.Any(), "missing").Return(nil, nil)

	svc := usecase.NewOrderStatusService(repo, nil, noopLogger{})
	_, err := svc.GetOrderStatus(context.Background(), "missing")
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}
}

func TestGetOrderStatus_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	repo.EXPECT().FindByUID(gomock.Any(), orderUID).Return(nil, domain.ErrTimeout)
	repo.EXPECT().FindByUID(gomock.Any(), orderUID).Return(storedOrder(domain.OrderStatusReceived), nil)
	repo.EXPECT().FindItemsByOrderID(gomock.Any(), int64(11)).Return(nil, errors.New("boom"))

	svc := usecase.NewOrderStatusService(repo, nil, noopLogger{})

	if _, err := svc.GetOrderStatus(context.Background(), orderUID); !errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("want ErrTimeout, got %v", err)
	}
	if _, err := svc.GetOrderStatus(context.Background(), orderUID); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("want ErrPersistence, got %v", err)
	}
}

func TestWarmUpCache_OnlyTerminalNewestLast(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	cache := mocks.NewMockStatusCache(ctrl)

	newest := &domain.Order{ID: 3, OrderUID: "c", Status: domain.OrderStatusCompleted}
	active := &domain.Order{ID: 2, OrderUID: "b", Status: domain.OrderStatusAccepted}
	oldest := &domain.Order{ID: 1, OrderUID: "a", Status: domain.OrderStatusFailed}

	repo.EXPECT().LastN(gomock.Any(), 3).Return([]*domain.Order{newest, active, oldest}, nil)
	repo.EXPECT().FindItemsByOrderID(gomock.Any(), int64(1)).Return(nil, nil)
	repo.EXPECT().FindItemsByOrderID(gomock.Any(), int64(3)).Return(nil, nil)
	cache.EXPECT().WarmUp(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, views []*domain.OrderStatusView) error {
			if len(views) != 2 || views[0].OrderUID != "a" || views[1].OrderUID != "c" {
				t.Fatalf("unexpected warm-up set: %+v", views)
			}
			return nil
		})

	svc := usecase.NewOrderStatusService(repo, cache, noopLogger{})
	if err := svc.WarmUpCache(context.Background(), 3); err != nil {
		t.Fatal(err)
	}
}

func TestWarmUpCache_SkippedForNonPositiveN(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc := usecase.NewOrderStatusService(mocks.NewMockOrderRepository(ctrl), mocks.NewMockStatusCache(ctrl), noopLogger{})
	if err := svc.WarmUpCache(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
}
