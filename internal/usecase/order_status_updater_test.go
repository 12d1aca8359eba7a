package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Gunvolt24/order_intake/internal/domain"
	"github.com/Gunvolt24/order_intake/internal/ports/mocks"
	"github.com/Gunvolt24/order_intake/internal/repo/memory"
	"github.com/Gunvolt24/order_intake/internal/usecase"
	"github.com/golang/mock/gomock"
)

func TestUpdateFromMessage_InvalidPayloads(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl) // до хранилища дело не доходит

	upd := usecase.NewOrderStatusUpdater(repo, nil, noopLogger{})

	for name, raw := range map[string]string{
		"broken json":    `{`,
		"unknown field":  `{"order_uid":"o-1","status":"ACCEPTED","extra":1}`,
		"trailing data":  `{"order_uid":"o-1","status":"ACCEPTED"} {}`,
		"unknown status": `{"order_uid":"o-1","status":"SHIPPED"}`,
		"empty uid":      `{"order_uid":"","status":"ACCEPTED"}`,
	} {
		if err := upd.UpdateFromMessage(context.Background(), []byte(raw)); !errors.Is(err, domain.ErrInvalidStatusEvent) {
			t.Fatalf("%s: want ErrInvalidStatusEvent, got %v", name, err)
		}
	}

	err := upd.UpdateFromMessage(context.Background(), []byte(`{"order_uid":"o-1","status":"RECEIVED"}`))
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("RECEIVED cannot be set by event, got %v", err)
	}
}

func TestUpdateFromMessage_PassesPredecessors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)

	repo.EXPECT().
		UpdateStatus(gomock.Any(), "o-1", []domain.OrderStatus{domain.OrderStatusAccepted}, domain.OrderStatusCompleted).
		Return(&domain.Order{ID: 5, OrderUID: "o-1", Status: domain.OrderStatusCompleted}, nil)

	upd := usecase.NewOrderStatusUpdater(repo, nil, noopLogger{})
	if err := upd.UpdateFromMessage(context.Background(), []byte(`{"order_uid":"o-1","status":"COMPLETED"}`)); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateFromMessage_TerminalGoesToCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)
	cache := mocks.NewMockStatusCache(ctrl)

	gomock.InOrder(
		repo.EXPECT().UpdateStatus(gomock.Any(), "o-1", gomock.Any(), domain.OrderStatusFailed).
			Return(&domain.Order{ID: 5, OrderUID: "o-1", Status: domain.OrderStatusFailed}, nil),
		repo.EXPECT().FindItemsByOrderID(gomock.Any(), int64(5)).
			Return([]domain.OrderItem{{ProductID: "sku-1", Quantity: 1}}, nil),
		cache.EXPECT().Set(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, v *domain.OrderStatusView) error {
				if v.Status != domain.OrderStatusFailed || len(v.Items) != 1 {
					t.Fatalf("unexpected cached view %+v", v)
				}
				return nil
			}),
	)

	upd := usecase.NewOrderStatusUpdater(repo, cache, noopLogger{})
	if err := upd.UpdateFromMessage(context.Background(), []byte(`{"order_uid":"o-1","status":"FAILED"}`)); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateFromMessage_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)

	repo.EXPECT().UpdateStatus(gomock.Any(), "o-1", gomock.Any(), gomock.Any()).
		Return(nil, domain.NewOrderNotFoundError("o-1"))
	repo.EXPECT().UpdateStatus(gomock.Any(), "o-1", gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection reset"))

	upd := usecase.NewOrderStatusUpdater(repo, nil, noopLogger{})
	msg := []byte(`{"order_uid":"o-1","status":"ACCEPTED"}`)

	if err := upd.UpdateFromMessage(context.Background(), msg); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}
	if err := upd.UpdateFromMessage(context.Background(), msg); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("want ErrPersistence, got %v", err)
	}
}

// Полный жизненный цикл на реальном хранилище: приём -> ACCEPTED -> COMPLETED, повтор отклоняется.
func TestStatusLifecycle_MemoryStore(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()

	submit := usecase.NewOrderProcessingService(repo, mocksValidatorOK(t), nil, noopLogger{})
	if _, err := submit.ProcessNewOrder(ctx, validRequest("life-1")); err != nil {
		t.Fatal(err)
	}

	upd := usecase.NewOrderStatusUpdater(repo, nil, noopLogger{})
	reader := usecase.NewOrderStatusService(repo, nil, noopLogger{})

	steps := []struct {
		status  domain.OrderStatus
		wantErr error
	}{
		{domain.OrderStatusCompleted, domain.ErrInvalidTransition}, // RECEIVED -> COMPLETED запрещён
		{domain.OrderStatusAccepted, nil},
		{domain.OrderStatusAccepted, domain.ErrInvalidTransition}, // повтор события
		{domain.OrderStatusCompleted, nil},
		{domain.OrderStatusFailed, domain.ErrInvalidTransition}, // из терминального нельзя
	}
	for _, st := range steps {
		err := upd.ApplyStatus(ctx, domain.StatusEvent{OrderUID: "life-1", Status: st.status})
		if st.wantErr == nil && err != nil || st.wantErr != nil && !errors.Is(err, st.wantErr) {
			t.Fatalf("-> %s: want %v, got %v", st.status, st.wantErr, err)
		}
	}

	view, err := reader.GetOrderStatus(ctx, "life-1")
	if err != nil || view.Status != domain.OrderStatusCompleted {
		t.Fatalf("final status: %+v %v", view, err)
	}
}

func mocksValidatorOK(t *testing.T) *mocks.MockOrderValidator {
	v := mocks.NewMockOrderValidator(gomock.NewController(t))
	v.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return v
}
