package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Gunvolt24/order_intake/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapErr_UniqueViolation(t *testing.T) {
	err := mapErr("insert order", fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"}))
	if !errors.Is(err, domain.ErrUniqueViolation) {
		t.Fatalf("23505 must map to ErrUniqueViolation, got %v", err)
	}
}

func TestMapErr_Timeouts(t *testing.T) {
	for name, src := range map[string]error{
		"deadline":          context.DeadlineExceeded,
		"statement_timeout": &pgconn.PgError{Code: "57014"},
	} {
		if err := mapErr("select", src); !errors.Is(err, domain.ErrTimeout) {
			t.Fatalf("%s: want ErrTimeout, got %v", name, err)
		}
	}
}

func TestMapErr_OtherErrorsPassThrough(t *testing.T) {
	src := &pgconn.PgError{Code: "23503"}
	err := mapErr("insert item", src)
	if errors.Is(err, domain.ErrUniqueViolation) || errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("foreign key violation must not be classified: %v", err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23503" {
		t.Fatalf("original error must stay in chain: %v", err)
	}
}

func TestStatusStringsAndMillis(t *testing.T) {
	got := statusStrings([]domain.OrderStatus{domain.OrderStatusReceived, domain.OrderStatusAccepted})
	if len(got) != 2 || got[0] != "RECEIVED" || got[1] != "ACCEPTED" {
		t.Fatalf("unexpected %v", got)
	}
	if s := durationMillis(1500 * time.Millisecond); s != "1500" {
		t.Fatalf("want 1500, got %s", s)
	}
}
