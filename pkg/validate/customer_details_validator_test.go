package validate_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gunvolt24/order_intake/internal/domain"
	"github.com/Gunvolt24/order_intake/pkg/validate"
)

func validCustomer() *domain.CustomerDetails {
	return &domain.CustomerDetails{
		Name:  "John Smith",
		Email: "john@example.com",
		Phone: "+1-202-555-0173",
	}
}

func TestCustomerDetailsValidator_Valid(t *testing.T) {
	v := validate.NewCustomerDetailsValidator()
	if err := v.Validate(context.Background(), validCustomer()); err != nil {
		t.Fatalf("expected valid customer, got: %v", err)
	}
}

func TestCustomerDetailsValidator_Rules(t *testing.T) {
	v := validate.NewCustomerDetailsValidator()
	ctx := context.Background()

	cases := []struct {
		name  string
		patch func(c *domain.CustomerDetails)
		field string
		msg   string
	}{
		{"empty name", func(c *domain.CustomerDetails) { c.Name = "" }, "customer.name", "Customer name cannot be null or empty"},
		{"not an email", func(c *domain.CustomerDetails) { c.Email = "not-an-email" }, "customer.email", "Invalid email provided: not-an-email"},
		{"empty email", func(c *domain.CustomerDetails) { c.Email = "" }, "customer.email", "Invalid email provided: "},
		{"email with display name", func(c *domain.CustomerDetails) { c.Email = "John <john@example.com>" }, "customer.email", "Invalid email provided"},
		{"empty phone", func(c *domain.CustomerDetails) { c.Phone = "" }, "customer.phone", "Phone number cannot be empty"},
		{"letters in phone", func(c *domain.CustomerDetails) { c.Phone = "abc" }, "customer.phone", "Invalid phone number provided: abc"},
		{"too short phone", func(c *domain.CustomerDetails) { c.Phone = "12345" }, "customer.phone", "Invalid phone number provided"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			c := validCustomer()
			tc.patch(c)

			err := v.Validate(ctx, c)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, domain.ErrInvalidOrder) {
				t.Fatalf("expected ErrInvalidOrder, got %v", err)
			}
			var ve *domain.ValidationError
			if !errors.As(err, &ve) || ve.Field != tc.field {
				t.Fatalf("expected field %q, got %+v", tc.field, ve)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("expected message containing %q, got %q", tc.msg, err.Error())
			}
		})
	}
}

// Ошибки возвращаются по порядку правил: имя, затем email, затем телефон.
func TestCustomerDetailsValidator_FailFastOrder(t *testing.T) {
	v := validate.NewCustomerDetailsValidator()
	err := v.Validate(context.Background(), &domain.CustomerDetails{Email: "bad", Phone: "abc"})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "customer.name" {
		t.Fatalf("expected name error first, got %v", err)
	}
}

func TestCustomerDetailsValidator_Phones(t *testing.T) {
	v := validate.NewCustomerDetailsValidator()
	ctx := context.Background()

	valid := []string{
		"+1-202-555-0173",
		"+44 20 7946 0958",
		"(202) 555-0173",
		"202.555.0173",
		"2025550173",
		"+7 (495) 123-45-67",
	}
	for _, p := range valid {
		c := validCustomer()
		c.Phone = p
		if err := v.Validate(ctx, c); err != nil {
			t.Fatalf("phone %q should be valid, got %v", p, err)
		}
	}

	invalid := []string{"abc", "+", "555-01", "phone: 2025550173", "+1-202-555-0173 ext"}
	for _, p := range invalid {
		c := validCustomer()
		c.Phone = p
		if err := v.Validate(ctx, c); err == nil {
			t.Fatalf("phone %q should be invalid", p)
		}
	}
}

func TestCustomerDetailsValidator_NilCustomer(t *testing.T) {
	v := validate.NewCustomerDetailsValidator()
	if err := v.Validate(context.Background(), nil); !errors.Is(err, domain.ErrInvalidOrder) {
		t.Fatalf("expected validation error for nil customer, got %v", err)
	}
}
