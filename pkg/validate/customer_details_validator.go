package validate

import (
	"context"
	"net/mail"
	"regexp"

	"github.com/Gunvolt24/order_intake/internal/domain"
)

// phonePattern — допускает "+", код страны 1–3 цифры, код зоны (в скобках или без)
// и 7–10 цифр, разделённых пробелом, точкой или дефисом.
var phonePattern = regexp.MustCompile(`^\+?(\d{1,3})?[-.\s]?(\(?\d{3}\)?[-.\s]?)?(\d[-.\s]?){6,9}\d$`)

var _ Validator[*domain.CustomerDetails] = (*CustomerDetailsValidator)(nil)

// CustomerDetailsValidator — проверяет имя, email и телефон клиента (в таком порядке).
type CustomerDetailsValidator struct{}

// NewCustomerDetailsValidator — конструктор.
func NewCustomerDetailsValidator() *CustomerDetailsValidator { return &CustomerDetailsValidator{} }

// Validate — первая найденная ошибка или nil.
func (v *CustomerDetailsValidator) Validate(_ context.Context, c *domain.CustomerDetails) error {
	if c == nil {
		return domain.NewValidationError("customer", "", "Customer details are required")
	}
	if err := validateName(c.Name); err != nil {
		return err
	}
	if err := validateEmail(c.Email); err != nil {
		return err
	}
	return validatePhone(c.Phone)
}

func validateName(name string) error {
	if name == "" {
		return domain.NewValidationError("customer.name", name, "Customer name cannot be null or empty")
	}
	return nil
}

// validateEmail — принимает только addr-spec (local@domain), без display name.
func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return domain.NewValidationError("customer.email", email, "Invalid email provided: "+email)
	}
	return nil
}

func validatePhone(phone string) error {
	if phone == "" {
		return domain.NewValidationError("customer.phone", phone, "Phone number cannot be empty")
	}
	if !phonePattern.MatchString(phone) {
		return domain.NewValidationError("customer.phone", phone, "Invalid phone number provided: "+phone)
	}
	return nil
}
