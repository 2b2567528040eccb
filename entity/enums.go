package entity

import (
	"fmt"

	migrate "github.com/dentalops/dispatch-migrate"
)

// Legacy Django stored statuses as small integers; the target schema uses
// text enums. The code values below match the choices tuples in the old
// dispatch models.

var orderStatusByCode = map[int]string{
	1: "pending",
	2: "submitted",
	3: "in_production",
	4: "shipped",
	5: "completed",
	6: "cancelled",
}

var caseStatusByCode = map[int]string{
	1: "created",
	2: "in_progress",
	3: "on_hold",
	4: "completed",
	5: "cancelled",
}

var paymentStatusByCode = map[int]string{
	1: "pending",
	2: "paid",
	3: "refunded",
	4: "failed",
}

// OrderStatus translates a legacy order status code.
func OrderStatus(code int) (string, error) {
	return statusFor(orderStatusByCode, "order", code)
}

// CaseStatus translates a legacy case or case-state status code.
func CaseStatus(code int) (string, error) {
	return statusFor(caseStatusByCode, "case", code)
}

// PaymentStatus translates a legacy payment status code.
func PaymentStatus(code int) (string, error) {
	return statusFor(paymentStatusByCode, "payment", code)
}

func statusFor(m map[int]string, kind string, code int) (string, error) {
	s, ok := m[code]
	if !ok {
		return "", fmt.Errorf("%w: %s status %d", migrate.ErrUnknownStatusCode, kind, code)
	}
	return s, nil
}

// profileRole derives the target role enum from auth_user flags.
func profileRole(isStaff bool) string {
	if isStaff {
		return "staff"
	}
	return "user"
}
