package model

import "fmt"

// PaymentMethod is the closed set of tender types the engine accepts.
// Free strings never cross the service boundary — parse at the edge.
type PaymentMethod string

const (
	MethodCash            PaymentMethod = "CASH"
	MethodTransfer        PaymentMethod = "TRANSFER"
	MethodMobilePayment   PaymentMethod = "MOBILE_PAYMENT"
	MethodForeignCurrency PaymentMethod = "FOREIGN_CURRENCY"
	MethodStoreCredit     PaymentMethod = "STORE_CREDIT"
)

// ParsePaymentMethod validates a wire string against the closed enumeration.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case MethodCash, MethodTransfer, MethodMobilePayment, MethodForeignCurrency, MethodStoreCredit:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// IsCredit reports whether the tender creates customer debt instead of cash.
func (m PaymentMethod) IsCredit() bool { return m == MethodStoreCredit }

func (m PaymentMethod) String() string { return string(m) }
