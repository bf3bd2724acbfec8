package service

import (
	"ventapos/internal/dto"
	"ventapos/internal/model"

	"github.com/shopspring/decimal"
)

// Allocation is the outcome of splitting a tender list against a sale total:
// the store-credit portion (debt), the real-money portion (cash movements),
// and the normalized tenders to persist.
type Allocation struct {
	Credit  decimal.Decimal
	Paid    decimal.Decimal
	Balance decimal.Decimal
	Tenders []model.Tender
}

// AllocateTenders validates and partitions the requested tenders.
// Every amount is rounded to two decimals before summation — that rounding is
// the only currency tolerance applied. The caller charges Credit against the
// customer's account and emits one INGRESO movement per real-money tender.
func AllocateTenders(total decimal.Decimal, reqs []dto.TenderRequest) (*Allocation, error) {
	alloc := &Allocation{
		Credit:  decimal.Zero,
		Paid:    decimal.Zero,
		Tenders: make([]model.Tender, 0, len(reqs)),
	}

	for _, t := range reqs {
		method, err := model.ParsePaymentMethod(t.Method)
		if err != nil {
			return nil, err
		}
		amount := t.Amount.Round(2)
		if !amount.IsPositive() {
			return nil, ErrInvalidTenderAmount
		}
		if method.IsCredit() {
			alloc.Credit = alloc.Credit.Add(amount)
		} else {
			alloc.Paid = alloc.Paid.Add(amount)
		}
		alloc.Tenders = append(alloc.Tenders, model.Tender{
			Method:    method,
			Amount:    amount,
			Reference: t.Reference,
		})
	}

	if alloc.Credit.Add(alloc.Paid).GreaterThan(total) {
		return nil, &PaymentExceedsTotalError{
			Tendered: alloc.Credit.Add(alloc.Paid),
			Total:    total,
		}
	}

	alloc.Balance = total.Sub(alloc.Paid)
	return alloc, nil
}

// DeriveStatus is the single authoritative status rule for sale creation:
//
//	credit | paid vs total | status
//	  0    | paid == total | PAID
//	  0    | paid <  total | PENDING
//	 > 0   | any           | CREDIT
//
// Every path that creates or re-derives a sale status must go through here.
func DeriveStatus(credit, paid, total decimal.Decimal) string {
	if credit.IsPositive() {
		return model.SaleStatusCredit
	}
	if paid.Equal(total) {
		return model.SaleStatusPaid
	}
	return model.SaleStatusPending
}
