package tycoon

import "github.com/shopspring/decimal"

// Accepts reports whether the customer takes the bill rate: inclusive on both
// ends of [MinBudget, MaxBudget].
func (c Customer) Accepts(billRate decimal.Decimal) bool {
	return billRate.GreaterThanOrEqual(Rate(c.MinBudget)) &&
		billRate.LessThanOrEqual(Rate(c.MaxBudget))
}

// Accepts reports whether the worker takes the pay rate. MaxPay is not
// consulted.
func (w Worker) Accepts(payRate decimal.Decimal) bool {
	return payRate.GreaterThanOrEqual(Rate(w.MinPay))
}

// CustomerAccepts is the function form of Customer.Accepts.
func CustomerAccepts(c Customer, billRate decimal.Decimal) bool {
	return c.Accepts(billRate)
}

// WorkerAccepts is the function form of Worker.Accepts.
func WorkerAccepts(w Worker, payRate decimal.Decimal) bool {
	return w.Accepts(payRate)
}

// AcceptingWorkers returns the workers that take payRate, in original order.
func AcceptingWorkers(workers []Worker, payRate decimal.Decimal) []Worker {
	accepted := make([]Worker, 0, len(workers))
	for _, w := range workers {
		if w.Accepts(payRate) {
			accepted = append(accepted, w)
		}
	}
	return accepted
}
