package tycoon_test

import (
	"github.com/shopspring/decimal"

	"github.com/warp/jobstack/tycoon"
)

// scriptedSource replays fixed offsets. Offsets past n-1 are clamped and an
// exhausted script yields 0.
type scriptedSource struct {
	draws []int
	next  int
}

func script(draws ...int) *scriptedSource {
	return &scriptedSource{draws: draws}
}

func (s *scriptedSource) IntN(n int) int {
	if s.next >= len(s.draws) {
		return 0
	}
	v := s.draws[s.next]
	s.next++
	if v >= n {
		v = n - 1
	}
	return v
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func workersWithMinPay(pays ...int) []tycoon.Worker {
	ws := make([]tycoon.Worker, len(pays))
	for i, p := range pays {
		ws[i] = tycoon.Worker{MinPay: p, MaxPay: 50}
	}
	return ws
}

// referenceCustomer is the worked example: budget [10,20], five days.
func referenceCustomer() tycoon.Customer {
	return tycoon.Customer{WorkersNeeded: 3, DaysNeeded: 5, MinBudget: 10, MaxBudget: 20}
}

func assertMoney(t assertT, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	if !dec(want).Equal(got) {
		t.Errorf("expected %s, got %s %v", want, got.String(), msgAndArgs)
	}
}

type assertT interface {
	Helper()
	Errorf(format string, args ...any)
}
