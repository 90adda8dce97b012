package tycoon

// EntityFactory draws customers and workers from a Profile. Every field is an
// independent uniform draw over an inclusive range.
//
// EntityFactory is not safe for concurrent use; callers sharing one across
// goroutines must serialize access.
type EntityFactory struct {
	profile Profile
	src     Source
}

// NewEntityFactory creates a factory for the given profile and source.
func NewEntityFactory(profile Profile, src Source) *EntityFactory {
	return &EntityFactory{profile: profile, src: src}
}

// Profile returns the profile this factory samples from.
func (f *EntityFactory) Profile() Profile {
	return f.profile
}

// GenerateCustomer draws one customer. Draw order: workers, days, min budget,
// max budget, displayed budget (if enabled), position (if any fit).
func (f *EntityFactory) GenerateCustomer() Customer {
	p := f.profile
	c := Customer{
		WorkersNeeded: p.WorkersNeeded.Sample(f.src),
		DaysNeeded:    p.DaysNeeded.Sample(f.src),
		MinBudget:     p.MinBudget.Sample(f.src),
		MaxBudget:     p.MaxBudget.Sample(f.src),
	}
	if p.ShowDisplayedBudget {
		c.DisplayedBudget = Span(c.MinBudget, c.MaxBudget).Sample(f.src)
	}
	c.Position = f.pickPosition(c.MinBudget, c.MaxBudget)
	return c
}

// GenerateWorkers draws count independent workers. count <= 0 yields an
// empty slice.
func (f *EntityFactory) GenerateWorkers(count int) []Worker {
	if count <= 0 {
		return []Worker{}
	}
	workers := make([]Worker, count)
	for i := range workers {
		minPay := f.profile.MinPay.Sample(f.src)
		workers[i] = Worker{
			MinPay: minPay,
			MaxPay: Span(minPay, f.profile.MaxPayCeiling).Sample(f.src),
		}
	}
	return workers
}

func (f *EntityFactory) pickPosition(minBudget, maxBudget int) Position {
	var fits []Position
	for _, pos := range f.profile.Positions {
		if pos.Fits(minBudget, maxBudget) {
			fits = append(fits, pos)
		}
	}
	if len(fits) == 0 {
		return Position{}
	}
	return fits[f.src.IntN(len(fits))]
}
