package tycoon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/jobstack/tycoon"
)

func TestGenerateCustomer_ClassicDrawOrder(t *testing.T) {
	// GIVEN: offsets for workers, days, min budget, max budget
	f := tycoon.NewEntityFactory(tycoon.ClassicProfile(), script(4, 2, 0, 9))

	// WHEN
	c := f.GenerateCustomer()

	// THEN: each field is its range minimum plus the offset
	assert.Equal(t, 5, c.WorkersNeeded)
	assert.Equal(t, 3, c.DaysNeeded)
	assert.Equal(t, 10, c.MinBudget)
	assert.Equal(t, 25, c.MaxBudget)
	assert.False(t, c.HasDisplayedBudget(), "classic customers carry no hint")
	assert.True(t, c.Position.IsZero(), "classic profile has no catalog")
}

func TestGenerateCustomer_MarketplaceHintAndPosition(t *testing.T) {
	f := tycoon.NewEntityFactory(tycoon.MarketplaceProfile(), script(0, 0, 7, 14, 22, 2))

	c := f.GenerateCustomer()

	assert.Equal(t, 1, c.WorkersNeeded)
	assert.Equal(t, 1, c.DaysNeeded)
	assert.Equal(t, 15, c.MinBudget)
	assert.Equal(t, 30, c.MaxBudget)
	assert.Equal(t, 30, c.DisplayedBudget)
	// Welder, Electrician Helper and General Laborer all fit [15,30].
	assert.Equal(t, "General Laborer", c.Position.Name)
}

func TestGenerateWorkers_MaxPayStartsAtMinPay(t *testing.T) {
	f := tycoon.NewEntityFactory(tycoon.ClassicProfile(), script(6, 0, 1, 100))

	ws := f.GenerateWorkers(2)

	require.Len(t, ws, 2)
	assert.Equal(t, tycoon.Worker{MinPay: 14, MaxPay: 14}, ws[0])
	assert.Equal(t, tycoon.Worker{MinPay: 9, MaxPay: 50}, ws[1])
}

func TestGenerateWorkers_ZeroCount(t *testing.T) {
	f := tycoon.NewEntityFactory(tycoon.ClassicProfile(), script())

	ws := f.GenerateWorkers(0)

	assert.NotNil(t, ws)
	assert.Empty(t, ws)
}

func TestGeneratedEntities_StayInRange(t *testing.T) {
	for _, p := range []tycoon.Profile{tycoon.ClassicProfile(), tycoon.MarketplaceProfile()} {
		t.Run(p.Name, func(t *testing.T) {
			f := tycoon.NewEntityFactory(p, tycoon.NewSource(7))
			for i := 0; i < 500; i++ {
				c := f.GenerateCustomer()
				assert.True(t, p.WorkersNeeded.Contains(c.WorkersNeeded))
				assert.True(t, p.DaysNeeded.Contains(c.DaysNeeded))
				assert.True(t, p.MinBudget.Contains(c.MinBudget))
				assert.True(t, p.MaxBudget.Contains(c.MaxBudget))
				assert.Less(t, c.MinBudget, c.MaxBudget)
				if p.ShowDisplayedBudget {
					assert.GreaterOrEqual(t, c.DisplayedBudget, c.MinBudget)
					assert.LessOrEqual(t, c.DisplayedBudget, c.MaxBudget)
				}

				for _, w := range f.GenerateWorkers(c.WorkersNeeded) {
					assert.True(t, p.MinPay.Contains(w.MinPay))
					assert.LessOrEqual(t, w.MinPay, w.MaxPay)
					assert.LessOrEqual(t, w.MaxPay, p.MaxPayCeiling)
				}
			}
		})
	}
}

func TestNewSource_SameSeedSameGame(t *testing.T) {
	a := tycoon.NewEntityFactory(tycoon.MarketplaceProfile(), tycoon.NewSource(99))
	b := tycoon.NewEntityFactory(tycoon.MarketplaceProfile(), tycoon.NewSource(99))

	for i := 0; i < 10; i++ {
		ca, cb := a.GenerateCustomer(), b.GenerateCustomer()
		require.Equal(t, ca, cb)
		require.Equal(t, a.GenerateWorkers(ca.WorkersNeeded), b.GenerateWorkers(cb.WorkersNeeded))
	}
}

func TestProfileValidate(t *testing.T) {
	assert.NoError(t, tycoon.ClassicProfile().Validate())
	assert.NoError(t, tycoon.MarketplaceProfile().Validate())

	overlapping := tycoon.ClassicProfile()
	overlapping.MaxBudget = tycoon.Span(15, 25)
	assert.ErrorIs(t, overlapping.Validate(), tycoon.ErrInvalidProfile)

	inverted := tycoon.ClassicProfile()
	inverted.DaysNeeded = tycoon.Span(14, 1)
	assert.ErrorIs(t, inverted.Validate(), tycoon.ErrInvalidProfile)

	lowCeiling := tycoon.ClassicProfile()
	lowCeiling.MaxPayCeiling = 10
	assert.ErrorIs(t, lowCeiling.Validate(), tycoon.ErrInvalidProfile)

	badSlider := tycoon.MarketplaceProfile()
	badSlider.Offer.BillRate.Default = tycoon.Rate(40)
	assert.ErrorIs(t, badSlider.Validate(), tycoon.ErrInvalidProfile)
}

func TestOfferLimitsCheck(t *testing.T) {
	limits := tycoon.MarketplaceProfile().Offer

	assert.NoError(t, limits.Check(tycoon.Rate(10), tycoon.Rate(30)))

	err := limits.Check(tycoon.Rate(9), tycoon.Rate(15))
	var offerErr *tycoon.OfferError
	require.ErrorAs(t, err, &offerErr)
	assert.Equal(t, "bill_rate", offerErr.Field)
	assert.True(t, tycoon.IsClientError(err))

	err = limits.Check(tycoon.Rate(15), dec("30.01"))
	require.ErrorAs(t, err, &offerErr)
	assert.Equal(t, "pay_rate", offerErr.Field)

	assert.NoError(t, tycoon.ClassicProfile().Offer.Check(dec("-5"), dec("1000")), "classic offers are unbounded")
}
