package reservation

// RoomRate carries the pricing inputs of a room at booking time.
type RoomRate struct {
	BaseRateCents     int64
	OverrideRateCents *int64
}

func (r RoomRate) NightlyCents() int64 {
	if r.OverrideRateCents != nil {
		return *r.OverrideRateCents
	}
	return r.BaseRateCents
}

type PriceCalculator interface {
	CalculateTotalCents(rate RoomRate, stay StayPeriod) int64
}

// NightlyPriceCalculator prices a stay as nights x nightly rate. Rates are
// fixed-point cents and nights an integer, so there is no rounding involved.
type NightlyPriceCalculator struct{}

func NewNightlyPriceCalculator() *NightlyPriceCalculator {
	return &NightlyPriceCalculator{}
}

func (c *NightlyPriceCalculator) CalculateTotalCents(rate RoomRate, stay StayPeriod) int64 {
	return int64(stay.Nights()) * rate.NightlyCents()
}
