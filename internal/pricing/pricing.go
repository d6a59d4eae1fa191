// Package pricing implements the tiered price rule for custom video orders.
package pricing

// Price tiers in whole dollars
const (
	BasePrice    int64 = 5
	TierPrice    int64 = 7
	PremiumPrice int64 = 10
)

// Compute maps duration and reference-image count to a price.
//
// The two axes are evaluated independently and combined by maximum:
// more than 2 images or a duration over 20 seconds each lift the price
// to at least 7. A duration over 30 seconds forces 10 outright,
// regardless of the image count.
func Compute(durationSeconds, imageCount int) int64 {
	price := BasePrice

	if imageCount > 2 {
		price = TierPrice
	}
	if durationSeconds > 20 && price < TierPrice {
		price = TierPrice
	}
	if durationSeconds > 30 {
		price = PremiumPrice
	}

	return price
}
