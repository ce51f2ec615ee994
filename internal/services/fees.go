package services

import (
	"math"

	"geo-pricing-service/internal/domain"
)

// ComputeFee maps a distance and a pricing policy to a delivery fee.
//
// Order matters: linear base + per-mile first, then a matching distance
// tier replaces the linear amount entirely, then surge multiplies, then
// the min/max clamp. Intermediate arithmetic keeps full float precision;
// round with RoundMoney only at the point of display.
//
// Negative distances are treated as zero, never as a discount. The
// policy's free-delivery threshold is not applied here: the fee is always
// computed, and waiving it against the order subtotal is the caller's
// decision.
func ComputeFee(distanceMiles float64, policy domain.PricingPolicy) float64 {
	fee := policy.BaseFee + math.Max(0, distanceMiles)*policy.PerMileRate

	if tier, ok := matchTier(policy.DistanceTiers, distanceMiles); ok {
		fee = tier.Fee
	}

	return finishFee(fee, policy)
}

// ComputeZoneFee is the zone-aware variant: the smallest zone whose radius
// covers the distance supplies the base fee and per-mile rate. Outside all
// zones the policy's own base and rate apply. Tiers do not participate;
// surge and clamping behave as in ComputeFee.
func ComputeZoneFee(distanceMiles float64, policy domain.PricingPolicy) float64 {
	d := math.Max(0, distanceMiles)

	baseFee := policy.BaseFee
	perMile := policy.PerMileRate

	best := -1.0
	for _, zone := range policy.Zones {
		if zone.RadiusMiles >= d && (best < 0 || zone.RadiusMiles < best) {
			best = zone.RadiusMiles
			baseFee = zone.BaseFee
			perMile = zone.PerMileRate
		}
	}

	return finishFee(baseFee+d*perMile, policy)
}

func finishFee(fee float64, policy domain.PricingPolicy) float64 {
	if policy.SurgeActive && policy.SurgeMultiplier > 1.0 {
		fee *= policy.SurgeMultiplier
	}

	return math.Max(policy.MinFee, math.Min(policy.MaxFee, fee))
}

// matchTier finds the tier with the smallest UpToMiles covering the
// distance. Tiers are pre-sorted ascending, so the first match wins.
// A distance beyond every tier keeps the linear amount.
func matchTier(tiers []domain.DistanceTier, distanceMiles float64) (domain.DistanceTier, bool) {
	for _, tier := range tiers {
		if tier.UpToMiles >= distanceMiles {
			return tier, true
		}
	}
	return domain.DistanceTier{}, false
}

// RoundMoney rounds to two decimal places for display.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
