package domain

import "fmt"

// DistanceTier assigns a flat fee for all distances up to a threshold,
// overriding linear per-mile pricing.
type DistanceTier struct {
	UpToMiles float64 `json:"up_to_miles"`
	Fee       float64 `json:"fee"`
}

// Zone carries its own base fee and per-mile rate for deliveries within
// its radius. Used by the zone-aware fee variant.
type Zone struct {
	Name        string  `json:"name"`
	RadiusMiles float64 `json:"radius_miles"`
	BaseFee     float64 `json:"base_fee"`
	PerMileRate float64 `json:"per_mile_rate"`
}

// PricingPolicy is a merchant-configured pricing snapshot. It is supplied
// by the caller per computation and never mutated by this service.
//
// FreeDeliveryThreshold is informational at this layer: the fee is always
// computed and returned, and waiving it against the order subtotal is the
// caller's decision.
type PricingPolicy struct {
	BaseFee               float64        `json:"base_fee"`
	PerMileRate           float64        `json:"per_mile_rate"`
	MinFee                float64        `json:"min_fee"`
	MaxFee                float64        `json:"max_fee"`
	FreeDeliveryThreshold float64        `json:"free_delivery_threshold"`
	SurgeActive           bool           `json:"surge_active"`
	SurgeMultiplier       float64        `json:"surge_multiplier"`
	DistanceTiers         []DistanceTier `json:"distance_tiers,omitempty"`
	Zones                 []Zone         `json:"zones,omitempty"`
}

// Validate rejects malformed policies at load time so the fee pipeline
// never has to defend against them.
func (p PricingPolicy) Validate() error {
	if p.BaseFee < 0 || p.PerMileRate < 0 || p.MinFee < 0 {
		return fmt.Errorf("%w: policy fees must be non-negative", ErrInvalidInput)
	}
	if p.MinFee > p.MaxFee {
		return fmt.Errorf("%w: min_fee %.2f exceeds max_fee %.2f", ErrInvalidInput, p.MinFee, p.MaxFee)
	}
	if p.SurgeActive && p.SurgeMultiplier < 1.0 {
		return fmt.Errorf("%w: surge_multiplier %v must be >= 1.0", ErrInvalidInput, p.SurgeMultiplier)
	}
	for i, tier := range p.DistanceTiers {
		if tier.UpToMiles <= 0 || tier.Fee < 0 {
			return fmt.Errorf("%w: distance tier %d is malformed", ErrInvalidInput, i)
		}
		if i > 0 && tier.UpToMiles <= p.DistanceTiers[i-1].UpToMiles {
			return fmt.Errorf("%w: distance tiers must be sorted ascending by up_to_miles", ErrInvalidInput)
		}
	}
	for i, zone := range p.Zones {
		if zone.RadiusMiles <= 0 || zone.BaseFee < 0 || zone.PerMileRate < 0 {
			return fmt.Errorf("%w: zone %d is malformed", ErrInvalidInput, i)
		}
	}
	return nil
}
