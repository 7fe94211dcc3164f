package service

import (
	"roomledger/pkg/config"
	"time"
)

// Tier deducts Points when a rate is strictly greater than Above.
type Tier struct {
	Above  float64
	Points int
}

// Policy holds every tunable of the confidence score. Tier lists are ordered
// from the highest threshold down and only the first matching tier applies.
type Policy struct {
	CancellationTiers []Tier
	OverbookingTiers  []Tier

	RecentWindow         time.Duration
	QuietActivityBelow   float64
	QuietActivityPenalty int
	BurstActivityAbove   float64
	BurstActivityPenalty int

	ShortLeadBelowDays float64
	ShortLeadPenalty   int
	LongLeadAboveDays  float64
	LongLeadBonus      int

	// MinBookings is the history size at which the score is no longer dampened.
	MinBookings int

	HighRiskBelow   int
	MediumRiskBelow int
}

func DefaultPolicy() Policy {
	return Policy{
		CancellationTiers: []Tier{
			{Above: 0.4, Points: 35},
			{Above: 0.2, Points: 25},
			{Above: 0.1, Points: 15},
		},
		OverbookingTiers: []Tier{
			{Above: 0.2, Points: 30},
			{Above: 0.1, Points: 20},
			{Above: 0, Points: 10},
		},

		RecentWindow:         config.DefaultConfidenceWindow,
		QuietActivityBelow:   0.1,
		QuietActivityPenalty: 15,
		BurstActivityAbove:   0.7,
		BurstActivityPenalty: 5,

		ShortLeadBelowDays: 2,
		ShortLeadPenalty:   10,
		LongLeadAboveDays:  10,
		LongLeadBonus:      5,

		MinBookings: config.DefaultConfidenceMinBooking,

		HighRiskBelow:   50,
		MediumRiskBelow: 80,
	}
}

// PolicyFromConfig applies the configurable parts of cfg on top of DefaultPolicy.
func PolicyFromConfig(cfg *config.Config) Policy {
	p := DefaultPolicy()
	if cfg.ConfidenceMinBookings > 0 {
		p.MinBookings = cfg.ConfidenceMinBookings
	}
	if cfg.ConfidenceRecentWindow > 0 {
		p.RecentWindow = cfg.ConfidenceRecentWindow
	}
	return p
}

func deduction(tiers []Tier, rate float64) int {
	for _, t := range tiers {
		if rate > t.Above {
			return t.Points
		}
	}
	return 0
}
