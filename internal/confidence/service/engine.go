package service

import (
	"math"
	"roomledger/pkg/daterange"
	"roomledger/pkg/model"
	"time"
)

const (
	maxScore = 100

	NoHistoryReason = "No booking history"
)

// Evaluate scores a hotel from its full booking history and room inventory as
// of now. It has no side effects.
func Evaluate(bookings []*model.Booking, roomTypes []*model.RoomType, now time.Time, policy Policy) *model.ConfidenceResult {
	total := len(bookings)
	if total == 0 {
		return &model.ConfidenceResult{
			ConfidenceScore: 0,
			RiskLabel:       model.RiskHigh,
			Breakdown:       model.ConfidenceBreakdown{Reason: NoHistoryReason},
		}
	}

	var confirmed, cancelled []*model.Booking
	for _, b := range bookings {
		switch b.Status {
		case model.BookingStatusConfirmed:
			confirmed = append(confirmed, b)
		case model.BookingStatusCancelled:
			cancelled = append(cancelled, b)
		}
	}

	breakdown := model.ConfidenceBreakdown{
		TotalBookings:              total,
		CancellationRate:           ratio(len(cancelled), len(confirmed)),
		HistoricalCancellationRate: ratio(len(cancelled), len(confirmed)+len(cancelled)),
		OverbookingRate:            overbookingRate(confirmed, totalInventory(roomTypes)),
		RecentActivityRatio:        recentActivityRatio(bookings, now.Add(-policy.RecentWindow)),
	}
	avgLeadTime := averageLeadTimeDays(bookings)
	breakdown.AvgLeadTime = math.Round(avgLeadTime*100) / 100

	score := maxScore
	score -= deduction(policy.CancellationTiers, breakdown.CancellationRate)
	score -= deduction(policy.OverbookingTiers, breakdown.OverbookingRate)

	switch {
	case breakdown.RecentActivityRatio < policy.QuietActivityBelow:
		score -= policy.QuietActivityPenalty
	case breakdown.RecentActivityRatio > policy.BurstActivityAbove:
		score -= policy.BurstActivityPenalty
	}

	switch {
	case avgLeadTime < policy.ShortLeadBelowDays:
		score -= policy.ShortLeadPenalty
	case avgLeadTime > policy.LongLeadAboveDays:
		score += policy.LongLeadBonus
	}

	breakdown.VolumeFactor = math.Min(float64(total)/float64(max(policy.MinBookings, 1)), 1)
	final := int(math.Round(float64(score) * breakdown.VolumeFactor))
	final = max(0, min(final, maxScore))

	return &model.ConfidenceResult{
		ConfidenceScore: final,
		RiskLabel:       policy.label(final),
		Breakdown:       breakdown,
	}
}

func (p Policy) label(score int) model.RiskLabel {
	switch {
	case score < p.HighRiskBelow:
		return model.RiskHigh
	case score < p.MediumRiskBelow:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

func totalInventory(roomTypes []*model.RoomType) int {
	total := 0
	for _, rt := range roomTypes {
		total += rt.TotalRooms
	}
	return total
}

// overbookingRate is the share of check-in days whose confirmed check-ins
// exceed the whole hotel's inventory. Days are UTC calendar days.
func overbookingRate(confirmed []*model.Booking, inventory int) float64 {
	perDay := make(map[string]int)
	for _, b := range confirmed {
		perDay[daterange.DayKey(b.CheckInDate)]++
	}

	overbooked := 0
	for _, count := range perDay {
		if count > inventory {
			overbooked++
		}
	}
	return ratio(overbooked, len(perDay))
}

func recentActivityRatio(bookings []*model.Booking, since time.Time) float64 {
	recent := 0
	for _, b := range bookings {
		if !b.CreatedAt.Before(since) {
			recent++
		}
	}
	return ratio(recent, len(bookings))
}

// averageLeadTimeDays may be negative when stays precede their creation.
func averageLeadTimeDays(bookings []*model.Booking) float64 {
	var sum float64
	for _, b := range bookings {
		sum += float64(b.CheckInDate.Sub(b.CreatedAt)) / float64(daterange.Day)
	}
	return sum / float64(len(bookings))
}
