package model

import "encoding/json"

type RiskLabel string

const (
	RiskLow    RiskLabel = "LOW"
	RiskMedium RiskLabel = "MEDIUM"
	RiskHigh   RiskLabel = "HIGH"
)

type ConfidenceResult struct {
	ConfidenceScore int                 `json:"confidence_score"`
	RiskLabel       RiskLabel           `json:"risk_label"`
	Breakdown       ConfidenceBreakdown `json:"breakdown"`
}

// ConfidenceBreakdown holds the signals behind a score. Reason is only set on cold start.
type ConfidenceBreakdown struct {
	Reason                     string  `json:"reason,omitempty"`
	TotalBookings              int     `json:"total_bookings"`
	CancellationRate           float64 `json:"cancellation_rate"`
	HistoricalCancellationRate float64 `json:"historical_cancellation_rate"`
	OverbookingRate            float64 `json:"overbooking_rate"`
	RecentActivityRatio        float64 `json:"recent_activity_ratio"`
	AvgLeadTime                float64 `json:"avg_lead_time"`
	VolumeFactor               float64 `json:"volume_factor"`
}

// MarshalJSON writes a cold start breakdown as {"reason": ...} alone.
func (b ConfidenceBreakdown) MarshalJSON() ([]byte, error) {
	if b.Reason != "" {
		return json.Marshal(struct {
			Reason string `json:"reason"`
		}{b.Reason})
	}
	type breakdown ConfidenceBreakdown
	return json.Marshal(breakdown(b))
}
