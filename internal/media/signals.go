package media

// Signals holds the six possible rating slots for an item. Each slot is
// either a value on its native scale or nil when the source had nothing.
//
// Scales: Scraped, NumericAPI, and UserScore10 are 0-10; CriticPercent,
// AudiencePercent, and CriticPercent2 are 0-100.
type Signals struct {
	Scraped         *float64 `json:"scraped,omitempty"`
	NumericAPI      *float64 `json:"numeric_api,omitempty"`
	CriticPercent   *float64 `json:"critic_percent,omitempty"`
	AudiencePercent *float64 `json:"audience_percent,omitempty"`
	CriticPercent2  *float64 `json:"critic_percent2,omitempty"`
	UserScore10     *float64 `json:"user_score_10,omitempty"`
}

// Slots returns the signal values in their canonical order.
func (s Signals) Slots() []*float64 {
	return []*float64{
		s.Scraped,
		s.NumericAPI,
		s.CriticPercent,
		s.AudiencePercent,
		s.CriticPercent2,
		s.UserScore10,
	}
}
