package models

import "time"

// MonitorEvent is a single audit log entry.
type MonitorEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // STATION_OFFLINE | STATION_RECOVERED | ALL_CLEAR | CYCLE_ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

// AccountSummary is the per-account outcome of one polling cycle.
type AccountSummary struct {
	Account        string    `json:"account"`
	FetchFailed    bool      `json:"fetch_failed,omitempty"`
	OfflineCount   int       `json:"offline_count"`
	NewlyOffline   []Station `json:"newly_offline,omitempty"`
	Recovered      []Station `json:"recovered,omitempty"`
	FullyRecovered bool      `json:"fully_recovered,omitempty"`
}

// CycleSummary aggregates one full cycle across all configured accounts.
type CycleSummary struct {
	RanAt    time.Time        `json:"ran_at"`
	Accounts []AccountSummary `json:"accounts"`
}

// StillOffline lists the accounts that ended the cycle with at least
// one offline station, in cycle order.
func (s CycleSummary) StillOffline() []AccountSummary {
	var out []AccountSummary
	for _, a := range s.Accounts {
		if a.OfflineCount > 0 {
			out = append(out, a)
		}
	}
	return out
}
