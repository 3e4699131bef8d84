package models

// OfflineMarker is the literal value stored per station in the offline
// cache. Presence of a key with this value means "known offline";
// absence means "online or never seen offline". The two-state encoding
// is load-bearing: transition detection relies on absence-as-online.
const OfflineMarker = "offline"

// Station is one row of an account's roster for a single polling cycle.
type Station struct {
	ID     string `json:"station_id"`
	Name   string `json:"name"`
	Online bool   `json:"online"`
}

// OfflineCache maps station ID -> OfflineMarker. It is the sole
// persisted availability state per account.
type OfflineCache map[string]string

// MarkedOffline reports whether the cache records the station as offline.
func (c OfflineCache) MarkedOffline(stationID string) bool {
	return c[stationID] == OfflineMarker
}

// TransitionDelta describes what changed between two consecutive cycles.
type TransitionDelta struct {
	NewlyOffline   []Station `json:"newly_offline,omitempty"`
	Recovered      []Station `json:"recovered,omitempty"`
	FullyRecovered bool      `json:"fully_recovered"`
}

// Empty reports whether the cycle produced no transitions. An empty
// delta means the persisted cache needs no write-back.
func (d TransitionDelta) Empty() bool {
	return len(d.NewlyOffline) == 0 && len(d.Recovered) == 0
}
