package models

// Account identifies one owning account: its roster/device API key and
// the chat user IDs mentioned in offline alerts. Accounts are plain
// configuration data injected into the services, never a process-wide
// singleton.
type Account struct {
	Name         string   `json:"name" mapstructure:"name"`
	APIKey       string   `json:"-" mapstructure:"api_key"`
	AlertUserIDs []string `json:"alert_user_ids,omitempty" mapstructure:"alert_user_ids"`
}

// CacheKey returns the per-account object key holding the offline cache.
func (a Account) CacheKey() string {
	return a.Name + "_stationOfflineCache.json"
}
