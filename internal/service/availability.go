package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"stationwatch/internal/logger"
	"stationwatch/internal/models"
	"stationwatch/internal/notify"
	"stationwatch/internal/repository"
	"stationwatch/internal/tracker"
)

// Audit event types written by the availability cycle.
const (
	EventStationOffline   = "STATION_OFFLINE"
	EventStationRecovered = "STATION_RECOVERED"
	EventAllClear         = "ALL_CLEAR"
	EventCycleError       = "CYCLE_ERROR"
)

// ErrAllSourcesFailed is returned when every configured account's
// roster fetch failed in one cycle. A single account failing is a soft
// per-account condition; all of them failing is operational.
var ErrAllSourcesFailed = errors.New("roster fetch failed for every account")

// AvailabilityService runs the per-account transition cycle: fetch
// roster, diff against the persisted offline cache, write back when
// something changed, dispatch notifications, record audit events.
type AvailabilityService struct {
	accounts []models.Account
	roster   RosterSource
	cache    repository.CacheStore
	events   repository.EventRepo
	notifier notify.Notifier
	log      *logger.Logger

	mu   sync.Mutex
	last *models.CycleSummary
}

func NewAvailabilityService(
	accounts []models.Account,
	roster RosterSource,
	cache repository.CacheStore,
	events repository.EventRepo,
	notifier notify.Notifier,
	log *logger.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		accounts: accounts,
		roster:   roster,
		cache:    cache,
		events:   events,
		notifier: notifier,
		log:      log,
	}
}

// RunCycle processes every configured account. Account failures are
// isolated: one account's fetch error never aborts the others. The
// returned error is non-nil only when every account's fetch failed.
func (s *AvailabilityService) RunCycle(ctx context.Context) (models.CycleSummary, error) {
	summary := models.CycleSummary{RanAt: time.Now().UTC()}

	fetchFailures := 0
	for _, acct := range s.accounts {
		as := s.processAccount(ctx, acct)
		if as.FetchFailed {
			fetchFailures++
		}
		summary.Accounts = append(summary.Accounts, as)
	}

	s.setLast(summary)
	s.logAggregate(summary)

	if len(s.accounts) > 0 && fetchFailures == len(s.accounts) {
		return summary, ErrAllSourcesFailed
	}
	return summary, nil
}

// LastSummary returns the most recent cycle summary, if any cycle ran.
func (s *AvailabilityService) LastSummary() (models.CycleSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return models.CycleSummary{}, false
	}
	return *s.last, true
}

func (s *AvailabilityService) setLast(sum models.CycleSummary) {
	s.mu.Lock()
	s.last = &sum
	s.mu.Unlock()
}

func (s *AvailabilityService) logAggregate(sum models.CycleSummary) {
	still := sum.StillOffline()
	if len(still) == 0 {
		s.log.Infow("all stations online for all accounts")
		return
	}
	for _, a := range still {
		s.log.Warnw("stations still offline", "account", a.Account, "count", a.OfflineCount)
	}
}

func (s *AvailabilityService) processAccount(ctx context.Context, acct models.Account) models.AccountSummary {
	out := models.AccountSummary{Account: acct.Name}

	stations, err := s.roster.FetchStations(ctx, acct.APIKey)
	if err != nil {
		// Soft failure: zero-offline for this cycle, cycle continues
		// for other accounts.
		s.log.Warnw("roster fetch failed", "account", acct.Name, "err", err)
		s.appendEvent(ctx, models.MonitorEvent{
			Type:        EventCycleError,
			Description: "roster fetch failed for " + acct.Name,
			Metadata:    map[string]any{"account": acct.Name, "error": err.Error()},
		})
		out.FetchFailed = true
		return out
	}

	previous := s.loadCache(ctx, acct)
	delta, next := tracker.ComputeTransition(stations, previous)

	// Write-after-compute: only a non-empty delta can have changed the
	// cache. The write is attempted before notifications go out, but a
	// failed write must not suppress already-computed alerts; a
	// duplicate alert next cycle beats a silent outage.
	if !delta.Empty() {
		if err := s.saveCache(ctx, acct, next); err != nil {
			s.log.Errorw("offline cache write failed", "account", acct.Name, "err", err)
		}
	}

	s.dispatch(ctx, acct, delta)

	out.OfflineCount = len(next)
	out.NewlyOffline = delta.NewlyOffline
	out.Recovered = delta.Recovered
	out.FullyRecovered = delta.FullyRecovered
	return out
}

// loadCache reads and decodes the account's offline cache. A missing
// object is the normal empty state; a malformed one degrades to empty
// with a warning rather than aborting the cycle.
func (s *AvailabilityService) loadCache(ctx context.Context, acct models.Account) models.OfflineCache {
	body, err := s.cache.Get(ctx, acct.CacheKey())
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warnw("offline cache read failed, treating as empty", "account", acct.Name, "err", err)
		}
		return models.OfflineCache{}
	}

	var cache models.OfflineCache
	if err := json.Unmarshal(body, &cache); err != nil {
		s.log.Warnw("offline cache malformed, treating as empty", "account", acct.Name, "err", err)
		return models.OfflineCache{}
	}
	if cache == nil {
		cache = models.OfflineCache{}
	}
	return cache
}

func (s *AvailabilityService) saveCache(ctx context.Context, acct models.Account, cache models.OfflineCache) error {
	body, err := json.Marshal(cache)
	if err != nil {
		return err
	}
	return s.cache.Put(ctx, acct.CacheKey(), body)
}

// dispatch sends the cycle's notifications in order: offline alerts,
// recovery alerts, then the aggregate all-clear. A failed post is
// logged and never blocks the remaining sends.
func (s *AvailabilityService) dispatch(ctx context.Context, acct models.Account, delta models.TransitionDelta) {
	for _, st := range delta.NewlyOffline {
		s.post(ctx, acct, notify.OfflineAlert(acct, st))
		s.appendEvent(ctx, models.MonitorEvent{
			Type:        EventStationOffline,
			Description: acct.Name + " station " + st.ID + " (" + st.Name + ") went offline",
			Metadata:    map[string]any{"account": acct.Name, "station_id": st.ID},
		})
	}
	for _, st := range delta.Recovered {
		s.post(ctx, acct, notify.RecoveryAlert(acct.Name, st))
		s.appendEvent(ctx, models.MonitorEvent{
			Type:        EventStationRecovered,
			Description: acct.Name + " station " + st.ID + " (" + st.Name + ") recovered",
			Metadata:    map[string]any{"account": acct.Name, "station_id": st.ID},
		})
	}
	if delta.FullyRecovered {
		s.post(ctx, acct, notify.AllClearAlert(acct.Name))
		s.appendEvent(ctx, models.MonitorEvent{
			Type:        EventAllClear,
			Description: "all " + acct.Name + " stations online",
			Metadata:    map[string]any{"account": acct.Name},
		})
	}
}

func (s *AvailabilityService) post(ctx context.Context, acct models.Account, text string) {
	if err := s.notifier.Post(ctx, text); err != nil {
		s.log.Errorw("notification failed", "account", acct.Name, "err", err)
	}
}

func (s *AvailabilityService) appendEvent(ctx context.Context, e models.MonitorEvent) {
	if err := s.events.Append(ctx, e); err != nil {
		s.log.Errorw("audit event append failed", "type", e.Type, "err", err)
	}
}
