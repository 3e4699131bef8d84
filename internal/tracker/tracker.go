// Package tracker computes online/offline transitions between two
// consecutive polling cycles. The only persisted state per account is
// the offline cache; the delta against the previous snapshot is what
// recovers "just went offline" vs "still offline", each cycle.
package tracker

import "stationwatch/internal/models"

// ComputeTransition diffs the current roster against the previously
// persisted cache and returns the delta plus the cache to persist.
//
// Rules, per station in roster order:
//   - offline and not previously marked: newly-offline, marked in the
//     new cache;
//   - offline and already marked: stays marked, no event;
//   - online and previously marked: recovered, entry removed;
//   - online and unmarked: untouched.
//
// FullyRecovered is set when a non-empty previous cache drained to
// empty this cycle. The previous cache is never mutated. Calling again
// with the same roster and the returned cache yields an empty delta.
func ComputeTransition(roster []models.Station, previous models.OfflineCache) (models.TransitionDelta, models.OfflineCache) {
	next := make(models.OfflineCache, len(previous))
	for id, v := range previous {
		next[id] = v
	}

	var delta models.TransitionDelta
	for _, st := range roster {
		if !st.Online {
			if !previous.MarkedOffline(st.ID) {
				delta.NewlyOffline = append(delta.NewlyOffline, st)
			}
			next[st.ID] = models.OfflineMarker
			continue
		}
		if previous.MarkedOffline(st.ID) {
			delta.Recovered = append(delta.Recovered, st)
			delete(next, st.ID)
		}
	}

	delta.FullyRecovered = len(previous) > 0 && len(next) == 0
	return delta, next
}
