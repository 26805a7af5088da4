package allocation

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

// Suggest ranks the candidate pool and proposes exactly one officer as the
// default selection, or nil when the pool is empty. Ranking is by workload
// tier, then oldest last assignment (officers who have gone longest without
// a new case are preferred), then officer id, so identical inputs always
// produce the same suggestion. The suggestion is advisory only; the
// operator may assign any other eligible officer.
func Suggest(candidates []OfficerCandidate) *OfficerCandidate {
	pool := make([]OfficerCandidate, 0, len(candidates))
	for _, c := range candidates {
		// pool resolution already excludes these, re-checked here since
		// callers may hand us a hand-built list
		if c.Officer.Details.AvailabilityStatus == models.OfficerUnavailable {
			continue
		}
		pool = append(pool, c)
	}
	if len(pool) == 0 {
		return nil
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Workload != pool[j].Workload {
			return pool[i].Workload < pool[j].Workload
		}
		if pool[i].Officer.Details.LastAssignment != pool[j].Officer.Details.LastAssignment {
			return pool[i].Officer.Details.LastAssignment < pool[j].Officer.Details.LastAssignment
		}
		return pool[i].Officer.ID < pool[j].Officer.ID
	})

	best := pool[0]
	return &best
}

// SuggestionSource is an optional external suggestion provider (an AI
// service in the portal). It is a pure enhancement: when it fails or is
// absent, the deterministic in-process ranking stands.
type SuggestionSource interface {
	Suggest(ctx context.Context, candidates []OfficerCandidate) (*OfficerCandidate, error)
}

// SuggestionEngine combines the deterministic ranking with an optional
// external source consulted through the retry policy
type SuggestionEngine struct {
	Source SuggestionSource
	Retry  RetryPolicy
}

// Suggest returns the default selection for the candidate pool. An external
// source, when configured, is consulted first with bounded retries; its
// answer is only honored if it names an eligible officer from the pool.
func (e SuggestionEngine) Suggest(ctx context.Context, candidates []OfficerCandidate) *OfficerCandidate {
	if e.Source != nil {
		var enhanced *OfficerCandidate
		err := e.Retry.Do(ctx, "external suggestion", func(ctx context.Context) error {
			var srcErr error
			enhanced, srcErr = e.Source.Suggest(ctx, candidates)
			return srcErr
		})
		if err == nil && enhanced != nil && inPool(candidates, enhanced.Officer.ID) {
			return enhanced
		}
		if err != nil {
			zap.S().Warnw("external suggestion unavailable, using in-process ranking", "error", err)
		}
	}
	return Suggest(candidates)
}

func inPool(candidates []OfficerCandidate, officerID string) bool {
	for _, c := range candidates {
		if c.Officer.ID == officerID && c.Officer.Details.AvailabilityStatus != models.OfficerUnavailable {
			return true
		}
	}
	return false
}
