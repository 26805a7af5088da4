package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/Pinoccchio/LawbotWeb-sub002/allocation"
	"github.com/Pinoccchio/LawbotWeb-sub002/databases"
	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

const sweepTimeout = 5 * time.Minute

// Scheduler runs the periodic workload reconciliation sweep. An officer's
// activeCases counter must equal the number of active assignment records
// referencing them; a crash between the case commit and the counter write
// can leave drift, and this sweep is what repairs it.
type Scheduler struct {
	cron    *cron.Cron
	ODB     databases.OfficerDatabase
	RDB     databases.AssignmentRecordDatabase
	Ceiling int
}

// NewScheduler creates a new scheduler instance
func NewScheduler(odb databases.OfficerDatabase, rdb databases.AssignmentRecordDatabase, ceiling int) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		ODB:     odb,
		RDB:     rdb,
		Ceiling: ceiling,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc("@every 1h", func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		if err := s.ReconcileWorkloads(ctx); err != nil {
			zap.S().Errorw("scheduled workload reconciliation failed", "error", err)
		}
	})
	if err != nil {
		zap.S().Errorw("failed to register reconciliation job", "error", err)
		return
	}
	s.cron.Start()
	zap.S().Info("workload reconciliation scheduler started")
}

// Stop halts the scheduler
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// ReconcileWorkloads recounts every officer's active assignment records and
// repairs the activeCases counter and cached workload tier where they have
// drifted
func (s *Scheduler) ReconcileWorkloads(ctx context.Context) error {
	officers, err := s.ODB.Find(ctx, bson.M{})
	if err != nil {
		return err
	}

	repaired := 0
	for _, officer := range officers {
		count, err := s.RDB.CountDocuments(ctx, bson.M{
			"assignment.officerID": officer.ID,
			"assignment.status":    models.AssignmentActive,
		})
		if err != nil {
			zap.S().Errorw("failed to count active assignments",
				"officerID", officer.ID,
				"error", err,
			)
			continue
		}

		actual := int(count)
		level := allocation.Score(actual, s.Ceiling).String()
		if officer.Details.ActiveCases == actual && officer.Details.WorkloadLevel == level {
			continue
		}

		zap.S().Warnw("repairing officer workload counters",
			"officerID", officer.ID,
			"storedActiveCases", officer.Details.ActiveCases,
			"actualActiveCases", actual,
		)
		_, err = s.ODB.UpdateOne(ctx,
			bson.M{"_id": officer.ID},
			bson.M{"$set": bson.M{
				"officer.activeCases":   actual,
				"officer.workloadLevel": level,
			}})
		if err != nil {
			zap.S().Errorw("failed to repair officer counters",
				"officerID", officer.ID,
				"error", err,
			)
			continue
		}
		repaired++
	}

	zap.S().Infow("workload reconciliation finished",
		"officers", len(officers),
		"repaired", repaired,
	)
	return nil
}
