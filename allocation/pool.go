package allocation

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/Pinoccchio/LawbotWeb-sub002/databases"
	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

// OfficerCandidate pairs an officer with their freshly computed workload
// tier for ranking
type OfficerCandidate struct {
	Officer  models.Officer `json:"officer"`
	Workload WorkloadLevel  `json:"workload"`
}

// PoolResolver retrieves the officers eligible for assignment to a case
type PoolResolver struct {
	ODB     databases.OfficerDatabase
	Table   []models.CrimeTypeMapping
	Ceiling int
}

// ResolveCandidates returns the candidate officers for the given unit, or
// for the units responsible for the given category when the unit is not
// known. Officers marked unavailable are excluded; overloaded officers are
// kept (they rank last in suggestion) so the operator always has a choice.
// An empty pool is a reportable condition, not an error; storage failures
// come back as a PoolResolutionError for the retry wrapper.
func (p PoolResolver) ResolveCandidates(ctx context.Context, unitID, category string) ([]OfficerCandidate, error) {
	var filter bson.M
	switch {
	case unitID != "":
		filter = bson.M{
			"officer.unitID":             unitID,
			"officer.availabilityStatus": bson.M{"$ne": models.OfficerUnavailable},
		}
	case category != "":
		units := UnitsForCategory(p.Table, category)
		if len(units) == 0 {
			zap.S().Warnw("no unit is responsible for category", "category", category)
			return []OfficerCandidate{}, nil
		}
		filter = bson.M{
			"officer.unitName":           bson.M{"$in": units},
			"officer.availabilityStatus": bson.M{"$ne": models.OfficerUnavailable},
		}
	default:
		filter = bson.M{
			"officer.availabilityStatus": bson.M{"$ne": models.OfficerUnavailable},
		}
	}

	officers, err := p.ODB.Find(ctx, filter)
	if err != nil {
		return nil, &PoolResolutionError{Err: err}
	}

	if len(officers) == 0 {
		zap.S().Warnw("candidate pool is empty",
			"unitID", unitID,
			"category", category,
		)
		return []OfficerCandidate{}, nil
	}

	candidates := make([]OfficerCandidate, 0, len(officers))
	for _, o := range officers {
		candidates = append(candidates, OfficerCandidate{
			Officer:  o,
			Workload: Score(o.Details.ActiveCases, p.Ceiling),
		})
	}
	return candidates, nil
}
