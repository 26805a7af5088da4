package allocation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pinoccchio/LawbotWeb-sub002/allocation"
)

func TestScore_Thresholds(t *testing.T) {
	ceiling := 15

	tests := []struct {
		name        string
		activeCases int
		want        allocation.WorkloadLevel
	}{
		{"zero cases is low", 0, allocation.WorkloadLow},
		{"just under 40 percent is low", 5, allocation.WorkloadLow},
		{"40 percent is medium", 6, allocation.WorkloadMedium},
		{"just under 70 percent is medium", 10, allocation.WorkloadMedium},
		{"70 percent is high", 11, allocation.WorkloadHigh},
		{"at the ceiling is high", 15, allocation.WorkloadHigh},
		{"over the ceiling is overloaded", 16, allocation.WorkloadOverloaded},
		{"far over the ceiling is overloaded", 40, allocation.WorkloadOverloaded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, allocation.Score(tt.activeCases, ceiling))
		})
	}
}

func TestScore_Idempotent(t *testing.T) {
	for activeCases := 0; activeCases <= 20; activeCases++ {
		first := allocation.Score(activeCases, 15)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, allocation.Score(activeCases, 15))
		}
	}
}

func TestScore_DefensiveInputs(t *testing.T) {
	// zero or negative ceiling falls back to the default
	assert.Equal(t, allocation.WorkloadLow, allocation.Score(0, 0))
	assert.Equal(t, allocation.WorkloadOverloaded, allocation.Score(100, -1))
	// negative active counts are treated as zero
	assert.Equal(t, allocation.WorkloadLow, allocation.Score(-3, 15))
}

func TestWorkloadLevel_String(t *testing.T) {
	assert.Equal(t, "low", allocation.WorkloadLow.String())
	assert.Equal(t, "medium", allocation.WorkloadMedium.String())
	assert.Equal(t, "high", allocation.WorkloadHigh.String())
	assert.Equal(t, "overloaded", allocation.WorkloadOverloaded.String())
	assert.Equal(t, "unknown", allocation.WorkloadLevel(42).String())
}
