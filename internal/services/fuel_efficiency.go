package services

import (
	"math"

	"github.com/google/uuid"
	"github.com/ynym/garage-api/internal/models"
)

// FuelRecordWithStats pairs a stored fuel record with figures derived from
// its position in the vehicle's chronological chain. A derived field is nil
// whenever it is undefined; derived values are recomputed on every read and
// never persisted.
type FuelRecordWithStats struct {
	Record           models.FuelRecord
	DistanceTraveled *int
	FuelAmount       *float64
	FuelEfficiency   *float64
}

// deriveFuelStats computes distance traveled, fuel amount and fuel
// efficiency for each display record. chain must be the same vehicle's
// complete active record set ordered by refuel time ascending; each
// record's predecessor is the chronologically preceding chain entry.
func deriveFuelStats(records, chain []models.FuelRecord) []FuelRecordWithStats {
	prev := make(map[uuid.UUID]*models.FuelRecord, len(chain))
	for i := range chain {
		if i > 0 {
			prev[chain[i].ID] = &chain[i-1]
		} else {
			prev[chain[i].ID] = nil
		}
	}

	results := make([]FuelRecordWithStats, 0, len(records))
	for _, record := range records {
		// The first fill-up counts its full odometer reading as distance.
		distance := record.TotalMileage
		if p := prev[record.ID]; p != nil {
			distance = record.TotalMileage - p.TotalMileage
		}

		var fuelAmount *float64
		if record.UnitPrice > 0 {
			amount := round2(float64(record.TotalCost) / float64(record.UnitPrice))
			fuelAmount = &amount
		}

		var fuelEfficiency *float64
		if fuelAmount != nil && *fuelAmount > 0 {
			efficiency := round2(float64(distance) / *fuelAmount)
			fuelEfficiency = &efficiency
		}

		results = append(results, FuelRecordWithStats{
			Record:           record,
			DistanceTraveled: &distance,
			FuelAmount:       fuelAmount,
			FuelEfficiency:   fuelEfficiency,
		})
	}

	return results
}

// withoutFuelStats wraps records with every derived field undefined, for
// cross-vehicle listings where chaining is meaningless.
func withoutFuelStats(records []models.FuelRecord) []FuelRecordWithStats {
	results := make([]FuelRecordWithStats, 0, len(records))
	for _, record := range records {
		results = append(results, FuelRecordWithStats{Record: record})
	}
	return results
}

// round2 rounds half away from zero to two decimal places. Applied to each
// intermediate value independently, not to the final composite.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
