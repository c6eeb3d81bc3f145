package db

import (
	"fmt"
	"time"
)

// demoBeds mirrors the six-bed ward the dashboard was designed around.
var demoBeds = []struct {
	id, patient, procedure string
	priority               float64
	minutesAgo             int
}{
	{"bed_1", "Maria Lopez", "Appendectomy", 8, 95},
	{"bed_2", "James Chen", "Knee Replacement", 5, 60},
	{"bed_3", "Aisha Patel", "Cholecystectomy", 3, 40},
	{"bed_4", "Tom Becker", "Hernia Repair", 7, 120},
	{"bed_5", "Grace Kim", "Tonsillectomy", 2, 25},
	{"bed_6", "Luis Ortega", "Spinal Fusion", 6, 75},
}

// Seed inserts the demo ward if the store has no beds yet. It reports
// whether anything was inserted.
func (s *Store) Seed(now time.Time) (bool, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM beds`).Scan(&count); err != nil {
		return false, fmt.Errorf("count beds: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	for _, d := range demoBeds {
		err := s.UpsertBed(Bed{
			ID:            d.id,
			PatientName:   d.patient,
			ProcedureType: d.procedure,
			Priority:      d.priority,
			AdmittedAt:    now.Add(-time.Duration(d.minutesAgo) * time.Minute),
		})
		if err != nil {
			return false, err
		}
	}
	return true, nil
}
