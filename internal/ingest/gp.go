package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Iron-max114/ai-laegens-bord/internal/capture"
	"github.com/Iron-max114/ai-laegens-bord/internal/model"
)

// practiceTypeLabels maps the portal's numeric organisation-type codes to
// display labels. Unknown codes pass through as text so new codes survive
// the import instead of breaking it.
var practiceTypeLabels = map[int64]string{
	1: "Almen praksis",
	2: "Speciallægepraksis",
	3: "Lægehus",
}

func practiceType(v any) *string {
	switch t := v.(type) {
	case float64:
		if label, ok := practiceTypeLabels[int64(t)]; ok {
			return &label
		}
		return textOf(v)
	case string:
		if t == "" {
			return nil
		}
		return &t
	default:
		return nil
	}
}

// importGP writes the single practice row and its doctors. The practice
// insert comes first: the doctors' foreign key is only known once the
// practice identity has been assigned.
func importGP(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, store *capture.Store, batchID uuid.UUID) ([]int64, error) {
	cap := locate(log, store, "gp")
	if cap == nil {
		return []int64{0, 0}, nil
	}
	org := capture.Field(cap.Body, "Organisation")
	if org == nil {
		return []int64{0, 0}, nil
	}

	practice := &model.GPPracticeRow{
		ImportBatchID: batchID,
		Name:          capture.Str(org, "Name"),
		PracticeType:  practiceType(capture.Field(org, "Type")),
		ClinicType:    capture.Str(org, "ClinicType"),
		Address:       capture.Str(org, "Address"),
		Zipcode:       textOf(capture.Field(org, "Zipcode")),
		City:          capture.Str(org, "City"),
		Phone:         firstPhone(capture.Field(org, "PhoneNumbers")),
		Website:       capture.Str(org, "Website"),
	}

	var practiceID int64
	err := pool.QueryRow(ctx, `
		INSERT INTO journal.gp_practice
			(import_batch_id, name, practice_type, clinic_type, address,
			 zipcode, city, phone, website)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING practice_id`,
		practice.ImportBatchID, practice.Name, practice.PracticeType,
		practice.ClinicType, practice.Address, practice.Zipcode, practice.City,
		practice.Phone, practice.Website,
	).Scan(&practiceID)
	if err != nil {
		return nil, fmt.Errorf("insert gp practice: %w", err)
	}

	var doctorCount int64
	for _, doc := range capture.Arr(capture.Field(org, "Doctors")) {
		doctor := &model.GPDoctorRow{
			ImportBatchID: batchID,
			PracticeID:    practiceID,
			Name:          capture.Str(doc, "Name"),
			Role:          capture.Str(doc, "Role"),
			Specialty:     capture.Str(doc, "Specialty"),
			SinceYear:     capture.Int(doc, "SinceYear"),
		}
		if _, err := pool.Exec(ctx, `
			INSERT INTO journal.gp_doctors
				(import_batch_id, practice_id, name, role, specialty, since_year)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			doctor.ImportBatchID, doctor.PracticeID, doctor.Name, doctor.Role,
			doctor.Specialty, doctor.SinceYear,
		); err != nil {
			return nil, fmt.Errorf("insert gp doctor: %w", err)
		}
		doctorCount++
	}

	return []int64{1, doctorCount}, nil
}
