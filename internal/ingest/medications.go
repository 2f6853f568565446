package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Iron-max114/ai-laegens-bord/internal/capture"
	"github.com/Iron-max114/ai-laegens-bord/internal/db"
	"github.com/Iron-max114/ai-laegens-bord/internal/model"
	"github.com/Iron-max114/ai-laegens-bord/internal/normalize"
)

// importMedications emits one row per ordination entry on the medicine card.
func importMedications(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, store *capture.Store, batchID uuid.UUID) ([]int64, error) {
	cap := locate(log, store, "medications")
	if cap == nil {
		return []int64{0}, nil
	}

	var rows []*model.MedicationRow
	for _, ord := range capture.Arr(capture.Field(cap.Body, "Ordinations")) {
		drug := capture.Field(ord, "Drug")
		rows = append(rows, &model.MedicationRow{
			ImportBatchID:   batchID,
			OrdinationID:    textOf(capture.Field(ord, "OrdinationId")),
			DrugName:        capture.Str(drug, "Name"),
			ActiveSubstance: capture.Str(drug, "ActiveSubstance"),
			Form:            capture.Str(drug, "Form"),
			Strength:        capture.Str(drug, "Strength"),
			// dosage arrives as raw multi-line text with locale entities
			Dosage:                 normalize.DecodeEntities(normalize.JoinLines(capture.Str(ord, "Dosage"))),
			Indication:             capture.Str(ord, "Indication"),
			StartDate:              normalize.ToDate(capture.Str(ord, "StartDate")),
			EndDate:                normalize.ToDate(capture.Str(ord, "EndDate")),
			Status:                 capture.Str(ord, "Status"),
			DoseDispensed:          normalize.BoolToInt(capture.Field(ord, "DoseDispensed")),
			LatestEffectuationDate: normalize.ToDate(capture.Str(ord, "LatestEffectuationDate")),
		})
	}

	n, err := db.CopyRows(ctx, pool, pgx.Identifier{"journal", "medications"}, model.MedicationColumns(), rows)
	if err != nil {
		return nil, fmt.Errorf("insert medications: %w", err)
	}
	return []int64{n}, nil
}
