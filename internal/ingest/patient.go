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
)

// patientSources lists, in priority order, the captures that can carry the
// patient identity. The medicine card is tried first; the lab listing is
// the fallback. The first one that yields a name or CPR wins.
var patientSources = []string{"medications", "labs"}

// importPatient writes at most one identity row.
func importPatient(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, store *capture.Store, batchID uuid.UUID) ([]int64, error) {
	for _, source := range patientSources {
		cap := locate(log, store, source)
		if cap == nil {
			continue
		}
		patient := capture.Field(cap.Body, "Patient")
		name := capture.Str(patient, "Name")
		cpr := capture.Str(patient, "Cpr")
		if name == nil && cpr == nil {
			continue
		}

		rows := []*model.PatientRow{{
			ImportBatchID: batchID,
			Name:          name,
			CPR:           cpr,
		}}
		n, err := db.CopyRows(ctx, pool, pgx.Identifier{"journal", "patient"}, model.PatientColumns(), rows)
		if err != nil {
			return nil, fmt.Errorf("insert patient: %w", err)
		}
		return []int64{n}, nil
	}
	return []int64{0}, nil
}
