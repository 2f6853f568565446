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

// importEpisodes emits one row per hospital episode in the patient journal.
func importEpisodes(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, store *capture.Store, batchID uuid.UUID) ([]int64, error) {
	cap := locate(log, store, "episodes")
	if cap == nil {
		return []int64{0}, nil
	}

	var rows []*model.EpisodeRow
	for _, ep := range capture.Arr(cap.Body) {
		diagnosis := capture.Field(ep, "Diagnosis")
		rows = append(rows, &model.EpisodeRow{
			ImportBatchID:   batchID,
			DiagnosisName:   capture.Str(diagnosis, "Name"),
			DiagnosisCode:   capture.Str(diagnosis, "Code"),
			Hospital:        capture.Str(ep, "Hospital"),
			Department:      capture.Str(ep, "Department"),
			Sector:          capture.Str(ep, "Sector"),
			StartDate:       normalize.ToDate(capture.Str(ep, "StartDate")),
			EndDate:         normalize.ToDate(capture.Str(ep, "EndDate")),
			LastUpdatedDate: normalize.ToDate(capture.Str(ep, "LastUpdated")),
			EpicrisisCount:  capture.Int(ep, "EpicrisisCount"),
			NoteCount:       capture.Int(ep, "NoteCount"),
			DiagnosisCount:  capture.Int(ep, "DiagnosisCount"),
			ProcedureCount:  capture.Int(ep, "ProcedureCount"),
			Hidden:          normalize.BoolToInt(capture.Field(ep, "Hidden")),
		})
	}

	n, err := db.CopyRows(ctx, pool, pgx.Identifier{"journal", "hospital_episodes"}, model.EpisodeColumns(), rows)
	if err != nil {
		return nil, fmt.Errorf("insert hospital episodes: %w", err)
	}
	return []int64{n}, nil
}
