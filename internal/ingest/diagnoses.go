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

func importDiagnoses(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, store *capture.Store, batchID uuid.UUID) ([]int64, error) {
	cap := locate(log, store, "diagnoses")
	if cap == nil {
		return []int64{0}, nil
	}

	var rows []*model.DiagnosisRow
	for _, diag := range capture.Arr(capture.Field(cap.Body, "Diagnoses")) {
		rows = append(rows, &model.DiagnosisRow{
			ImportBatchID: batchID,
			Organisation:  capture.Str(diag, "Organisation"),
			LiveData:      normalize.BoolToInt(capture.Field(diag, "LiveData")),
			DiagnosisCode: capture.Str(diag, "Code"),
			DiagnosisName: capture.Str(diag, "Name"),
			Date:          normalize.ToDate(capture.Str(diag, "Date")),
		})
	}

	n, err := db.CopyRows(ctx, pool, pgx.Identifier{"journal", "diagnoses"}, model.DiagnosisColumns(), rows)
	if err != nil {
		return nil, fmt.Errorf("insert diagnoses: %w", err)
	}
	return []int64{n}, nil
}
