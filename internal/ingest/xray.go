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

// importXray emits one row per imaging report. Sub-investigations stay
// folded into the parent report; they carry no fields of their own worth a
// table.
func importXray(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, store *capture.Store, batchID uuid.UUID) ([]int64, error) {
	cap := locate(log, store, "xray")
	if cap == nil {
		return []int64{0}, nil
	}

	var rows []*model.XrayRow
	for _, rep := range capture.Arr(capture.Field(cap.Body, "Reports")) {
		rows = append(rows, &model.XrayRow{
			ImportBatchID: batchID,
			Date:          normalize.ToDate(capture.Str(rep, "Date")),
			Name:          capture.Str(rep, "Name"),
			Producer:      capture.Str(rep, "Producer"),
		})
	}

	n, err := db.CopyRows(ctx, pool, pgx.Identifier{"journal", "xray"}, model.XrayColumns(), rows)
	if err != nil {
		return nil, fmt.Errorf("insert xray reports: %w", err)
	}
	return []int64{n}, nil
}
