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

func importVaccinations(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, store *capture.Store, batchID uuid.UUID) ([]int64, error) {
	cap := locate(log, store, "vaccinations")
	if cap == nil {
		return []int64{0}, nil
	}

	var rows []*model.VaccinationRow
	for _, vac := range capture.Arr(capture.Field(cap.Body, "Vaccinations")) {
		rows = append(rows, &model.VaccinationRow{
			ImportBatchID: batchID,
			// source flips between numeric and string ids; keep text
			VaccinationID: textOf(capture.Field(vac, "VaccinationId")),
			Date:          normalize.ToDate(capture.Str(vac, "Date")),
			VaccineName:   capture.Str(vac, "VaccineName"),
			Organisation:  capture.Str(vac, "Organisation"),
			Active:        normalize.BoolToInt(capture.Field(vac, "Active")),
		})
	}

	n, err := db.CopyRows(ctx, pool, pgx.Identifier{"journal", "vaccinations"}, model.VaccinationColumns(), rows)
	if err != nil {
		return nil, fmt.Errorf("insert vaccinations: %w", err)
	}
	return []int64{n}, nil
}
