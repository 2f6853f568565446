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

// importReferrals merges the active and historical listings into one table,
// distinguished only by the active flag.
func importReferrals(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, store *capture.Store, batchID uuid.UUID) ([]int64, error) {
	caps, err := store.Load("referrals")
	if err != nil {
		log.Warn().Err(err).Str("source", "referrals").Msg("source unreadable, treating as absent")
		return []int64{0}, nil
	}

	var rows []*model.ReferralRow
	listings := []struct {
		urlPart string
		active  int64
	}{
		{capture.ActiveReferralsURL, 1},
		{capture.HistoricalReferralsURL, 0},
	}
	for _, l := range listings {
		cap := capture.Find(caps, l.urlPart, capture.BodyIsArray)
		if cap == nil {
			continue
		}
		active := l.active
		for _, ref := range capture.Arr(cap.Body) {
			rows = append(rows, &model.ReferralRow{
				ImportBatchID:   batchID,
				ReferralDate:    normalize.ToDate(capture.Str(ref, "ReferralDate")),
				ExpiryDate:      normalize.ToDate(capture.Str(ref, "ExpiryDate")),
				ReferringClinic: capture.Str(ref, "ReferringClinic"),
				ReceivingClinic: capture.Str(ref, "ReceivingClinic"),
				Specialty:       capture.Str(ref, "Specialty"),
				ClinicalNotes:   normalize.DecodeEntities(normalize.StripMarkup(capture.Str(ref, "ClinicalNotes"), normalize.IndentedSep)),
				Active:          &active,
			})
		}
	}

	n, err := db.CopyRows(ctx, pool, pgx.Identifier{"journal", "referrals"}, model.ReferralColumns(), rows)
	if err != nil {
		return nil, fmt.Errorf("insert referrals: %w", err)
	}
	return []int64{n}, nil
}
