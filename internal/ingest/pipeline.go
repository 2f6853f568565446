// Package ingest normalizes captured portal responses into the destination
// store, one importer per clinical domain.
package ingest

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Iron-max114/ai-laegens-bord/internal/capture"
	"github.com/Iron-max114/ai-laegens-bord/internal/config"
	"github.com/Iron-max114/ai-laegens-bord/internal/model"
)

// PipelineError wraps an error with the domain where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Importer runs one domain import and returns its per-table row counts in
// summary order.
type Importer struct {
	// Source is the catalog source this importer consumes; config source
	// selection keys off it.
	Source string
	// Tables are the destination tables this importer fills, in the order
	// counts are reported.
	Tables []string
	Run    func(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, store *capture.Store, batchID uuid.UUID) ([]int64, error)
}

// importers is the fixed run order. Order between domains is irrelevant
// except that lab requisitions are written before their results and the GP
// practice before its doctors, both handled inside the importers.
var importers = []Importer{
	{Source: "labs", Tables: []string{"patient"}, Run: importPatient},
	{Source: "medications", Tables: []string{"medications"}, Run: importMedications},
	{Source: "labs", Tables: []string{"lab_requisitions", "lab_results_biochemistry", "lab_results_microbiology"}, Run: importLabs},
	{Source: "episodes", Tables: []string{"hospital_episodes"}, Run: importEpisodes},
	{Source: "vaccinations", Tables: []string{"vaccinations"}, Run: importVaccinations},
	{Source: "appointments", Tables: []string{"appointments"}, Run: importAppointments},
	{Source: "referrals", Tables: []string{"referrals"}, Run: importReferrals},
	{Source: "gp", Tables: []string{"gp_practice", "gp_doctors"}, Run: importGP},
	{Source: "xray", Tables: []string{"xray"}, Run: importXray},
	{Source: "diagnoses", Tables: []string{"diagnoses"}, Run: importDiagnoses},
}

// Run executes every selected importer in the fixed order against a fresh
// destination and returns the per-table counts. Absent sources yield zero
// counts; only store failures abort the run.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) (*model.ImportSummary, error) {
	start := time.Now()
	batchID := uuid.New()
	store := &capture.Store{Dir: cfg.Dir}

	summary := &model.ImportSummary{ImportBatchID: batchID.String()}

	for _, imp := range importers {
		if !cfg.ImportSource(imp.Source) {
			for _, table := range imp.Tables {
				summary.Add(table, 0)
			}
			continue
		}

		counts, err := imp.Run(ctx, pool, log, store, batchID)
		if err != nil {
			return nil, &PipelineError{Phase: imp.Tables[0], Err: err}
		}
		for i, table := range imp.Tables {
			summary.Add(table, counts[i])
			log.Info().Str("table", table).Int64("rows", counts[i]).Msg("domain imported")
		}
	}

	summary.DurationTotal = time.Since(start)
	log.Info().
		Int64("rows_total", summary.Total()).
		Str("batch_id", summary.ImportBatchID).
		Str("duration", summary.DurationTotal.String()).
		Msg("import complete")

	return summary, nil
}

// locate loads and locates a catalog source's capture. Absence (missing
// file, no matching capture) reads as nil; a broken file is logged and also
// treated as no data so one bad source never sinks the run.
func locate(log zerolog.Logger, store *capture.Store, name string) *capture.Capture {
	src, ok := capture.SourceByName(name)
	if !ok {
		return nil
	}
	cap, err := store.Locate(src)
	if err != nil {
		log.Warn().Err(err).Str("source", name).Msg("source unreadable, treating as absent")
		return nil
	}
	return cap
}

// textOf renders a loosely-typed scalar as text: strings pass through,
// integral numbers drop their decimal point. Ids arrive in both encodings.
func textOf(v any) *string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return &t
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		return &s
	default:
		return nil
	}
}
