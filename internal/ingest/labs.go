package ingest

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Iron-max114/ai-laegens-bord/internal/capture"
	"github.com/Iron-max114/ai-laegens-bord/internal/db"
	"github.com/Iron-max114/ai-laegens-bord/internal/model"
)

// routingCodePattern matches biochemistry values that are lab routing codes
// ("HVH KMA"): such rows are stubs for an order forwarded to microbiology
// and carry no result of their own.
var routingCodePattern = regexp.MustCompile(`^[A-Z]{2,5}\s+[A-Z]{2,5}$`)

// isMicrobiologyDuplicate reports whether a resolved analyte name is the
// mycoplasma/macrolide combination test, which shows up once on the
// biochemistry side and again, with richer data, under microbiology. The
// substring pair is the whole heuristic; it covers the observed corpus only
// and is not a general taxonomy.
func isMicrobiologyDuplicate(analyteName string) bool {
	s := strings.ToLower(analyteName)
	return strings.Contains(s, "mycoplasma") && strings.Contains(s, "makrolid")
}

// analyteInfo is one entry of the per-run analyte catalog.
type analyteInfo struct {
	name *string
	unit *string
}

// buildAnalyteCatalog indexes the body's analysis-type listing by type id.
func buildAnalyteCatalog(body any) map[string]analyteInfo {
	catalog := make(map[string]analyteInfo)
	for _, at := range capture.Arr(capture.Field(body, "AnalysisTypes")) {
		id := capture.Str(at, "AnalysisTypeIdentifier")
		if id == nil {
			continue
		}
		catalog[*id] = analyteInfo{
			name: capture.Str(at, "Name"),
			unit: capture.Str(at, "Unit"),
		}
	}
	return catalog
}

// importLabs writes requisitions, biochemistry results, and microbiology
// findings from the laboratory listing. Requisition header fields ride on
// every result row, so requisitions insert with duplicate tolerance before
// the results that reference them.
func importLabs(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, store *capture.Store, batchID uuid.UUID) ([]int64, error) {
	cap := locate(log, store, "labs")
	if cap == nil {
		return []int64{0, 0, 0}, nil
	}

	catalog := buildAnalyteCatalog(cap.Body)

	var (
		reqCount  int64
		bioRows   []*model.BiochemistryRow
		microRows []*model.MicrobiologyRow
	)

	for _, res := range capture.Arr(capture.Field(cap.Body, "Results")) {
		n, err := insertRequisition(ctx, pool, res, batchID)
		if err != nil {
			return nil, err
		}
		reqCount += n

		reqID := textOf(capture.Field(res, "RequisitionId"))
		// result timestamps are stored verbatim; only calendar-date fields
		// elsewhere get the time part cut
		resultDate := capture.Str(res, "ResultDateTime")

		// Investigations mark a microbiology result; everything else is a
		// biochemistry analyte row.
		if invs := capture.Arr(capture.Field(res, "Investigations")); invs != nil {
			microRows = append(microRows, microbiologyRows(invs, reqID, resultDate, batchID)...)
			continue
		}

		if row := biochemistryRow(res, catalog, reqID, resultDate, batchID); row != nil {
			bioRows = append(bioRows, row)
		}
	}

	bioCount, err := db.CopyRows(ctx, pool, pgx.Identifier{"journal", "lab_results_biochemistry"}, model.BiochemistryColumns(), bioRows)
	if err != nil {
		return nil, fmt.Errorf("insert biochemistry results: %w", err)
	}
	microCount, err := db.CopyRows(ctx, pool, pgx.Identifier{"journal", "lab_results_microbiology"}, model.MicrobiologyColumns(), microRows)
	if err != nil {
		return nil, fmt.Errorf("insert microbiology results: %w", err)
	}

	return []int64{reqCount, bioCount, microCount}, nil
}

// insertRequisition attempts one requisition insert per result row. The same
// requisition legitimately backs several results; duplicates are a silent
// no-op on the natural key.
func insertRequisition(ctx context.Context, pool *pgxpool.Pool, res any, batchID uuid.UUID) (int64, error) {
	reqID := textOf(capture.Field(res, "RequisitionId"))
	if reqID == nil {
		return 0, nil
	}
	row := &model.RequisitionRow{
		RequisitionID:         *reqID,
		ImportBatchID:         batchID,
		PatientName:           capture.Str(res, "PatientName"),
		SampleDateTime:        capture.Str(res, "SampleDateTime"),
		AnswerDateTime:        capture.Str(res, "AnswerDateTime"),
		Requester:             capture.Str(res, "Requester"),
		RequesterOrganisation: capture.Str(res, "RequesterOrganisation"),
		Sender:                capture.Str(res, "Sender"),
		LaboratoryArea:        capture.Str(res, "LaboratoryArea"),
	}
	tag, err := pool.Exec(ctx, `
		INSERT INTO journal.lab_requisitions
			(requisition_id, import_batch_id, patient_name, sample_datetime,
			 answer_datetime, requester, requester_organisation, sender, laboratory_area)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (requisition_id) DO NOTHING`,
		row.RequisitionID, row.ImportBatchID, row.PatientName, row.SampleDateTime,
		row.AnswerDateTime, row.Requester, row.RequesterOrganisation, row.Sender,
		row.LaboratoryArea,
	)
	if err != nil {
		return 0, fmt.Errorf("insert requisition %s: %w", row.RequisitionID, err)
	}
	return tag.RowsAffected(), nil
}

// biochemistryRow normalizes one analyte result, or returns nil when the
// entry is excluded as a stub or a microbiology near-duplicate.
func biochemistryRow(res any, catalog map[string]analyteInfo, reqID, resultDate *string, batchID uuid.UUID) *model.BiochemistryRow {
	value := capture.Str(res, "Value")
	if value != nil && routingCodePattern.MatchString(*value) {
		return nil
	}

	typeID := capture.Str(res, "AnalysisTypeIdentifier")
	name := typeID
	unit := capture.Str(res, "Unit")
	if typeID != nil {
		if info, ok := catalog[*typeID]; ok {
			if info.name != nil {
				name = info.name
			}
			if info.unit != nil {
				unit = info.unit
			}
		}
	}
	if name != nil && isMicrobiologyDuplicate(*name) {
		return nil
	}

	return &model.BiochemistryRow{
		ImportBatchID:  batchID,
		RequisitionID:  reqID,
		AnalysisTypeID: typeID,
		AnalyteName:    name,
		Value:          value,
		ValueType:      capture.Str(res, "ValueType"),
		Unit:           unit,
		ReferenceLow:   capture.Float(res, "ReferenceLow"),
		ReferenceHigh:  capture.Float(res, "ReferenceHigh"),
		ReferenceText:  capture.Str(res, "ReferenceText"),
		Assessment:     capture.Str(res, "Assessment"),
		ResultDate:     resultDate,
		Producer:       capture.Str(res, "Producer"),
	}
}

// microbiologyRows emits one row per finding across a result's
// investigations. An investigation with no findings still emits one row
// with nil finding fields so its metadata is not lost. Requisition id and
// result date come from the parent result; the source only carries them
// there.
func microbiologyRows(invs []any, reqID, resultDate *string, batchID uuid.UUID) []*model.MicrobiologyRow {
	var out []*model.MicrobiologyRow
	for _, inv := range invs {
		findings := FlattenFindings(capture.Field(inv, "QuantitativeFindings"), QuantitativeFindings)
		findings = append(findings, FlattenFindings(capture.Field(inv, "CultureFindings"), CultureFindings)...)

		base := model.MicrobiologyRow{
			ImportBatchID:     batchID,
			RequisitionID:     reqID,
			InvestigationName: capture.Str(inv, "Name"),
			Material:          capture.Str(inv, "Material"),
			Producer:          capture.Str(inv, "Producer"),
			Conclusion:        matrixCell(capture.Field(inv, "Conclusion"), 1, 1),
			ClinicalInfo:      clinicalInfo(capture.Field(inv, "ClinicalInformation")),
			Comment:           matrixCell(capture.Field(inv, "Comment"), 1, 0),
			ResultDate:        resultDate,
		}

		if len(findings) == 0 {
			row := base
			out = append(out, &row)
			continue
		}
		for _, f := range findings {
			row := base
			row.FindingName = f.Name
			row.FindingInterpretation = f.Interpretation
			row.FindingValue = f.Value
			out = append(out, &row)
		}
	}
	return out
}

// clinicalInfo joins the clinical-information matrix into one
// "key: value | key: value" string. Row 0 is the table label; data rows
// contribute a pair only when both the key and the value cell are present.
func clinicalInfo(matrix any) *string {
	rows := capture.Arr(capture.Field(matrix, "Data"))
	if len(rows) < 2 {
		return nil
	}
	var pairs []string
	for _, row := range rows[1:] {
		key := cell(row, 0)
		value := cell(row, 1)
		if key == nil || value == nil {
			continue
		}
		pairs = append(pairs, *key+": "+*value)
	}
	if len(pairs) == 0 {
		return nil
	}
	s := strings.Join(pairs, " | ")
	return &s
}
