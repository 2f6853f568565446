// Package export writes normalized rows back out of the store for
// downstream analytics.
package export

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	goparquet "github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// BiochemistryRecord is the Parquet projection of one biochemistry result.
type BiochemistryRecord struct {
	RequisitionID  *string  `parquet:"requisition_id,optional"`
	AnalysisTypeID *string  `parquet:"analysis_type_id,optional"`
	AnalyteName    *string  `parquet:"analyte_name,optional"`
	Value          *string  `parquet:"value,optional"`
	ValueType      *string  `parquet:"value_type,optional"`
	Unit           *string  `parquet:"unit,optional"`
	ReferenceLow   *float64 `parquet:"reference_low,optional"`
	ReferenceHigh  *float64 `parquet:"reference_high,optional"`
	ReferenceText  *string  `parquet:"reference_text,optional"`
	Assessment     *string  `parquet:"assessment,optional"`
	ResultDate     *string  `parquet:"result_date,optional"`
	Producer       *string  `parquet:"producer,optional"`
}

// WriteBiochemistry streams all biochemistry results into a Parquet file and
// returns the number of records written.
func WriteBiochemistry(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, path string) (int64, error) {
	rows, err := pool.Query(ctx, `
		SELECT requisition_id, analysis_type_id, analyte_name, value,
		       value_type, unit, reference_low, reference_high,
		       reference_text, assessment, result_date, producer
		FROM journal.lab_results_biochemistry
		ORDER BY result_date, analyte_name`)
	if err != nil {
		return 0, fmt.Errorf("query biochemistry results: %w", err)
	}
	defer rows.Close()

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	writer := goparquet.NewGenericWriter[BiochemistryRecord](f)

	var count int64
	buf := make([]BiochemistryRecord, 0, 256)
	for rows.Next() {
		var rec BiochemistryRecord
		if err := rows.Scan(
			&rec.RequisitionID, &rec.AnalysisTypeID, &rec.AnalyteName,
			&rec.Value, &rec.ValueType, &rec.Unit, &rec.ReferenceLow,
			&rec.ReferenceHigh, &rec.ReferenceText, &rec.Assessment,
			&rec.ResultDate, &rec.Producer,
		); err != nil {
			return 0, fmt.Errorf("scan biochemistry row: %w", err)
		}
		buf = append(buf, rec)
		if len(buf) == cap(buf) {
			n, err := writer.Write(buf)
			if err != nil {
				return 0, fmt.Errorf("write parquet batch: %w", err)
			}
			count += int64(n)
			buf = buf[:0]
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("read biochemistry rows: %w", err)
	}
	if len(buf) > 0 {
		n, err := writer.Write(buf)
		if err != nil {
			return 0, fmt.Errorf("write parquet batch: %w", err)
		}
		count += int64(n)
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("close parquet writer: %w", err)
	}

	log.Info().Int64("records", count).Str("file", path).Msg("biochemistry export written")
	return count, nil
}
