package ingest_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	goparquet "github.com/parquet-go/parquet-go"

	"github.com/Iron-max114/ai-laegens-bord/internal/config"
	"github.com/Iron-max114/ai-laegens-bord/internal/db"
	"github.com/Iron-max114/ai-laegens-bord/internal/export"
	"github.com/Iron-max114/ai-laegens-bord/internal/fixture"
	"github.com/Iron-max114/ai-laegens-bord/internal/ingest"
	"github.com/Iron-max114/ai-laegens-bord/internal/logging"
)

const (
	testPort     = 15433
	testDB       = "journaltest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var (
	testDSN string
	pg      *embeddedpostgres.EmbeddedPostgres
)

func TestMain(m *testing.M) {
	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg = embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30 * time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}

	os.Exit(code)
}

// setupDB creates a connection pool and applies migrations against a clean schema.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, testDSN)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS journal CASCADE"); err != nil {
		t.Fatalf("drop schema: %v", err)
	}

	log := logging.Setup("text")
	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}

// fixtureDir writes the synthetic capture export into a temp dir.
func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "export")
	if err := fixture.Write(dir); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return dir
}

func tableCount(t *testing.T, pool *pgxpool.Pool, table string) int64 {
	t.Helper()
	var count int64
	err := pool.QueryRow(context.Background(), "SELECT count(*) FROM journal."+table).Scan(&count)
	if err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

func TestEndToEnd_FullImport(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")

	cfg := &config.Config{DSN: testDSN, Dir: fixtureDir(t), LogFormat: "text"}

	summary, err := ingest.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("ingest.Run: %v", err)
	}

	t.Run("summary_counts", func(t *testing.T) {
		want := map[string]int64{
			"patient":                  1,
			"medications":              2,
			"lab_requisitions":         2,
			"lab_results_biochemistry": 2,
			"lab_results_microbiology": 3,
			"hospital_episodes":        1,
			"vaccinations":             2,
			"appointments":             1,
			"referrals":                2,
			"gp_practice":              1,
			"gp_doctors":               2,
			"xray":                     1,
			"diagnoses":                2,
		}
		got := make(map[string]int64)
		for _, c := range summary.Counts {
			got[c.Domain] = c.Rows
		}
		for table, wantRows := range want {
			if got[table] != wantRows {
				t.Errorf("%s: got %d, want %d", table, got[table], wantRows)
			}
			if dbRows := tableCount(t, pool, table); dbRows != wantRows {
				t.Errorf("%s table: got %d rows, want %d", table, dbRows, wantRows)
			}
		}
		if len(summary.Counts) != len(want) {
			t.Errorf("summary has %d entries, want %d", len(summary.Counts), len(want))
		}
	})

	t.Run("date_truncation_roundtrip", func(t *testing.T) {
		var startDate string
		err := pool.QueryRow(ctx,
			"SELECT start_date FROM journal.medications WHERE drug_name = 'Pamol'").Scan(&startDate)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if startDate != "2023-05-01" {
			t.Errorf("start_date: got %q, want %q", startDate, "2023-05-01")
		}
	})

	t.Run("dosage_lines_joined", func(t *testing.T) {
		var dosage string
		err := pool.QueryRow(ctx,
			"SELECT dosage FROM journal.medications WHERE drug_name = 'Pamol'").Scan(&dosage)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		want := "2 tabletter efter behov | højst 4 gange dagligt"
		if dosage != want {
			t.Errorf("dosage: got %q, want %q", dosage, want)
		}
	})

	t.Run("patient_identity_prefers_medicine_card", func(t *testing.T) {
		var name string
		var cprNull bool
		err := pool.QueryRow(ctx, "SELECT name, cpr IS NULL FROM journal.patient").Scan(&name, &cprNull)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if name != "Test Testesen" {
			t.Errorf("name: got %q", name)
		}
		// the medicine card carries no CPR; a populated cpr would mean the
		// lab fallback won over it
		if !cprNull {
			t.Error("cpr should be null when the medicine card yields the identity")
		}
	})

	t.Run("routing_code_stub_excluded", func(t *testing.T) {
		var count int64
		err := pool.QueryRow(ctx,
			"SELECT count(*) FROM journal.lab_results_biochemistry WHERE value = 'HVH KMA'").Scan(&count)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if count != 0 {
			t.Errorf("routing-code stub imported %d times, want 0", count)
		}
	})

	t.Run("analyte_catalog_resolution", func(t *testing.T) {
		var name, unit string
		err := pool.QueryRow(ctx,
			"SELECT analyte_name, unit FROM journal.lab_results_biochemistry WHERE analysis_type_id = 'NPU03429'").
			Scan(&name, &unit)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if name != "Glukose;P" || unit != "mmol/L" {
			t.Errorf("got name=%q unit=%q", name, unit)
		}
	})

	t.Run("empty_investigation_single_row", func(t *testing.T) {
		rows, err := pool.Query(ctx,
			`SELECT finding_name IS NULL, requisition_id, result_date
			 FROM journal.lab_results_microbiology
			 WHERE investigation_name = 'Clostridioides difficile'`)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		defer rows.Close()

		n := 0
		for rows.Next() {
			var findingNull bool
			var reqID, resultDate string
			if err := rows.Scan(&findingNull, &reqID, &resultDate); err != nil {
				t.Fatalf("scan: %v", err)
			}
			n++
			if !findingNull {
				t.Error("finding fields should be null for the empty investigation")
			}
			if reqID != "REQ-1002" || resultDate != "2023-06-14T00:00:00" {
				t.Errorf("parent fields not inherited: req=%q date=%q", reqID, resultDate)
			}
		}
		if n != 1 {
			t.Errorf("expected exactly 1 row, got %d", n)
		}
	})

	t.Run("clinical_info_joined", func(t *testing.T) {
		var info string
		err := pool.QueryRow(ctx,
			`SELECT clinical_info FROM journal.lab_results_microbiology
			 WHERE investigation_name = 'Urin dyrkning og resistens' AND finding_name = 'Bakteriuri'`).
			Scan(&info)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if info != "Indikation: Cystitis | Antibiotika: Ingen" {
			t.Errorf("clinical_info: %q", info)
		}
	})

	t.Run("conclusion_and_culture_finding", func(t *testing.T) {
		var conclusion, value string
		var interpNull bool
		err := pool.QueryRow(ctx,
			`SELECT conclusion, finding_value, finding_interpretation IS NULL
			 FROM journal.lab_results_microbiology
			 WHERE finding_name = 'Escherichia coli'`).
			Scan(&conclusion, &value, &interpNull)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if conclusion != "Vækst af Escherichia coli" {
			t.Errorf("conclusion: %q", conclusion)
		}
		if value != "+++" {
			t.Errorf("finding_value: %q", value)
		}
		if !interpNull {
			t.Error("culture findings carry no interpretation")
		}
	})

	t.Run("gp_doctors_reference_practice", func(t *testing.T) {
		var practiceID int64
		if err := pool.QueryRow(ctx, "SELECT practice_id FROM journal.gp_practice").Scan(&practiceID); err != nil {
			t.Fatalf("query practice: %v", err)
		}
		var mismatched int64
		err := pool.QueryRow(ctx,
			"SELECT count(*) FROM journal.gp_doctors WHERE practice_id <> $1", practiceID).Scan(&mismatched)
		if err != nil {
			t.Fatalf("query doctors: %v", err)
		}
		if mismatched != 0 {
			t.Errorf("%d doctor rows reference the wrong practice", mismatched)
		}
	})

	t.Run("referral_flags", func(t *testing.T) {
		var active, historical int64
		err := pool.QueryRow(ctx,
			"SELECT count(*) FILTER (WHERE active = 1), count(*) FILTER (WHERE active = 0) FROM journal.referrals").
			Scan(&active, &historical)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if active != 1 || historical != 1 {
			t.Errorf("active=%d historical=%d, want 1 and 1", active, historical)
		}
	})

	t.Run("gp_practice_type_label", func(t *testing.T) {
		var pType string
		if err := pool.QueryRow(ctx, "SELECT practice_type FROM journal.gp_practice").Scan(&pType); err != nil {
			t.Fatalf("query: %v", err)
		}
		if pType != "Almen praksis" {
			t.Errorf("practice_type: got %q", pType)
		}
	})

	t.Run("appointment_address_and_phone", func(t *testing.T) {
		var address, phone string
		err := pool.QueryRow(ctx, "SELECT address, phone FROM journal.appointments").Scan(&address, &phone)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if address != "Kettegård Allé 30, 2650 Hvidovre" {
			t.Errorf("address: %q", address)
		}
		if phone != "38621234" {
			t.Errorf("phone: got %q, want first listed number", phone)
		}
	})
}

// Re-running the import against the same sources is explicitly not
// idempotent: everything doubles except the requisition natural key.
func TestEndToEnd_DoubleImportDuplicates(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")
	cfg := &config.Config{DSN: testDSN, Dir: fixtureDir(t), LogFormat: "text"}

	for i := 0; i < 2; i++ {
		if _, err := ingest.Run(ctx, pool, log, cfg); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
	}

	if got := tableCount(t, pool, "lab_requisitions"); got != 2 {
		t.Errorf("lab_requisitions: got %d, want 2 (duplicates ignored)", got)
	}
	doubled := map[string]int64{
		"medications":              4,
		"lab_results_biochemistry": 4,
		"lab_results_microbiology": 6,
		"vaccinations":             4,
		"gp_doctors":               4,
	}
	for table, want := range doubled {
		if got := tableCount(t, pool, table); got != want {
			t.Errorf("%s: got %d, want %d", table, got, want)
		}
	}
}

func TestEndToEnd_AbsentDirectoryZeroCounts(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")
	cfg := &config.Config{
		DSN:       testDSN,
		Dir:       filepath.Join(t.TempDir(), "does-not-exist"),
		LogFormat: "text",
	}

	summary, err := ingest.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("ingest.Run: %v", err)
	}
	if summary.Total() != 0 {
		t.Errorf("total: got %d, want 0", summary.Total())
	}
	for _, c := range summary.Counts {
		if c.Rows != 0 {
			t.Errorf("%s: got %d, want 0", c.Domain, c.Rows)
		}
	}
}

func TestEndToEnd_SourceSubset(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")
	cfg := &config.Config{
		DSN:       testDSN,
		Dir:       fixtureDir(t),
		LogFormat: "text",
		Sources:   []string{"medications"},
	}

	summary, err := ingest.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("ingest.Run: %v", err)
	}
	got := make(map[string]int64)
	for _, c := range summary.Counts {
		got[c.Domain] = c.Rows
	}
	if got["medications"] != 2 {
		t.Errorf("medications: got %d, want 2", got["medications"])
	}
	if got["vaccinations"] != 0 || got["lab_results_biochemistry"] != 0 {
		t.Errorf("deselected sources imported rows: %v", got)
	}
}

func TestExport_BiochemistryRoundTrip(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")
	cfg := &config.Config{DSN: testDSN, Dir: fixtureDir(t), LogFormat: "text"}

	if _, err := ingest.Run(ctx, pool, log, cfg); err != nil {
		t.Fatalf("ingest.Run: %v", err)
	}

	path := filepath.Join(t.TempDir(), "biochem.parquet")
	count, err := export.WriteBiochemistry(ctx, pool, log, path)
	if err != nil {
		t.Fatalf("WriteBiochemistry: %v", err)
	}
	if count != 2 {
		t.Fatalf("exported %d records, want 2", count)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	stat, _ := f.Stat()
	pf, err := goparquet.OpenFile(f, stat.Size())
	if err != nil {
		t.Fatalf("open parquet: %v", err)
	}
	reader := goparquet.NewGenericReader[export.BiochemistryRecord](pf)
	defer reader.Close()

	var all []export.BiochemistryRecord
	buf := make([]export.BiochemistryRecord, 16)
	for {
		n, readErr := reader.Read(buf)
		all = append(all, buf[:n]...)
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			t.Fatalf("read parquet: %v", readErr)
		}
	}
	if len(all) != 2 {
		t.Fatalf("read %d records, want 2", len(all))
	}
	found := false
	for _, rec := range all {
		if rec.AnalyteName != nil && *rec.AnalyteName == "Glukose;P" {
			found = true
			if rec.Value == nil || *rec.Value != "6.1" {
				t.Errorf("Glukose value: %v", rec.Value)
			}
		}
	}
	if !found {
		t.Error("Glukose;P record missing from export")
	}
}
