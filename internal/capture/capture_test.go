package capture

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFind_URLSubstring(t *testing.T) {
	caps := []Capture{
		{URL: "https://portal/api/Other", Body: map[string]any{}},
		{URL: "https://portal/api/MedicineCard?id=1", Body: map[string]any{"Ordinations": []any{}}},
	}
	got := Find(caps, "/MedicineCard")
	if got == nil || got.URL != caps[1].URL {
		t.Fatalf("got %v", got)
	}
}

func TestFind_ShapeDisambiguates(t *testing.T) {
	// Same URL prefix, different body shapes: an overview object and a listing array.
	caps := []Capture{
		{URL: "https://portal/api/Appointments/Overview", Body: map[string]any{"Count": float64(2)}},
		{URL: "https://portal/api/Appointments/List", Body: []any{map[string]any{"Title": "Scan"}}},
	}
	got := Find(caps, "/Appointments", BodyIsArray)
	if got == nil || got.URL != caps[1].URL {
		t.Fatalf("got %v", got)
	}
	got = Find(caps, "/Appointments", BodyHasField("Count"))
	if got == nil || got.URL != caps[0].URL {
		t.Fatalf("got %v", got)
	}
}

func TestFind_NoMatchIsNil(t *testing.T) {
	caps := []Capture{{URL: "https://portal/api/Vaccinations", Body: nil}}
	if got := Find(caps, "/MedicineCard"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := Find(nil, "/MedicineCard"); got != nil {
		t.Fatalf("expected nil for nil captures, got %v", got)
	}
	// url matches but predicate fails
	if got := Find(caps, "/Vaccinations", BodyHasField("Vaccinations")); got != nil {
		t.Fatalf("expected nil when shape fails, got %v", got)
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	caps, err := s.Load("medications")
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if caps != nil {
		t.Fatalf("expected nil captures, got %v", caps)
	}
}

func TestStore_LoadAndLocate(t *testing.T) {
	dir := t.TempDir()
	doc := `[{"url":"https://portal/api/MedicineCard","body":{"Ordinations":[{"DrugName":"Amlodipin"}]}}]`
	if err := os.WriteFile(filepath.Join(dir, "medications.json"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	s := &Store{Dir: dir}

	src, ok := SourceByName("medications")
	if !ok {
		t.Fatal("medications missing from catalog")
	}
	cap, err := s.Locate(src)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if cap == nil {
		t.Fatal("expected a capture")
	}
	ords := Arr(Field(cap.Body, "Ordinations"))
	if len(ords) != 1 {
		t.Fatalf("expected 1 ordination, got %d", len(ords))
	}
	if name := Str(ords[0], "DrugName"); name == nil || *name != "Amlodipin" {
		t.Errorf("DrugName: got %v", name)
	}
}

func TestStore_LoadMalformed(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "medications.json"), []byte("{not json"), 0o644)
	s := &Store{Dir: dir}
	if _, err := s.Load("medications"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSourceCatalog(t *testing.T) {
	if _, ok := SourceByName("bogus"); ok {
		t.Error("unexpected catalog hit for bogus source")
	}
	names := SourceNames()
	if len(names) != len(AllSources) {
		t.Fatalf("got %d names", len(names))
	}
	for _, s := range AllSources {
		if s.File == "" || s.URLPart == "" || s.Shape == nil {
			t.Errorf("incomplete descriptor for %s", s.Name)
		}
	}
}

func TestValueAccessors(t *testing.T) {
	m := map[string]any{"s": "x", "n": float64(3.9), "empty": "", "null": nil}
	if got := Str(m, "s"); got == nil || *got != "x" {
		t.Errorf("Str: %v", got)
	}
	if Str(m, "empty") != nil || Str(m, "null") != nil || Str(m, "missing") != nil {
		t.Error("Str should be nil for empty/null/missing")
	}
	if got := Int(m, "n"); got == nil || *got != 3 {
		t.Errorf("Int: %v", got)
	}
	if got := Float(m, "n"); got == nil || *got != 3.9 {
		t.Errorf("Float: %v", got)
	}
	if Obj(nil) != nil || Arr(nil) != nil || Field(nil, "x") != nil {
		t.Error("nil input should read as nil")
	}
}
