package capture

// Source describes one logical export source: the file it lives in, the URL
// substring that identifies the authoritative capture, and the shape check
// that disambiguates polymorphic endpoints.
type Source struct {
	Name    string
	File    string
	URLPart string
	Shape   Predicate
}

// AllSources lists the supported portal sources in canonical import order.
// Referrals carry two captures in one file (see URLPart constants below).
var AllSources = []Source{
	{Name: "medications", File: "medications.json", URLPart: "/MedicineCard", Shape: BodyHasField("Ordinations")},
	{Name: "labs", File: "lab_results.json", URLPart: "/LaboratoryResults", Shape: BodyHasField("Results")},
	{Name: "episodes", File: "hospital_episodes.json", URLPart: "/PatientJournal", Shape: BodyIsArray},
	{Name: "vaccinations", File: "vaccinations.json", URLPart: "/Vaccinations", Shape: BodyHasField("Vaccinations")},
	{Name: "appointments", File: "appointments.json", URLPart: "/Appointments", Shape: BodyIsArray},
	{Name: "referrals", File: "referrals.json", URLPart: "/Referrals", Shape: BodyIsArray},
	{Name: "gp", File: "gp.json", URLPart: "/OwnDoctor", Shape: BodyHasField("Organisation")},
	{Name: "xray", File: "xray.json", URLPart: "/Imaging", Shape: BodyHasField("Reports")},
	{Name: "diagnoses", File: "diagnoses.json", URLPart: "/Diagnoses", Shape: BodyHasField("Diagnoses")},
}

// URL discriminators for the two referral listings sharing one file.
const (
	ActiveReferralsURL     = "/Referrals/Active"
	HistoricalReferralsURL = "/Referrals/Historical"
)

// SourceNames returns the catalog names in canonical order.
func SourceNames() []string {
	names := make([]string, len(AllSources))
	for i, s := range AllSources {
		names[i] = s.Name
	}
	return names
}

// SourceByName returns the Source for the given name, or ok=false.
func SourceByName(name string) (Source, bool) {
	for _, s := range AllSources {
		if s.Name == name {
			return s, true
		}
	}
	return Source{}, false
}

// Locate loads a source's capture file and finds its authoritative capture
// in one step. A nil result means the source is absent, which importers
// treat as a zero-count domain.
func (s *Store) Locate(src Source) (*Capture, error) {
	caps, err := s.Load(src.Name)
	if err != nil {
		return nil, err
	}
	return Find(caps, src.URLPart, src.Shape), nil
}
