package model

import "github.com/google/uuid"

// DB-ready row types, one per destination table. Optional source fields are
// explicit pointers so a missing field lands as SQL NULL at the store
// boundary instead of being patched in at insert time. Dates are kept as
// normalized calendar-date strings, timestamps as the source's ISO text.

// PatientRow is the single identity row; both fields are optional and the
// first source that yields an identity wins.
type PatientRow struct {
	ImportBatchID uuid.UUID
	Name          *string
	CPR           *string
}

func PatientColumns() []string {
	return []string{"import_batch_id", "name", "cpr"}
}

func (r *PatientRow) CopyValues() []any {
	return []any{r.ImportBatchID, r.Name, r.CPR}
}

type MedicationRow struct {
	ImportBatchID          uuid.UUID
	OrdinationID           *string
	DrugName               *string
	ActiveSubstance        *string
	Form                   *string
	Strength               *string
	Dosage                 *string
	Indication             *string
	StartDate              *string
	EndDate                *string
	Status                 *string
	DoseDispensed          *int64
	LatestEffectuationDate *string
}

func MedicationColumns() []string {
	return []string{
		"import_batch_id", "ordination_id", "drug_name", "active_substance",
		"form", "strength", "dosage", "indication", "start_date", "end_date",
		"status", "dose_dispensed", "latest_effectuation_date",
	}
}

func (r *MedicationRow) CopyValues() []any {
	return []any{
		r.ImportBatchID, r.OrdinationID, r.DrugName, r.ActiveSubstance,
		r.Form, r.Strength, r.Dosage, r.Indication, r.StartDate, r.EndDate,
		r.Status, r.DoseDispensed, r.LatestEffectuationDate,
	}
}

// RequisitionRow is keyed by the source-supplied requisition id. The same
// requisition arrives once per result row referencing it, so inserts must
// tolerate duplicates.
type RequisitionRow struct {
	RequisitionID         string
	ImportBatchID         uuid.UUID
	PatientName           *string
	SampleDateTime        *string
	AnswerDateTime        *string
	Requester             *string
	RequesterOrganisation *string
	Sender                *string
	LaboratoryArea        *string
}

type BiochemistryRow struct {
	ImportBatchID  uuid.UUID
	RequisitionID  *string
	AnalysisTypeID *string
	AnalyteName    *string
	Value          *string
	ValueType      *string
	Unit           *string
	ReferenceLow   *float64
	ReferenceHigh  *float64
	ReferenceText  *string
	Assessment     *string
	ResultDate     *string
	Producer       *string
}

func BiochemistryColumns() []string {
	return []string{
		"import_batch_id", "requisition_id", "analysis_type_id", "analyte_name",
		"value", "value_type", "unit", "reference_low", "reference_high",
		"reference_text", "assessment", "result_date", "producer",
	}
}

func (r *BiochemistryRow) CopyValues() []any {
	return []any{
		r.ImportBatchID, r.RequisitionID, r.AnalysisTypeID, r.AnalyteName,
		r.Value, r.ValueType, r.Unit, r.ReferenceLow, r.ReferenceHigh,
		r.ReferenceText, r.Assessment, r.ResultDate, r.Producer,
	}
}

// MicrobiologyRow is one finding within an investigation. Investigations
// without findings still emit one row with nil finding fields so the
// investigation metadata survives.
type MicrobiologyRow struct {
	ImportBatchID         uuid.UUID
	RequisitionID         *string
	InvestigationName     *string
	Material              *string
	Producer              *string
	Conclusion            *string
	FindingName           *string
	FindingInterpretation *string
	FindingValue          *string
	ClinicalInfo          *string
	Comment               *string
	ResultDate            *string
}

func MicrobiologyColumns() []string {
	return []string{
		"import_batch_id", "requisition_id", "investigation_name", "material",
		"producer", "conclusion", "finding_name", "finding_interpretation",
		"finding_value", "clinical_info", "comment", "result_date",
	}
}

func (r *MicrobiologyRow) CopyValues() []any {
	return []any{
		r.ImportBatchID, r.RequisitionID, r.InvestigationName, r.Material,
		r.Producer, r.Conclusion, r.FindingName, r.FindingInterpretation,
		r.FindingValue, r.ClinicalInfo, r.Comment, r.ResultDate,
	}
}

type EpisodeRow struct {
	ImportBatchID   uuid.UUID
	DiagnosisName   *string
	DiagnosisCode   *string
	Hospital        *string
	Department      *string
	Sector          *string
	StartDate       *string
	EndDate         *string
	LastUpdatedDate *string
	EpicrisisCount  *int64
	NoteCount       *int64
	DiagnosisCount  *int64
	ProcedureCount  *int64
	Hidden          *int64
}

func EpisodeColumns() []string {
	return []string{
		"import_batch_id", "diagnosis_name", "diagnosis_code", "hospital",
		"department", "sector", "start_date", "end_date", "last_updated_date",
		"epicrisis_count", "note_count", "diagnosis_count", "procedure_count",
		"hidden",
	}
}

func (r *EpisodeRow) CopyValues() []any {
	return []any{
		r.ImportBatchID, r.DiagnosisName, r.DiagnosisCode, r.Hospital,
		r.Department, r.Sector, r.StartDate, r.EndDate, r.LastUpdatedDate,
		r.EpicrisisCount, r.NoteCount, r.DiagnosisCount, r.ProcedureCount,
		r.Hidden,
	}
}

type VaccinationRow struct {
	ImportBatchID uuid.UUID
	VaccinationID *string
	Date          *string
	VaccineName   *string
	Organisation  *string
	Active        *int64
}

func VaccinationColumns() []string {
	return []string{
		"import_batch_id", "vaccination_id", "date", "vaccine_name",
		"organisation", "active",
	}
}

func (r *VaccinationRow) CopyValues() []any {
	return []any{
		r.ImportBatchID, r.VaccinationID, r.Date, r.VaccineName,
		r.Organisation, r.Active,
	}
}

type AppointmentRow struct {
	ImportBatchID   uuid.UUID
	Title           *string
	StartTime       *string
	EndTime         *string
	Organisation    *string
	Unit            *string
	Address         *string
	Phone           *string
	AppointmentType *string
}

func AppointmentColumns() []string {
	return []string{
		"import_batch_id", "title", "start_time", "end_time", "organisation",
		"unit", "address", "phone", "appointment_type",
	}
}

func (r *AppointmentRow) CopyValues() []any {
	return []any{
		r.ImportBatchID, r.Title, r.StartTime, r.EndTime, r.Organisation,
		r.Unit, r.Address, r.Phone, r.AppointmentType,
	}
}

type ReferralRow struct {
	ImportBatchID   uuid.UUID
	ReferralDate    *string
	ExpiryDate      *string
	ReferringClinic *string
	ReceivingClinic *string
	Specialty       *string
	ClinicalNotes   *string
	Active          *int64
}

func ReferralColumns() []string {
	return []string{
		"import_batch_id", "referral_date", "expiry_date", "referring_clinic",
		"receiving_clinic", "specialty", "clinical_notes", "active",
	}
}

func (r *ReferralRow) CopyValues() []any {
	return []any{
		r.ImportBatchID, r.ReferralDate, r.ExpiryDate, r.ReferringClinic,
		r.ReceivingClinic, r.Specialty, r.ClinicalNotes, r.Active,
	}
}

type GPPracticeRow struct {
	ImportBatchID uuid.UUID
	Name          *string
	PracticeType  *string
	ClinicType    *string
	Address       *string
	Zipcode       *string
	City          *string
	Phone         *string
	Website       *string
}

type GPDoctorRow struct {
	ImportBatchID uuid.UUID
	PracticeID    int64
	Name          *string
	Role          *string
	Specialty     *string
	SinceYear     *int64
}

type XrayRow struct {
	ImportBatchID uuid.UUID
	Date          *string
	Name          *string
	Producer      *string
}

func XrayColumns() []string {
	return []string{"import_batch_id", "date", "name", "producer"}
}

func (r *XrayRow) CopyValues() []any {
	return []any{r.ImportBatchID, r.Date, r.Name, r.Producer}
}

type DiagnosisRow struct {
	ImportBatchID uuid.UUID
	Organisation  *string
	LiveData      *int64
	DiagnosisCode *string
	DiagnosisName *string
	Date          *string
}

func DiagnosisColumns() []string {
	return []string{
		"import_batch_id", "organisation", "live_data", "diagnosis_code",
		"diagnosis_name", "date",
	}
}

func (r *DiagnosisRow) CopyValues() []any {
	return []any{
		r.ImportBatchID, r.Organisation, r.LiveData, r.DiagnosisCode,
		r.DiagnosisName, r.Date,
	}
}
