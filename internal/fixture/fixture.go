// Package fixture writes a small synthetic capture export directory with
// every supported source represented, for tests and demos.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type capture struct {
	URL  string `json:"url"`
	Body any    `json:"body"`
}

func obj(pairs map[string]any) map[string]any { return pairs }

// Write creates the export directory and one JSON file per source.
func Write(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create fixture dir: %w", err)
	}
	files := map[string][]capture{
		"medications.json":       medications(),
		"lab_results.json":       labResults(),
		"hospital_episodes.json": episodes(),
		"vaccinations.json":      vaccinations(),
		"appointments.json":      appointments(),
		"referrals.json":         referrals(),
		"gp.json":                gp(),
		"xray.json":              xray(),
		"diagnoses.json":         diagnoses(),
	}
	for name, caps := range files {
		data, err := json.MarshalIndent(caps, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

func medications() []capture {
	return []capture{
		// overview response with the same URL prefix and a different shape;
		// the locator must skip it
		{URL: "https://portal/api/MedicineCard/Overview", Body: obj(map[string]any{"Count": 2})},
		{URL: "https://portal/api/MedicineCard", Body: obj(map[string]any{
			// the medicine card endpoint carries the name but no CPR
			"Patient": obj(map[string]any{"Name": "Test Testesen"}),
			"Ordinations": []any{
				obj(map[string]any{
					"OrdinationId": 900123,
					"Drug": obj(map[string]any{
						"Name":            "Amlodipin \"Krka\"",
						"ActiveSubstance": "Amlodipin",
						"Form":            "tabletter",
						"Strength":        "5 mg",
					}),
					"Dosage":                 "1 tablet morgen\ntages med mad",
					"Indication":             "mod forhøjet blodtryk",
					"StartDate":              "2022-11-03T00:00:00",
					"Status":                 "Aktuel",
					"DoseDispensed":          false,
					"LatestEffectuationDate": "2024-02-18T00:00:00",
				}),
				obj(map[string]any{
					"OrdinationId": "900124",
					"Drug": obj(map[string]any{
						"Name":            "Pamol",
						"ActiveSubstance": "Paracetamol",
						"Form":            "filmovertrukne tabletter",
						"Strength":        "500 mg",
					}),
					"Dosage":        "2 tabletter efter behov\nh&#248;jst 4 gange dagligt",
					"StartDate":     "2023-05-01T00:00:00",
					"EndDate":       "2023-06-01T00:00:00",
					"Status":        "Afsluttet",
					"DoseDispensed": true,
				}),
			},
		})},
	}
}

func labResults() []capture {
	return []capture{
		{URL: "https://portal/api/LaboratoryResults/List", Body: obj(map[string]any{
			"Patient": obj(map[string]any{"Name": "Test Testesen", "Cpr": "010180-1234"}),
			"AnalysisTypes": []any{
				obj(map[string]any{"AnalysisTypeIdentifier": "NPU03429", "Name": "Glukose;P", "Unit": "mmol/L"}),
				obj(map[string]any{"AnalysisTypeIdentifier": "NPU19748", "Name": "Hæmoglobin;B", "Unit": "mmol/L"}),
				obj(map[string]any{"AnalysisTypeIdentifier": "DNK35842", "Name": "Mycoplasma genitalium og makrolid resistens (DNA)", "Unit": ""}),
			},
			"Results": []any{
				// two biochemistry rows on the same requisition
				obj(map[string]any{
					"RequisitionId":          "REQ-1001",
					"PatientName":            "Test Testesen",
					"SampleDateTime":         "2023-05-01T08:10:00",
					"AnswerDateTime":         "2023-05-01T11:45:00",
					"Requester":              "Lægerne Østergade",
					"RequesterOrganisation":  "Almen praksis",
					"Sender":                 "KBA Hvidovre",
					"LaboratoryArea":         "Klinisk Biokemi",
					"ResultDateTime":         "2023-05-01T00:00:00",
					"Producer":               "KBA Hvidovre",
					"AnalysisTypeIdentifier": "NPU03429",
					"Value":                  "6.1",
					"ValueType":              "Numeric",
					"ReferenceLow":           4.2,
					"ReferenceHigh":          7.8,
					"Assessment":             "Normal",
				}),
				obj(map[string]any{
					"RequisitionId":          "REQ-1001",
					"SampleDateTime":         "2023-05-01T08:10:00",
					"LaboratoryArea":         "Klinisk Biokemi",
					"ResultDateTime":         "2023-05-01T00:00:00",
					"Producer":               "KBA Hvidovre",
					"AnalysisTypeIdentifier": "NPU19748",
					"Value":                  "9.2",
					"ValueType":              "Numeric",
					"ReferenceLow":           8.3,
					"ReferenceHigh":          10.5,
					"Assessment":             "Normal",
				}),
				// routing-code stub: must be excluded
				obj(map[string]any{
					"RequisitionId":          "REQ-1002",
					"SampleDateTime":         "2023-06-12T09:00:00",
					"LaboratoryArea":         "Klinisk Biokemi",
					"ResultDateTime":         "2023-06-12T00:00:00",
					"AnalysisTypeIdentifier": "NPU99999",
					"Value":                  "HVH KMA",
				}),
				// near-duplicate of a microbiology finding: must be excluded
				obj(map[string]any{
					"RequisitionId":          "REQ-1002",
					"SampleDateTime":         "2023-06-12T09:00:00",
					"LaboratoryArea":         "Klinisk Biokemi",
					"ResultDateTime":         "2023-06-12T00:00:00",
					"AnalysisTypeIdentifier": "DNK35842",
					"Value":                  "Se mikrobiologi",
				}),
				// microbiology result with two investigations
				obj(map[string]any{
					"RequisitionId":  "REQ-1002",
					"SampleDateTime": "2023-06-12T09:00:00",
					"LaboratoryArea": "Klinisk Mikrobiologi",
					"ResultDateTime": "2023-06-14T00:00:00",
					"Producer":       "KMA Hvidovre",
					"Investigations": []any{
						obj(map[string]any{
							"Name":     "Urin dyrkning og resistens",
							"Material": "Urin, midtstråle",
							"Producer": "KMA Hvidovre",
							"Conclusion": obj(map[string]any{
								"Data": []any{[]any{"Konklusion"}, []any{"", "Vækst af Escherichia coli"}},
							}),
							// wide presentation matrices; only a few columns
							// carry data
							"QuantitativeFindings": obj(map[string]any{
								"Data": []any{
									[]any{"", "", "", "", "Analyse", "", "", "", "Tolkning", "Resultat"},
									[]any{"", "", "", "", "Bakteriuri", "", "", "", "Positiv", ">100.000 CFU/mL"},
								},
							}),
							"CultureFindings": obj(map[string]any{
								"Data": []any{
									[]any{"", "Organisme", "Mængde"},
									[]any{"", "Escherichia coli", "+++"},
									[]any{"", "", ""},
								},
							}),
							"ClinicalInformation": obj(map[string]any{
								"Data": []any{
									[]any{"Klinisk information"},
									[]any{"Indikation", "Cystitis"},
									[]any{"Antibiotika", "Ingen"},
									[]any{"Bemærkning"},
								},
							}),
							"Comment": obj(map[string]any{
								"Data": []any{[]any{"Kommentar"}, []any{"Resistensbestemmelse foreligger"}},
							}),
						}),
						// empty investigation: exactly one row with nil findings
						obj(map[string]any{
							"Name":     "Clostridioides difficile",
							"Material": "Fæces",
							"Producer": "KMA Hvidovre",
							"QuantitativeFindings": obj(map[string]any{
								"Data": []any{[]any{"", "", "", "", "Analyse", "", "", "", "Tolkning", "Resultat"}},
							}),
						}),
					},
				}),
			},
		})},
	}
}

func episodes() []capture {
	return []capture{
		{URL: "https://portal/api/PatientJournal/Episodes", Body: []any{
			obj(map[string]any{
				"Diagnosis":      obj(map[string]any{"Name": "Essentiel hypertension", "Code": "DI10"}),
				"Hospital":       "Hvidovre Hospital",
				"Department":     "Kardiologisk afdeling",
				"Sector":         "Somatik",
				"StartDate":      "2022-03-14T00:00:00",
				"EndDate":        "2022-03-16T00:00:00",
				"LastUpdated":    "2022-03-20T00:00:00",
				"EpicrisisCount": 1,
				"NoteCount":      4,
				"DiagnosisCount": 2,
				"ProcedureCount": 1,
				"Hidden":         false,
			}),
		}},
	}
}

func vaccinations() []capture {
	return []capture{
		{URL: "https://portal/api/Vaccinations", Body: obj(map[string]any{
			"Vaccinations": []any{
				obj(map[string]any{
					"VaccinationId": 70001,
					"Date":          "2021-06-15T00:00:00",
					"VaccineName":   "Comirnaty",
					"Organisation":  "Vaccinationscenter København",
					"Active":        true,
				}),
				obj(map[string]any{
					"VaccinationId": "70002",
					"Date":          "2021-07-20T00:00:00",
					"VaccineName":   "Comirnaty",
					"Organisation":  "Vaccinationscenter København",
					"Active":        true,
				}),
			},
		})},
	}
}

func appointments() []capture {
	return []capture{
		{URL: "https://portal/api/Appointments/Overview", Body: obj(map[string]any{"Count": 1})},
		{URL: "https://portal/api/Appointments/List", Body: []any{
			obj(map[string]any{
				"Title":        "Kontrol af blodtryk",
				"StartTime":    "2024-04-10T10:30:00",
				"EndTime":      "2024-04-10T11:00:00",
				"Organisation": "Hvidovre Hospital",
				"Unit":         "Kardiologisk ambulatorium",
				"Address":      obj(map[string]any{"Street": "Kettegård Allé 30", "Zipcode": "2650", "City": "Hvidovre"}),
				"PhoneNumbers": []any{"38621234", "38625678"},
				"Type":         "Ambulant besøg",
			}),
		}},
	}
}

func referrals() []capture {
	return []capture{
		{URL: "https://portal/api/Referrals/Active", Body: []any{
			obj(map[string]any{
				"ReferralDate":    "2024-01-08T00:00:00",
				"ExpiryDate":      "2024-07-08T00:00:00",
				"ReferringClinic": "Lægerne Østergade",
				"ReceivingClinic": "Dermatologisk Klinik Amager",
				"Specialty":       "Dermatologi",
				"ClinicalNotes":   "Udslæt på begge underarme<br>Ingen kendt allergi",
			}),
		}},
		{URL: "https://portal/api/Referrals/Historical", Body: []any{
			obj(map[string]any{
				"ReferralDate":    "2022-09-01T00:00:00",
				"ReferringClinic": "Lægerne Østergade",
				"ReceivingClinic": "Fysioterapi Valby",
				"Specialty":       "Fysioterapi",
			}),
		}},
	}
}

func gp() []capture {
	return []capture{
		{URL: "https://portal/api/OwnDoctor", Body: obj(map[string]any{
			"Organisation": obj(map[string]any{
				"Name":         "Lægerne Østergade",
				"Type":         1,
				"ClinicType":   "Kompagniskabspraksis",
				"Address":      "Østergade 12, 1. th",
				"Zipcode":      "2100",
				"City":         "København Ø",
				"PhoneNumbers": []any{"35381234"},
				"Website":      "https://laegerne-oestergade.dk",
				"Doctors": []any{
					obj(map[string]any{"Name": "Anne Holm", "Role": "Praktiserende læge", "Specialty": "Almen medicin", "SinceYear": 2009}),
					obj(map[string]any{"Name": "Peter Juhl", "Role": "Praktiserende læge", "Specialty": "Almen medicin", "SinceYear": 2015}),
				},
			}),
		})},
	}
}

func xray() []capture {
	return []capture{
		{URL: "https://portal/api/Imaging/Reports", Body: obj(map[string]any{
			"Reports": []any{
				obj(map[string]any{
					"Date":     "2023-02-27T00:00:00",
					"Name":     "Røntgen af thorax",
					"Producer": "Radiologisk afdeling, Hvidovre",
					"SubInvestigations": []any{
						obj(map[string]any{"Name": "Thorax, to planer"}),
					},
				}),
			},
		})},
	}
}

func diagnoses() []capture {
	return []capture{
		{URL: "https://portal/api/Diagnoses", Body: obj(map[string]any{
			"Diagnoses": []any{
				obj(map[string]any{
					"Organisation": "Lægerne Østergade",
					"LiveData":     true,
					"Code":         "DI10",
					"Name":         "Essentiel hypertension",
					"Date":         "2022-03-14T00:00:00",
				}),
				obj(map[string]any{
					"Organisation": "Hvidovre Hospital",
					"LiveData":     false,
					"Code":         "DN30",
					"Name":         "Cystitis",
					"Date":         "2023-06-12T00:00:00",
				}),
			},
		})},
	}
}
