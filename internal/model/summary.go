package model

import "time"

// DomainCount is the number of rows imported for one destination table.
type DomainCount struct {
	Domain string
	Rows   int64
}

// ImportSummary captures metrics from a single import run. Counts preserve
// the fixed importer order, zeros included.
type ImportSummary struct {
	ImportBatchID string
	Counts        []DomainCount
	DurationTotal time.Duration
}

// Add appends a domain count in run order.
func (s *ImportSummary) Add(domain string, rows int64) {
	s.Counts = append(s.Counts, DomainCount{Domain: domain, Rows: rows})
}

// Total returns the sum of all domain counts.
func (s *ImportSummary) Total() int64 {
	var n int64
	for _, c := range s.Counts {
		n += c.Rows
	}
	return n
}
