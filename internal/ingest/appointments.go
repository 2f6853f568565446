package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Iron-max114/ai-laegens-bord/internal/capture"
	"github.com/Iron-max114/ai-laegens-bord/internal/db"
	"github.com/Iron-max114/ai-laegens-bord/internal/model"
)

func importAppointments(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, store *capture.Store, batchID uuid.UUID) ([]int64, error) {
	cap := locate(log, store, "appointments")
	if cap == nil {
		return []int64{0}, nil
	}

	var rows []*model.AppointmentRow
	for _, appt := range capture.Arr(cap.Body) {
		rows = append(rows, &model.AppointmentRow{
			ImportBatchID:   batchID,
			Title:           capture.Str(appt, "Title"),
			StartTime:       capture.Str(appt, "StartTime"),
			EndTime:         capture.Str(appt, "EndTime"),
			Organisation:    capture.Str(appt, "Organisation"),
			Unit:            capture.Str(appt, "Unit"),
			Address:         formatAddress(capture.Field(appt, "Address")),
			Phone:           firstPhone(capture.Field(appt, "PhoneNumbers")),
			AppointmentType: capture.Str(appt, "Type"),
		})
	}

	n, err := db.CopyRows(ctx, pool, pgx.Identifier{"journal", "appointments"}, model.AppointmentColumns(), rows)
	if err != nil {
		return nil, fmt.Errorf("insert appointments: %w", err)
	}
	return []int64{n}, nil
}

// formatAddress joins an address object into "street, zipcode city".
func formatAddress(addr any) *string {
	street := capture.Str(addr, "Street")
	zipcode := capture.Str(addr, "Zipcode")
	city := capture.Str(addr, "City")

	var town string
	switch {
	case zipcode != nil && city != nil:
		town = *zipcode + " " + *city
	case zipcode != nil:
		town = *zipcode
	case city != nil:
		town = *city
	}

	var parts []string
	if street != nil {
		parts = append(parts, *street)
	}
	if town != "" {
		parts = append(parts, town)
	}
	if len(parts) == 0 {
		return nil
	}
	s := strings.Join(parts, ", ")
	return &s
}

// firstPhone returns the first listed phone number, if any.
func firstPhone(numbers any) *string {
	list := capture.Arr(numbers)
	if len(list) == 0 {
		return nil
	}
	return textOf(list[0])
}
