package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/dtg01100/vacation-calendar-updater/internal/vacation"
)

// ExportICS renders a batch as an iCalendar document for download.
func (uc *implUseCase) ExportICS(ctx context.Context, batchID string) (vacation.ExportICSOutput, error) {
	b, ok := uc.lookupBatch(batchID)
	if !ok {
		return vacation.ExportICSOutput{}, vacation.ErrBatchNotFound
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//vacation-calendar-updater//EN")

	now := time.Now().UTC()
	for _, ev := range b.Events {
		ve := cal.AddEvent(fmt.Sprintf("%s@vacation-calendar-updater", ev.ID))
		ve.SetDtStampTime(now)
		ve.SetStartAt(ev.StartTime)
		ve.SetEndAt(ev.EffectiveEnd())
		ve.SetSummary(ev.Summary)
		if !ev.CreatedAt.IsZero() {
			ve.SetCreatedTime(ev.CreatedAt)
		}
	}

	uc.l.Debugf(ctx, "ExportICS: batch=%s events=%d", batchID, b.EventCount())

	return vacation.ExportICSOutput{
		Filename: icsFilename(b.Summary()),
		Body:     cal.Serialize(),
	}, nil
}

// icsFilename derives a safe download name from the batch summary.
func icsFilename(summary string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		}
		return -1
	}, summary)
	name = strings.Trim(name, "-")
	if name == "" {
		name = "vacation"
	}
	return name + ".ics"
}
