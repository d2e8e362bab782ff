package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/prodsched/internal/app"
	"github.com/alexanderramin/prodsched/internal/domain"
)

const loadBarWidth = 20

func FormatResourceList(resources []*domain.Resource) string {
	headers := []string{"ID", "NAME", "TYPE", "DEPARTMENT", "HOURS", "STATE"}
	rows := make([][]string, 0, len(resources))
	for _, r := range resources {
		rows = append(rows, []string{
			TruncID(r.ID),
			r.Name,
			ResourceTypeBadge(r.Type),
			orDash(r.Department),
			orDash(r.WorkingHours),
			ActiveBadge(r.IsActive),
		})
	}
	return RenderTable(headers, rows)
}

// FormatLoad renders one bar per day.
func FormatLoad(resourceName string, days []app.DayLoad) string {
	var b strings.Builder
	b.WriteString(Header("Load: "+resourceName) + "\n")
	for _, d := range days {
		fmt.Fprintf(&b, "%s  %s\n", d.Date, RenderLoadBar(d.Load, d.Raw, loadBarWidth))
	}
	return b.String()
}

// FormatAvailability lists each resource's booked slots; resources with
// nothing booked say so.
func FormatAvailability(avail []app.ResourceAvailability) string {
	var b strings.Builder
	for i, ra := range avail {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Bold(ra.ResourceName) + "\n")
		if len(ra.Slots) == 0 {
			b.WriteString("  " + StyleGreen.Render("free") + "\n")
			continue
		}
		for _, s := range ra.Slots {
			fmt.Fprintf(&b, "  %s  %s  %s\n", FormatWindow(s.Start, s.End), FormatPct(s.AllocationPct), s.TaskTitle)
		}
	}
	return b.String()
}
