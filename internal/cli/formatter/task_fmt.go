package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/prodsched/internal/app"
	"github.com/alexanderramin/prodsched/internal/domain"
)

// FormatTaskList renders tasks as a table sorted by planned start.
func FormatTaskList(tasks []*domain.Task) string {
	sorted := append([]*domain.Task(nil), tasks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PlannedStart.Before(sorted[j].PlannedStart)
	})

	headers := []string{"ID", "TITLE", "ORDER", "STATUS", "PRI", "WINDOW", "DONE"}
	rows := make([][]string, 0, len(sorted))
	for _, t := range sorted {
		rows = append(rows, []string{
			TruncID(t.ID),
			t.Title,
			orDash(t.OrderID),
			StatusPill(t.Status),
			fmt.Sprintf("P%d", t.Priority),
			FormatWindow(t.PlannedStart, t.PlannedEnd),
			fmt.Sprintf("%d%%", t.CompletionPct),
		})
	}
	return RenderTable(headers, rows)
}

// FormatTaskDetail renders one task and its bookings. resourceNames maps
// resource ids to display names; unknown ids fall back to a short id.
func FormatTaskDetail(detail *app.TaskDetail, resourceNames map[string]string) string {
	t := detail.Task
	var b strings.Builder

	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-12s", label)), value)
	}
	field("ID", t.ID)
	field("Order", orDash(t.OrderID))
	field("Type", orDash(t.Type))
	field("Status", StatusPill(t.Status))
	field("Priority", fmt.Sprintf("P%d", t.Priority))
	field("Planned", FormatWindow(t.PlannedStart, t.PlannedEnd))
	if t.ActualStart != nil {
		field("Started", FormatTime(*t.ActualStart))
	}
	if t.ActualEnd != nil {
		field("Finished", FormatTime(*t.ActualEnd))
	}
	field("Estimate", FormatMinutes(t.EstimatedDurationMin))
	if t.ActualDurationMin != nil {
		field("Actual", FormatMinutes(*t.ActualDurationMin))
	}
	field("Complete", fmt.Sprintf("%d%%", t.CompletionPct))
	if len(t.PredecessorIDs) > 0 {
		short := make([]string, len(t.PredecessorIDs))
		for i, id := range t.PredecessorIDs {
			short[i] = TruncID(id)
		}
		field("After", strings.Join(short, ", "))
	}
	if t.Notes != "" {
		field("Notes", t.Notes)
	}

	b.WriteString("\n")
	if len(detail.Assignments) == 0 {
		b.WriteString(Dim("No resources assigned."))
	} else {
		b.WriteString(Header("Resources") + "\n")
		b.WriteString(FormatAssignments(detail.Assignments, resourceNames))
	}
	return RenderBox(t.Title, strings.TrimRight(b.String(), "\n"))
}

func FormatAssignments(assignments []*domain.Assignment, resourceNames map[string]string) string {
	headers := []string{"ID", "RESOURCE", "WINDOW", "ALLOC"}
	rows := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		name, ok := resourceNames[a.ResourceID]
		if !ok {
			name = TruncID(a.ResourceID)
		}
		rows = append(rows, []string{TruncID(a.ID), name, FormatWindow(a.Start, a.End), FormatPct(a.AllocationPct)})
	}
	return RenderTable(headers, rows)
}

// FormatCalendar groups tasks under the UTC day they start on.
func FormatCalendar(tasks []*domain.Task) string {
	byDay := make(map[string][]*domain.Task)
	for _, t := range tasks {
		day := t.PlannedStart.UTC().Format(app.DateLayout)
		byDay[day] = append(byDay[day], t)
	}
	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)

	var b strings.Builder
	for i, day := range days {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(day) + "\n")
		dayTasks := byDay[day]
		sort.SliceStable(dayTasks, func(i, j int) bool {
			return dayTasks[i].PlannedStart.Before(dayTasks[j].PlannedStart)
		})
		for _, t := range dayTasks {
			fmt.Fprintf(&b, "  %s–%s  %s  %s\n",
				t.PlannedStart.UTC().Format("15:04"),
				t.PlannedEnd.UTC().Format("15:04"),
				StatusPill(t.Status),
				t.Title)
		}
	}
	return b.String()
}
