package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/prodsched/internal/app"
	"github.com/alexanderramin/prodsched/internal/domain"
)

func FormatConflicts(conflicts []domain.Conflict) string {
	if len(conflicts) == 0 {
		return StyleGreen.Render("No conflicts.")
	}
	headers := []string{"RESOURCE", "TASK", "WITH", "OVERLAP", "TOTAL"}
	rows := make([][]string, 0, len(conflicts))
	for _, c := range conflicts {
		rows = append(rows, []string{
			c.ResourceName,
			TruncID(c.TaskID),
			c.ConflictingTaskTitle,
			FormatWindow(c.Start, c.End),
			StyleRed.Render(FormatPct(c.TotalAllocation)),
		})
	}
	return StyleYellow.Render(fmt.Sprintf("▲ %d conflict(s)", len(conflicts))) + "\n" + RenderTable(headers, rows)
}

func FormatAssignResult(resp *app.AssignResourceResponse, resourceName string) string {
	verb := "Updated"
	if resp.Created {
		verb = "Assigned"
	}
	a := resp.Assignment
	line := fmt.Sprintf("%s %s to task %s at %s for %s",
		verb, Bold(resourceName), TruncID(a.TaskID), FormatPct(a.AllocationPct), FormatWindow(a.Start, a.End))
	if !resp.HasConflicts {
		return line
	}
	return line + "\n" + FormatConflicts(resp.Conflicts)
}

func FormatReschedule(resp *app.RescheduleResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Moved %s %s to %s\n",
		Bold(resp.Task.Title), Dim(FormatDelta(resp.Delta)), FormatWindow(resp.Task.PlannedStart, resp.Task.PlannedEnd))
	for _, a := range resp.Assignments {
		fmt.Fprintf(&b, "  %s %s\n", TruncID(a.ResourceID), FormatWindow(a.Start, a.End))
	}
	if resp.HasConflicts {
		b.WriteString(FormatConflicts(resp.Conflicts))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatImportResult lists the ids created for each ref in the file.
func FormatImportResult(res *app.ImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imported %d resource(s), %d task(s), %d assignment(s)\n",
		len(res.ResourceIDs), len(res.TaskIDs), res.Assignments)

	rows := make([][]string, 0, len(res.ResourceIDs)+len(res.TaskIDs))
	for _, ref := range sortedKeys(res.ResourceIDs) {
		rows = append(rows, []string{"resource", ref, TruncID(res.ResourceIDs[ref])})
	}
	for _, ref := range sortedKeys(res.TaskIDs) {
		rows = append(rows, []string{"task", ref, TruncID(res.TaskIDs[ref])})
	}
	if len(rows) > 0 {
		b.WriteString(RenderTable([]string{"KIND", "REF", "ID"}, rows))
		b.WriteString("\n")
	}
	if res.HasConflicts {
		b.WriteString(FormatConflicts(res.Conflicts))
	}
	return strings.TrimRight(b.String(), "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
