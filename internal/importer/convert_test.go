package importer

import (
	"testing"
	"time"

	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var importActor = domain.Actor{ID: "u-import", Name: "Importer"}

func TestConvert_MinimalPlan(t *testing.T) {
	now := time.Date(2023, 1, 10, 9, 0, 0, 0, time.UTC)

	plan, err := Convert(validMinimalPlan(), importActor, now)
	require.NoError(t, err)

	require.Len(t, plan.Resources, 1)
	res := plan.Resources[0]
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, domain.ResourceMachine, res.Type)
	assert.True(t, res.IsActive)

	require.Len(t, plan.Tasks, 1)
	task := plan.Tasks[0]
	assert.Equal(t, domain.TaskPlanned, task.Status)
	assert.Equal(t, domain.DefaultTaskPriority, task.Priority)
	assert.Equal(t, 240, task.EstimatedDurationMin)
	assert.Equal(t, importActor, task.CreatedBy)
	assert.Equal(t, now, task.CreatedAt)

	require.Len(t, plan.Assignments, 1)
	a := plan.Assignments[0]
	assert.Equal(t, task.ID, a.TaskID)
	assert.Equal(t, res.ID, a.ResourceID)
	assert.Equal(t, task.PlannedStart, a.Start)
	assert.Equal(t, task.PlannedEnd, a.End)
	assert.Equal(t, domain.DefaultAllocationPct, a.AllocationPct)
}

func TestConvert_ForwardPredecessorAndOverrides(t *testing.T) {
	in := &PlanImport{
		Resources: []ResourceImport{{Ref: "kim", Name: "Kim", Type: "Person"}},
		Tasks: []TaskImport{
			{Ref: "weld", Title: "Weld", Start: "2023-01-16 14:00", End: "2023-01-16 16:00", PredecessorRefs: []string{"cut"}},
			{Ref: "cut", Title: "Cut", Priority: ptrInt(1), EstimatedMin: ptrInt(90), Start: "2023-01-16 08:00", End: "2023-01-16 12:00"},
		},
		Assignments: []AssignmentImport{
			{TaskRef: "weld", ResourceRef: "kim", Start: "2023-01-16 15:00", AllocationPct: ptrFloat(50)},
		},
	}
	require.Empty(t, ValidatePlan(in))

	plan, err := Convert(in, importActor, time.Now())
	require.NoError(t, err)

	weld, cut := plan.Tasks[0], plan.Tasks[1]
	assert.Equal(t, []string{cut.ID}, weld.PredecessorIDs)
	assert.Equal(t, 1, cut.Priority)
	assert.Equal(t, 90, cut.EstimatedDurationMin)
	assert.NoError(t, weld.Validate())

	a := plan.Assignments[0]
	assert.True(t, time.Date(2023, 1, 16, 15, 0, 0, 0, time.UTC).Equal(a.Start))
	assert.True(t, weld.PlannedEnd.Equal(a.End))
	assert.Equal(t, 50.0, a.AllocationPct)
}

func TestConvert_UnknownRefs(t *testing.T) {
	in := validMinimalPlan()
	in.Assignments[0].ResourceRef = "ghost"

	_, err := Convert(in, importActor, time.Now())
	assert.ErrorContains(t, err, `resource_ref "ghost" not found`)
}
