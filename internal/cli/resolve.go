package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/prodsched/internal/domain"
)

// resolveID matches input against ids: exact match first, then a unique
// prefix. Short ids printed by list commands resolve this way.
func resolveID(kind, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	tasks, err := app.Tasks.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return resolveID("task", input, ids)
}

// resolveResource accepts a resource id, id prefix or exact name
// (case-insensitive). Inactive resources are included.
func resolveResource(ctx context.Context, app *App, input string) (*domain.Resource, error) {
	resources, err := app.Resources.List(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, r := range resources {
		if strings.EqualFold(r.Name, input) {
			return r, nil
		}
	}
	ids := make([]string, len(resources))
	byID := make(map[string]*domain.Resource, len(resources))
	for i, r := range resources {
		ids[i] = r.ID
		byID[r.ID] = r
	}
	id, err := resolveID("resource", input, ids)
	if err != nil {
		return nil, err
	}
	return byID[id], nil
}

func resourceNames(ctx context.Context, app *App) (map[string]string, error) {
	resources, err := app.Resources.List(ctx, false)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(resources))
	for _, r := range resources {
		names[r.ID] = r.Name
	}
	return names, nil
}
