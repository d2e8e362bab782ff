package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/prodsched/internal/cli/formatter"
	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newResourceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resource",
		Aliases: []string{"res"},
		Short:   "Manage machines, people, tools and lines",
	}

	cmd.AddCommand(
		newResourceAddCmd(app),
		newResourceListCmd(app),
		newResourceEditCmd(app),
		newResourceRemoveCmd(app),
		newResourceAvailableCmd(app),
		newResourceLoadCmd(app),
		newResourceAvailabilityCmd(app),
	)

	return cmd
}

// resourceFields are the editable attributes shared by add and edit.
type resourceFields struct {
	name, rtype, department, capabilities, hours, daysOff, notes string
	capacity, cost                                               float64
}

func (f *resourceFields) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Resource name")
	fs.StringVar(&f.rtype, "type", string(domain.ResourceMachine), "Machine, Person, Tool or Line")
	fs.StringVar(&f.department, "department", "", "Owning department")
	fs.StringVar(&f.capabilities, "capabilities", "", "Comma-separated capabilities")
	fs.StringVar(&f.hours, "hours", "", "Working hours, e.g. 08:00-16:00")
	fs.StringVar(&f.daysOff, "days-off", "", "Days off, e.g. Saturday,Sunday")
	fs.StringVar(&f.notes, "notes", "", "Free-form notes")
	fs.Float64Var(&f.capacity, "capacity", 0, "Capacity in units of work")
	fs.Float64Var(&f.cost, "cost", 0, "Cost per hour")
}

// apply copies every flag the user actually set onto r.
func (f *resourceFields) apply(fs *pflag.FlagSet, r *domain.Resource) {
	if fs.Changed("name") {
		r.Name = f.name
	}
	if fs.Changed("type") {
		r.Type = domain.ResourceType(f.rtype)
	}
	if fs.Changed("department") {
		r.Department = f.department
	}
	if fs.Changed("capabilities") {
		r.Capabilities = f.capabilities
	}
	if fs.Changed("hours") {
		r.WorkingHours = f.hours
	}
	if fs.Changed("days-off") {
		r.DaysOff = f.daysOff
	}
	if fs.Changed("notes") {
		r.Notes = f.notes
	}
	if fs.Changed("capacity") {
		v := f.capacity
		r.Capacity = &v
	}
	if fs.Changed("cost") {
		v := f.cost
		r.CostPerHour = &v
	}
}

func newResourceAddCmd(app *App) *cobra.Command {
	var f resourceFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.name == "" && app.interactive() {
				if err := resourceForm(&f).Run(); err != nil {
					return err
				}
			}
			r := &domain.Resource{
				Name:       f.name,
				Type:       domain.ResourceType(f.rtype),
				Department: f.department,
			}
			f.apply(cmd.Flags(), r)
			if err := app.Resources.Create(cmd.Context(), r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created resource %s [%s]\n", formatter.Bold(r.Name), r.ID)
			return nil
		},
	}

	f.register(cmd.Flags())

	return cmd
}

func newResourceListCmd(app *App) *cobra.Command {
	var (
		all               bool
		rtype, department string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				resources []*domain.Resource
				err       error
			)
			switch {
			case rtype != "":
				rt, perr := domain.ParseResourceType(rtype)
				if perr != nil {
					return perr
				}
				resources, err = app.Resources.ListByType(ctx, rt)
			case department != "":
				resources, err = app.Resources.ListByDepartment(ctx, department)
			default:
				resources, err = app.Resources.List(ctx, !all)
			}
			if err != nil {
				return err
			}
			if len(resources) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No resources found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResourceList(resources))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive resources")
	cmd.Flags().StringVar(&rtype, "type", "", "Only active resources of this type")
	cmd.Flags().StringVar(&department, "department", "", "Only active resources of this department")
	cmd.MarkFlagsMutuallyExclusive("type", "department", "all")

	return cmd
}

func newResourceEditCmd(app *App) *cobra.Command {
	var (
		f      resourceFields
		active bool
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a resource's attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := resolveResource(ctx, app, args[0])
			if err != nil {
				return err
			}
			f.apply(cmd.Flags(), r)
			if cmd.Flags().Changed("active") {
				r.IsActive = active
			}
			if err := app.Resources.Update(ctx, r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated resource %s\n", formatter.Bold(r.Name))
			return nil
		},
	}

	f.register(cmd.Flags())
	cmd.Flags().BoolVar(&active, "active", true, "Set whether the resource can take new assignments")

	return cmd
}

func newResourceRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete a resource, or deactivate it while assignments reference it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := resolveResource(ctx, app, args[0])
			if err != nil {
				return err
			}
			outcome, err := app.Resources.Delete(ctx, r.ID)
			if err != nil {
				return err
			}
			switch outcome {
			case domain.ResourceDeactivated:
				fmt.Fprintf(cmd.OutOrStdout(), "Resource %s still has assignments; deactivated instead of deleted\n", formatter.Bold(r.Name))
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted resource %s\n", formatter.Bold(r.Name))
			}
			return nil
		},
	}
}

func newResourceAvailableCmd(app *App) *cobra.Command {
	var start, end time.Time

	cmd := &cobra.Command{
		Use:   "available",
		Short: "List active resources not fully booked in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := app.Availability.GetAvailableResources(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			if len(resources) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No resources available.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResourceList(resources))
			return nil
		},
	}

	timeVar(cmd.Flags(), &start, "start", "Window start")
	timeVar(cmd.Flags(), &end, "end", "Window end")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newResourceLoadCmd(app *App) *cobra.Command {
	var from, to time.Time

	cmd := &cobra.Command{
		Use:   "load ID",
		Short: "Show a resource's daily load",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := resolveResource(ctx, app, args[0])
			if err != nil {
				return err
			}
			days, err := app.Availability.GetResourceLoadDetail(ctx, r.ID, from, to)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLoad(r.Name, days))
			return nil
		},
	}

	timeVar(cmd.Flags(), &from, "from", "First day")
	timeVar(cmd.Flags(), &to, "to", "Last day (inclusive)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newResourceAvailabilityCmd(app *App) *cobra.Command {
	var (
		from, to time.Time
		resource string
	)

	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Show booked slots per resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			resourceID := ""
			if resource != "" {
				r, err := resolveResource(ctx, app, resource)
				if err != nil {
					return err
				}
				resourceID = r.ID
			}
			avail, err := app.Availability.GetResourceAvailability(ctx, from, to, resourceID)
			if err != nil {
				return err
			}
			if len(avail) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No resources found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAvailability(avail))
			return nil
		},
	}

	timeVar(cmd.Flags(), &from, "from", "Range start")
	timeVar(cmd.Flags(), &to, "to", "Range end")
	cmd.Flags().StringVar(&resource, "resource", "", "Limit to one resource (id, prefix or name)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
