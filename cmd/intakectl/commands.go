package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/realty-intake-service/internal/domain"
	"github.com/m04kA/realty-intake-service/internal/integrations/intakeapi"
	"github.com/m04kA/realty-intake-service/internal/scheduling"
)

// adminClient операции API, которые использует консоль
type adminClient interface {
	scheduling.BookingClient
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	ListLeads(ctx context.Context) ([]domain.Lead, error)
	UpdateBookingStatus(ctx context.Context, id, status string) (*domain.Booking, error)
	UpdateLeadStatus(ctx context.Context, id, status string) (*domain.Lead, error)
	Stats(ctx context.Context) (*intakeapi.Stats, error)
	Health(ctx context.Context) (*intakeapi.Health, error)
}

type command struct {
	summary string
	run     func(ctx context.Context, client adminClient, args []string, out io.Writer) error
}

var commandOrder = []string{"list", "set-status", "stats", "book", "health"}

var commands = map[string]command{
	"list":       {summary: "list bookings and leads, newest first", run: runList},
	"set-status": {summary: "set status: set-status <bookings|leads> <id> <status>", run: runSetStatus},
	"stats":      {summary: "show dashboard counters", run: runStats},
	"book":       {summary: "book a consultation from flags", run: runBook},
	"health":     {summary: "check that the service is up", run: runHealth},
}

func runList(ctx context.Context, client adminClient, args []string, out io.Writer) error {
	var (
		kind   string
		status string
		asJSON bool
	)
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	fs.StringVarP(&kind, "kind", "k", "all", "bookings, leads or all")
	fs.StringVarP(&status, "status", "s", "", "show only records with this status")
	fs.BoolVar(&asJSON, "json", false, "output as JSON")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if kind != "all" && kind != "bookings" && kind != "leads" {
		return fmt.Errorf("%w: --kind must be bookings, leads or all", errUsage)
	}

	var (
		bookings []domain.Booking
		leads    []domain.Lead
	)

	// Обе вкладки панели загружаются параллельно
	g, gctx := errgroup.WithContext(ctx)
	if kind != "leads" {
		g.Go(func() error {
			var err error
			bookings, err = client.ListBookings(gctx)
			return err
		})
	}
	if kind != "bookings" {
		g.Go(func() error {
			var err error
			leads, err = client.ListLeads(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if status != "" {
		bookings = filterBookings(bookings, status)
		leads = filterLeads(leads, status)
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{"bookings": bookings, "leads": leads})
	}

	if kind != "leads" {
		fmt.Fprintln(out, renderBookings(bookings))
	}
	if kind != "bookings" {
		fmt.Fprintln(out, renderLeads(leads))
	}
	return nil
}

func runSetStatus(ctx context.Context, client adminClient, args []string, out io.Writer) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: set-status <bookings|leads> <id> <status>", errUsage)
	}
	kind, id, status := args[0], args[1], args[2]

	switch kind {
	case "bookings", "booking":
		b, err := client.UpdateBookingStatus(ctx, id, status)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, renderUpdated(b.ID, string(b.Status)))
	case "leads", "lead":
		l, err := client.UpdateLeadStatus(ctx, id, status)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, renderUpdated(l.ID, string(l.Status)))
	default:
		return fmt.Errorf("%w: unknown record kind %q", errUsage, kind)
	}
	return nil
}

func runStats(ctx context.Context, client adminClient, args []string, out io.Writer) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected argument %s", errUsage, args[0])
	}
	stats, err := client.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderStats(stats))
	return nil
}

func runHealth(ctx context.Context, client adminClient, _ []string, out io.Writer) error {
	h, err := client.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s at %s\n", h.Status, h.Timestamp.Format(time.RFC3339))
	return nil
}

func runBook(ctx context.Context, client adminClient, args []string, out io.Writer) error {
	return book(ctx, client, args, out, time.Now())
}

func book(ctx context.Context, client adminClient, args []string, out io.Writer, today time.Time) error {
	var form scheduling.Form

	fs := pflag.NewFlagSet("book", pflag.ContinueOnError)
	fs.StringVar(&form.SelectedDate, "date", "", "consultation date, YYYY-MM-DD")
	fs.StringVar(&form.SelectedTime, "time", "", `time slot, e.g. "10:00 AM"`)
	fs.StringVar(&form.FirstName, "first-name", "", "first name")
	fs.StringVar(&form.LastName, "last-name", "", "last name")
	fs.StringVar(&form.Email, "email", "", "email")
	fs.StringVar(&form.Phone, "phone", "", "phone")
	fs.StringVar(&form.ServiceType, "service", "", "buy, sell, invest, rent or consultation")
	fs.StringVar(&form.PropertyType, "property", "", "property type")
	fs.StringVar(&form.Budget, "budget", "", "budget range")
	fs.StringVar(&form.Message, "message", "", "additional information")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	// Календарь и список слотов страницы записи
	if form.SelectedDate != "" {
		date, err := time.ParseInLocation(domain.DateFormat, form.SelectedDate, today.Location())
		if err != nil {
			return fmt.Errorf("%w: invalid --date %q", scheduling.ErrValidation, form.SelectedDate)
		}
		if !scheduling.IsBookableDate(date, today) {
			return fmt.Errorf("%w: %s is not available for booking", scheduling.ErrValidation, form.SelectedDate)
		}
	}
	if form.SelectedTime != "" && !scheduling.IsTimeSlot(form.SelectedTime) {
		return fmt.Errorf("%w: unknown time slot %q", scheduling.ErrValidation, form.SelectedTime)
	}

	confirmation, err := form.Submit(ctx, client)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, renderConfirmation(confirmation))
	return nil
}

func filterBookings(in []domain.Booking, status string) []domain.Booking {
	out := make([]domain.Booking, 0, len(in))
	for _, b := range in {
		if string(b.Status) == status {
			out = append(out, b)
		}
	}
	return out
}

func filterLeads(in []domain.Lead, status string) []domain.Lead {
	out := make([]domain.Lead, 0, len(in))
	for _, l := range in {
		if string(l.Status) == status {
			out = append(out, l)
		}
	}
	return out
}
