package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/m04kA/realty-intake-service/internal/domain"
	"github.com/m04kA/realty-intake-service/internal/integrations/intakeapi"
	"github.com/m04kA/realty-intake-service/internal/scheduling"
)

const createdAtLayout = "2006-01-02 15:04"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

	// цвета бейджей статусов, как на панели администратора
	statusColors = map[string]lipgloss.Color{
		string(domain.StatusPending):       "11",
		string(domain.StatusConfirmed):     "10",
		string(domain.StatusCompleted):     "12",
		string(domain.StatusCancelled):     "9",
		string(domain.LeadStatusNew):       "12",
		string(domain.LeadStatusContacted): "11",
		string(domain.LeadStatusQualified): "10",
	}
)

func statusBadge(status string) string {
	color, ok := statusColors[status]
	if !ok {
		color = "8"
	}
	return lipgloss.NewStyle().Foreground(color).Render(status)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func renderBookings(bookings []domain.Booking) string {
	title := titleStyle.Render(fmt.Sprintf("Bookings (%d)", len(bookings)))
	if len(bookings) == 0 {
		return title + "\n" + mutedStyle.Render("No bookings yet")
	}

	t := newTable("ID", "Client", "Service", "Date", "Status", "Created")
	for _, b := range bookings {
		t.Row(
			b.ID,
			strings.TrimSpace(b.FirstName+" "+b.LastName)+"\n"+mutedStyle.Render(b.Email),
			string(b.ServiceType),
			b.SelectedDate+" "+b.SelectedTime,
			statusBadge(string(b.Status)),
			b.CreatedAt.Local().Format(createdAtLayout),
		)
	}
	return title + "\n" + t.String()
}

func renderLeads(leads []domain.Lead) string {
	title := titleStyle.Render(fmt.Sprintf("Chatbot Leads (%d)", len(leads)))
	if len(leads) == 0 {
		return title + "\n" + mutedStyle.Render("No leads yet")
	}

	t := newTable("ID", "Contact", "Interest", "Messages", "Status", "Created")
	for _, l := range leads {
		t.Row(
			l.ID,
			l.Name+"\n"+mutedStyle.Render(l.Email),
			l.Interest,
			strconv.Itoa(len(l.ConversationHistory)),
			statusBadge(string(l.Status)),
			l.CreatedAt.Local().Format(createdAtLayout),
		)
	}
	return title + "\n" + t.String()
}

func renderStats(s *intakeapi.Stats) string {
	t := newTable("Total Bookings", "Pending", "Total Leads", "New Leads").
		Row(
			strconv.Itoa(s.TotalBookings),
			strconv.Itoa(s.PendingBookings),
			strconv.Itoa(s.TotalLeads),
			strconv.Itoa(s.NewLeads),
		)
	return titleStyle.Render("Dashboard") + "\n" + t.String()
}

func renderUpdated(id, status string) string {
	return okStyle.Render("Updated") + " " + id + " -> " + statusBadge(status)
}

func renderConfirmation(c *scheduling.Confirmation) string {
	return okStyle.Render("Booking Confirmed!") + "\n" +
		c.Summary() + "\n" +
		mutedStyle.Render("Booking ID: "+c.BookingID)
}
