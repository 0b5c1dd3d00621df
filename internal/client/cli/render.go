package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/gomate/internal/client/models"
	"github.com/dmitrijs2005/gomate/internal/common"
)

var (
	accent  = lipgloss.Color("#8BC34A")
	warning = lipgloss.Color("#FFC107")
	danger  = lipgloss.Color("#E53935")
	muted   = lipgloss.Color("#8A94A6")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	errorStyle   = lipgloss.NewStyle().Foreground(danger)
	starStyle    = lipgloss.NewStyle().Foreground(warning)
)

func star(on bool) string {
	if on {
		return starStyle.Render("★")
	}
	return " "
}

func heading(s string) string {
	return headingStyle.Render(s)
}

func renderDestination(d models.Destination, fav bool) string {
	return fmt.Sprintf("%s [%s] %s %s  %.1f",
		star(fav), d.ID, titleStyle.Render(d.Name), mutedStyle.Render("("+string(d.Category)+")"), d.Rating)
}

func renderDestinationDetails(d models.Destination, fav bool) string {
	var b strings.Builder
	fmt.Fprintln(&b, renderDestination(d, fav))
	desc := d.LongDescription
	if desc == "" {
		desc = d.Description
	}
	fmt.Fprintln(&b, "  "+desc)
	for _, kv := range [][2]string{
		{"Entry fee", d.EntryFee},
		{"Opening hours", d.OpeningHours},
		{"Best time to visit", d.BestTimeToVisit},
		{"Facilities", strings.Join(d.Facilities, ", ")},
		{"Activities", strings.Join(d.Activities, ", ")},
	} {
		if kv[1] != "" {
			fmt.Fprintf(&b, "  %s: %s\n", mutedStyle.Render(kv[0]), kv[1])
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderRoute(r models.Route, fav bool) string {
	return fmt.Sprintf("%s [%s] %s  %s → %s  %s, %s, %s, LKR %.0f",
		star(fav), r.ID, titleStyle.Render(r.Name), r.From, r.To,
		r.TransportMode, r.Duration, r.Distance, r.Price)
}

func renderSchedule(s models.Schedule, fav bool) string {
	service := strings.TrimSpace(s.TrainName + " " + s.TrainNumber)
	if service == "" {
		service = strings.TrimSpace(s.BusNumber + " " + s.BusType)
	}
	return fmt.Sprintf("%s [%s] %s → %s  %s  %s",
		star(fav), s.ID, s.DepartureTime, s.ArrivalTime, service, renderStatus(s.Status))
}

func renderStatus(st models.ScheduleStatus) string {
	switch st {
	case models.StatusDelayed:
		return lipgloss.NewStyle().Foreground(warning).Render(string(st))
	case models.StatusCancelled:
		return errorStyle.Render(string(st))
	default:
		return lipgloss.NewStyle().Foreground(accent).Render(string(st))
	}
}

// userMessage turns service errors into the short text shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidLogin):
		return common.ErrInvalidLogin.Error()
	case errors.Is(err, common.ErrDuplicateEmail):
		return common.ErrDuplicateEmail.Error()
	case errors.Is(err, common.ErrorNotFound):
		return "not found"
	case errors.Is(err, common.ErrCatalogUnavailable):
		return "catalog is unavailable, try again later"
	case errors.Is(err, common.ErrStorageFailure):
		return "local storage error"
	default:
		return "error: " + err.Error()
	}
}
