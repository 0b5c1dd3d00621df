package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gomate/internal/client/models"
)

var errUsage = errors.New("usage")

func (a *App) usage(text string) error {
	a.println("Usage: " + text)
	return errUsage
}

// Destinations lists all destinations, or the popular or suggested subset.
func (a *App) Destinations(ctx context.Context, args []string) error {
	var (
		list  []models.Destination
		err   error
		title = "Destinations"
	)

	switch {
	case len(args) == 0:
		list, err = a.catalog.Destinations(ctx)
	case args[0] == "popular":
		title = "Popular destinations"
		list, err = a.catalog.PopularDestinations(ctx)
	case args[0] == "suggested":
		title = "Suggested for you"
		list, err = a.catalog.SuggestedDestinations(ctx)
	default:
		return a.usage("destinations [popular|suggested]")
	}
	if err != nil {
		return a.fail(ctx, "destinations", err)
	}

	a.printDestinations(title, list)
	return nil
}

func (a *App) printDestinations(title string, list []models.Destination) {
	a.println(heading(title))
	if len(list) == 0 {
		a.println(mutedStyle.Render("  nothing found"))
		return
	}
	for _, d := range list {
		a.println(renderDestination(d, a.favourites.IsDestinationFavourite(d.ID)))
	}
}

func (a *App) ShowDestination(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("destination <id>")
	}
	d, err := a.catalog.Destination(ctx, args[0])
	if err != nil {
		return a.fail(ctx, "destination", err)
	}
	a.println(renderDestinationDetails(d, a.favourites.IsDestinationFavourite(d.ID)))
	return nil
}

// Search matches destinations by name, description or category.
func (a *App) Search(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")
	if query == "" {
		return a.usage("search <text>")
	}
	list, err := a.catalog.SearchDestinations(ctx, query)
	if err != nil {
		return a.fail(ctx, "search", err)
	}
	a.printDestinations(fmt.Sprintf("Results for %q", query), list)
	return nil
}

func (a *App) Routes(ctx context.Context, args []string) error {
	var (
		list  []models.Route
		err   error
		title = "Routes"
	)

	switch {
	case len(args) == 0:
		list, err = a.catalog.Routes(ctx)
	case args[0] == "popular":
		title = "Popular routes"
		list, err = a.catalog.PopularRoutes(ctx)
	default:
		return a.usage("routes [popular]")
	}
	if err != nil {
		return a.fail(ctx, "routes", err)
	}

	a.printRoutes(title, list)
	return nil
}

func (a *App) printRoutes(title string, list []models.Route) {
	a.println(heading(title))
	if len(list) == 0 {
		a.println(mutedStyle.Render("  nothing here yet"))
		return
	}
	for _, r := range list {
		a.println(renderRoute(r, a.favourites.IsRouteFavourite(r.ID)))
	}
}

// ShowRoute prints a route with its departures. Opening a route puts it on
// the recently viewed list.
func (a *App) ShowRoute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("route <id>")
	}
	details, err := a.catalog.OpenRoute(ctx, args[0])
	if err != nil {
		return a.fail(ctx, "route", err)
	}

	a.println(renderRoute(details.Route, a.favourites.IsRouteFavourite(details.Route.ID)))
	if len(details.Schedules) == 0 {
		a.println(mutedStyle.Render("  no scheduled departures"))
		return nil
	}
	a.println(heading("Departures"))
	for _, s := range details.Schedules {
		a.println(renderSchedule(s, a.favourites.IsScheduleFavourite(s.ID)))
	}
	return nil
}

func (a *App) ShowSchedule(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("schedule <id>")
	}
	s, err := a.catalog.Schedule(ctx, args[0])
	if err != nil {
		return a.fail(ctx, "schedule", err)
	}
	a.println(renderSchedule(s, a.favourites.IsScheduleFavourite(s.ID)))
	if r, err := a.catalog.Route(ctx, s.RouteID); err == nil {
		a.println(mutedStyle.Render("  on " + r.Name))
	}
	return nil
}

func (a *App) Stops(ctx context.Context) error {
	stops, err := a.catalog.BusStops(ctx)
	if err != nil {
		return a.fail(ctx, "bus stops", err)
	}
	a.println(heading("Bus stops"))
	for _, s := range stops {
		a.println(fmt.Sprintf("  [%s] %s %s  %s", s.ID, s.Code, s.Name, mutedStyle.Render(s.City)))
	}
	return nil
}

func (a *App) Stations(ctx context.Context) error {
	stations, err := a.catalog.TrainStations(ctx)
	if err != nil {
		return a.fail(ctx, "train stations", err)
	}
	a.println(heading("Train stations"))
	for _, s := range stations {
		a.println(fmt.Sprintf("  [%s] %s %s  %s", s.ID, s.Code, s.Name, mutedStyle.Render(s.City)))
	}
	return nil
}
