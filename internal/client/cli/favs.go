package cli

import (
	"context"
	"fmt"
	"strings"
)

const favUsage = "fav [add|rm dest|route|sched <id> | clear]"

// Favourites lists or edits the favourite collections. Editing requires a
// logged-in user.
func (a *App) Favourites(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printFavourites()
		return nil
	}

	if !a.isLoggedIn() {
		a.println(errorStyle.Render("Please log in to manage favourites"))
		return errNotLoggedIn
	}

	switch args[0] {
	case "clear":
		if err := a.favourites.ClearAll(ctx); err != nil {
			return a.fail(ctx, "clear favourites", err)
		}
		a.println("Favourites cleared")
		return nil
	case "add", "rm":
		if len(args) != 3 {
			return a.usage(favUsage)
		}
		return a.editFavourite(ctx, args[0] == "add", args[1], args[2])
	default:
		return a.usage(favUsage)
	}
}

func (a *App) editFavourite(ctx context.Context, add bool, kind, id string) error {
	var err error

	switch kind {
	case "dest", "destination":
		if !add {
			err = a.favourites.RemoveDestination(ctx, id)
			break
		}
		d, lerr := a.catalog.Destination(ctx, id)
		if lerr != nil {
			return a.fail(ctx, "destination", lerr)
		}
		err = a.favourites.AddDestination(ctx, d)

	case "route":
		if !add {
			err = a.favourites.RemoveRoute(ctx, id)
			break
		}
		r, lerr := a.catalog.Route(ctx, id)
		if lerr != nil {
			return a.fail(ctx, "route", lerr)
		}
		err = a.favourites.AddRoute(ctx, r)

	case "sched", "schedule":
		if !add {
			err = a.favourites.RemoveSchedule(ctx, id)
			break
		}
		s, lerr := a.catalog.Schedule(ctx, id)
		if lerr != nil {
			return a.fail(ctx, "schedule", lerr)
		}
		r, lerr := a.catalog.Route(ctx, s.RouteID)
		if lerr != nil {
			return a.fail(ctx, "route", lerr)
		}
		err = a.favourites.AddSchedule(ctx, s, r)

	default:
		return a.usage(favUsage)
	}

	if err != nil {
		return a.fail(ctx, "favourite update", err)
	}
	if add {
		a.println(starStyle.Render("★") + " saved")
	} else {
		a.println("removed")
	}
	return nil
}

func (a *App) printFavourites() {
	if err := a.favourites.LastError(); err != nil {
		a.println(errorStyle.Render("some favourites could not be loaded"))
	}

	dests := a.favourites.Destinations()
	routes := a.favourites.Routes()
	schedules := a.favourites.Schedules()

	if len(dests)+len(routes)+len(schedules) == 0 {
		a.println(mutedStyle.Render("No favourites yet"))
		return
	}

	if len(dests) > 0 {
		a.println(heading(fmt.Sprintf("Destinations (%d)", len(dests))))
		for _, f := range dests {
			a.println(renderDestination(f.Destination, true))
		}
	}
	if len(routes) > 0 {
		a.println(heading(fmt.Sprintf("Routes (%d)", len(routes))))
		for _, f := range routes {
			a.println(renderRoute(f.Route, true))
		}
	}
	if len(schedules) > 0 {
		a.println(heading(fmt.Sprintf("Schedules (%d)", len(schedules))))
		for _, f := range schedules {
			a.println(renderSchedule(f.Schedule, true) + mutedStyle.Render("  "+f.Route.Name))
		}
	}
}

// Recent prints the recently viewed routes, or clears them.
func (a *App) Recent(ctx context.Context, args []string) error {
	if len(args) > 0 {
		if strings.ToLower(args[0]) != "clear" {
			return a.usage("recent [clear]")
		}
		if err := a.recent.Clear(ctx); err != nil {
			return a.fail(ctx, "clear recent", err)
		}
		a.println("Recent routes cleared")
		return nil
	}

	routes, err := a.recent.List(ctx)
	if err != nil {
		return a.fail(ctx, "recent routes", err)
	}
	a.printRoutes("Recently viewed", routes)
	return nil
}
