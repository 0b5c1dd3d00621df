package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gomate/internal/logging"
)

// printlnFn is a test seam for REPL output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	Passwd(ctx context.Context) error

	Destinations(ctx context.Context, args []string) error
	ShowDestination(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Routes(ctx context.Context, args []string) error
	ShowRoute(ctx context.Context, args []string) error
	ShowSchedule(ctx context.Context, args []string) error
	Stops(ctx context.Context) error
	Stations(ctx context.Context) error

	Favourites(ctx context.Context, args []string) error
	Recent(ctx context.Context, args []string) error
}

const (
	helpGuest = "Commands: register, login, destinations [popular|suggested], destination <id>, " +
		"search <text>, routes [popular], route <id>, schedule <id>, stops, stations, recent [clear], exit"
	helpUser = helpGuest + "\nAccount: whoami, profile, passwd, logout" +
		"\nFavourites: fav, fav add|rm dest|route|sched <id>, fav clear"
)

// runREPL reads commands line by line from reader and dispatches them to a.
//
// The first token is the command, the rest are its arguments. Unknown
// commands are reported back to the user. The loop exits on EOF, on
// context cancellation or when the user types "exit" or "quit".
//
// Errors returned by handlers are ignored here; handlers report them to the
// user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("gomate%s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("read error:", err)
			}
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]
		ctx := logging.ContextWith(ctx, "command", cmd)

		switch cmd {
		case "help", "?":
			if a.isLoggedIn() {
				printlnFn(helpUser)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "profile":
			_ = a.Profile(ctx)
		case "passwd":
			_ = a.Passwd(ctx)

		case "d", "destinations":
			_ = a.Destinations(ctx, args)
		case "destination":
			_ = a.ShowDestination(ctx, args)
		case "search":
			_ = a.Search(ctx, args)
		case "r", "routes":
			_ = a.Routes(ctx, args)
		case "route":
			_ = a.ShowRoute(ctx, args)
		case "schedule":
			_ = a.ShowSchedule(ctx, args)
		case "stops":
			_ = a.Stops(ctx)
		case "stations":
			_ = a.Stations(ctx)

		case "fav", "favs", "favourites":
			_ = a.Favourites(ctx, args)
		case "recent":
			_ = a.Recent(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
