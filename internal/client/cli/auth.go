package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gomate/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotLoggedIn = errors.New("not logged in")

// Register prompts for name, email and password and creates a local account.
// The new account becomes the current session.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if name == "" || email == "" || len(password) == 0 {
		a.println(errorStyle.Render("name, email and password are required"))
		return errors.New("missing input")
	}

	u, err := a.accounts.Register(ctx, name, email, password)
	if err != nil {
		return a.fail(ctx, "register", err)
	}
	a.user = u

	a.println("Welcome, " + u.Name + "!")
	return nil
}

// Login prompts for credentials and opens a session. The error message does
// not tell an unknown email from a wrong password.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.accounts.Authenticate(ctx, email, password)
	if err != nil {
		return a.fail(ctx, "login", err)
	}
	a.user = u

	if err := a.favourites.Refresh(ctx); err != nil {
		a.logger.Warn(ctx, "favourites reload failed", "error", err)
	}

	a.println("Logged in as " + u.Name)
	return nil
}

// Logout drops the session. Stored accounts and favourites stay.
func (a *App) Logout(ctx context.Context) error {
	if err := a.accounts.ClearSession(ctx); err != nil {
		return a.fail(ctx, "logout", err)
	}
	a.user = nil
	a.println("Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if a.user == nil {
		a.println("Not logged in")
		return nil
	}
	a.println(fmt.Sprintf("%s <%s>  id %s  since %s",
		a.user.Name, a.user.Email, a.user.ID, a.user.CreatedAt.Local().Format("2006-01-02")))
	return nil
}

// Profile edits name and email of the current account. An empty answer
// keeps the current value.
func (a *App) Profile(ctx context.Context) error {
	if a.user == nil {
		a.println(errorStyle.Render("Please log in first"))
		return errNotLoggedIn
	}

	upd := *a.user
	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s]", upd.Name), a.out)
	if err != nil {
		return err
	}
	if name != "" {
		upd.Name = name
	}
	email, err := getSimpleText(a.reader, fmt.Sprintf("Email [%s]", upd.Email), a.out)
	if err != nil {
		return err
	}
	if email != "" {
		upd.Email = email
	}

	if err := a.accounts.UpdateAccount(ctx, upd); err != nil {
		return a.fail(ctx, "profile update", err)
	}

	u, err := a.accounts.CurrentSession(ctx)
	if err != nil {
		return a.fail(ctx, "profile update", err)
	}
	a.user = u

	a.println("Profile updated")
	return nil
}

// Passwd changes the password of the current account.
func (a *App) Passwd(ctx context.Context) error {
	if a.user == nil {
		a.println(errorStyle.Render("Please log in first"))
		return errNotLoggedIn
	}

	current, err := getPassword(a.reader, "Current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	if len(next) == 0 {
		a.println(errorStyle.Render("password must not be empty"))
		return errors.New("empty password")
	}

	ok, err := a.accounts.ChangePassword(ctx, a.user.Email, current, next)
	if err != nil {
		return a.fail(ctx, "password change", err)
	}
	if !ok {
		a.println(errorStyle.Render("current password is incorrect"))
		return common.ErrInvalidCredentials
	}

	a.println("Password changed")
	return nil
}
