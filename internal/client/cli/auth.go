package cli

import (
	"context"

	"github.com/dmitrijs2005/wardrobe/internal/common"
)

// Prompt indirections, replaced in tests.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getTagPairs     = GetTagPairs
	getConfirmation = GetConfirmation
)

// Signup prompts for a username, email and password and creates an account.
// It does not sign in; the user is asked to login afterwards.
func (a *App) Signup(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.dash.Session.Signup(ctx, username, email, string(password))
	if err != nil {
		return err
	}

	a.println(msg)
	return nil
}

// Login prompts for credentials and signs in. The email defaults to the
// user cached by the previous session.
func (a *App) Login(ctx context.Context) error {
	prompt := "Enter email"
	last := a.dash.Session.LastIdentity(ctx)
	if last.Email != "" {
		prompt += " [" + last.Email + "]"
	}

	email, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = last.Email
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.dash.Session.Login(ctx, email, string(password))
	if err != nil {
		a.log.Info(ctx, "login unsuccessful", "error", err)
		return err
	}

	a.signedIn.Store(true)
	a.printf("Welcome, %s!\n", id.DisplayName())
	_ = a.dash.SetSection(ctx, a.dash.Section())
	return nil
}

// Logout ends the session. It always succeeds locally.
func (a *App) Logout(ctx context.Context) error {
	a.dash.Session.Logout(ctx)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	id := a.dash.Identity()
	a.printf("user_id:  %s\n", id.UserID)
	if id.Username != "" {
		a.printf("username: %s\n", id.Username)
	}
	if id.Email != "" {
		a.printf("email:    %s\n", id.Email)
	}
	return nil
}
