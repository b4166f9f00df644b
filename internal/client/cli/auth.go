package cli

import (
	"context"
	"os"

	"github.com/pkozlov/flowdeck/internal/client/localstore"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username and password and creates a new account.
// The user still has to login afterwards.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	if username == "" || password == "" {
		printlnFn("Username and password must not be empty.")
		return nil
	}

	identity, err := a.session.Register(ctx, username, password)
	if err != nil {
		return reportError(err)
	}

	printlnFn("Registered:", identity.Username)
	return nil
}

// Login prompts for credentials and authenticates against the server.
// On success the token is persisted and the identity resolved, so protected
// commands pass the guard immediately.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	if username == "" || password == "" {
		printlnFn("Username and password must not be empty.")
		return nil
	}

	if err := a.session.Login(ctx, username, password); err != nil {
		return reportError(err)
	}

	printlnFn("Welcome,", username)
	return nil
}

// Logout clears the session locally. No remote call is made.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(); err != nil {
		return reportError(err)
	}
	printlnFn("Logged out.")
	return nil
}

// Whoami shows the current identity, bootstrapping the session first if
// needed.
func (a *App) Whoami(ctx context.Context) error {
	if err := a.guard.Ensure(ctx); err != nil {
		return reportError(err)
	}
	identity := a.session.Identity()
	printlnFn("Logged in as", identity.Username, "(id", identity.ID, ")")
	return nil
}

// Offline switches the persisted mode flag and recomposes the data access
// layer, so the very next command already runs against the selected store.
func (a *App) Offline(ctx context.Context, on bool) error {
	value := "false"
	if on {
		value = localstore.OfflineModeEnabled
	}
	if err := a.storage.Set(localstore.KeyOfflineMode, value); err != nil {
		return reportError(err)
	}

	a.compose()

	if a.offline {
		printlnFn("Offline mode on: diagrams are stored locally.")
	} else {
		printlnFn("Offline mode off: diagrams come from the server.")
	}
	return nil
}
