package app

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/google/uuid"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// readCredentials prompts for a username and password. ok is false when the
// input breaks the length rules; the user has already been told why.
func (a *App) readCredentials() (username, password string, ok bool, err error) {
	username, err = getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", "", false, err
	}

	pw, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", "", false, err
	}
	password = string(pw)
	common.WipeByteArray(pw)

	if username == "" || password == "" {
		fmt.Fprintln(a.out, "Username and password must not be empty.")
		return "", "", false, nil
	}
	if utf8.RuneCountInString(username) > common.MaxCredentialLength ||
		utf8.RuneCountInString(password) > common.MaxCredentialLength {
		fmt.Fprintf(a.out, "Username and password must be at most %d characters.\n", common.MaxCredentialLength)
		return "", "", false, nil
	}
	return username, password, true, nil
}

// Register prompts for credentials and creates an account. Outcomes are
// reported to the user; only input errors are returned.
func (a *App) Register(ctx context.Context) error {
	username, password, ok, err := a.readCredentials()
	if err != nil || !ok {
		return err
	}

	_, err = a.credentials.Register(ctx, username, password)
	switch {
	case err == nil:
		fmt.Fprintln(a.out, "Registration successful, you can log in now.")
	case errors.Is(err, common.ErrorUserExists):
		fmt.Fprintln(a.out, "User already exists.")
	case errors.Is(err, common.ErrorValidation):
		fmt.Fprintln(a.out, err)
	default:
		fmt.Fprintln(a.out, "Server error, please try again later.")
	}
	return nil
}

// Login prompts for credentials and, on success, opens the account's
// contact list. A successful login replaces any current session.
func (a *App) Login(ctx context.Context) error {
	username, password, ok, err := a.readCredentials()
	if err != nil || !ok {
		return err
	}

	acc, err := a.credentials.Login(ctx, username, password)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorInvalidCredentials):
		fmt.Fprintln(a.out, "Invalid username or password.")
		return nil
	default:
		fmt.Fprintln(a.out, "Server error, please try again later.")
		return nil
	}

	a.store = a.newStore(*acc)
	a.sessionID = uuid.NewString()
	a.logger.Info(ctx, "session started", "account_id", acc.ID, "session_id", a.sessionID)

	fmt.Fprintf(a.out, "Welcome, %s!\n", acc.UserName)
	return nil
}

// Logout drops the current account handle.
func (a *App) Logout(ctx context.Context) error {
	if a.store != nil {
		a.logger.Info(ctx, "session ended", "account_id", a.store.Account().ID, "session_id", a.sessionID)
	}
	a.store = nil
	a.sessionID = ""
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
