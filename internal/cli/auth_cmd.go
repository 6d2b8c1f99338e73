package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shoaib/notekeeper/internal/auth"
	"github.com/shoaib/notekeeper/internal/common"
	"github.com/shoaib/notekeeper/internal/users"
)

// resumeTokenValidity bounds how long a saved session survives between runs.
const resumeTokenValidity = 30 * 24 * time.Hour

// Register creates an account and logs straight into it.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Signup(ctx, username, string(password))
	if err != nil {
		if errors.Is(err, common.ErrorUsernameTaken) {
			fmt.Fprintln(a.out, "That user name is already taken.")
			return err
		}
		fmt.Fprintln(a.out, "Registration failed.")
		a.log.Error(ctx, "registration failed", "error", err)
		return err
	}

	return a.finishLogin(ctx, u)
}

// Login authenticates and opens the user's store.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Login(ctx, username, string(password))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			fmt.Fprintln(a.out, "Wrong user name or password.")
			return err
		}
		fmt.Fprintln(a.out, "Login failed.")
		a.log.Error(ctx, "login failed", "error", err)
		return err
	}

	return a.finishLogin(ctx, u)
}

func (a *App) finishLogin(ctx context.Context, u *users.User) error {
	if err := a.setUser(ctx, u); err != nil {
		if errors.Is(err, common.ErrStoreKeyMismatch) {
			fmt.Fprintln(a.out, "Your notes store cannot be unlocked on this installation.")
		} else {
			fmt.Fprintln(a.out, "Could not open your notes store.")
		}
		a.log.Error(ctx, "error opening user store", "error", err)
		return err
	}

	if token, err := auth.GenerateToken(u.ID, a.tokenSecret, resumeTokenValidity); err == nil {
		if err := saveToken(a.config.DataDir, token); err != nil {
			a.log.Warn(ctx, "error saving session token", "error", err)
		}
	}

	fmt.Fprintf(a.out, "Logged in as %s.\n", u.Username)
	return nil
}

// Logout closes the user's store and forgets the saved session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		a.log.Warn(ctx, "error closing store on logout", "error", err)
	}
	clearToken(a.config.DataDir)
	a.user = nil
	a.notes = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
