package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shoaib/notekeeper/internal/auth"
	"github.com/shoaib/notekeeper/internal/config"
	"github.com/shoaib/notekeeper/internal/cryptox"
	"github.com/shoaib/notekeeper/internal/logging"
	"github.com/shoaib/notekeeper/internal/notes"
	"github.com/shoaib/notekeeper/internal/remotecfg"
	"github.com/shoaib/notekeeper/internal/reporting"
	"github.com/shoaib/notekeeper/internal/store"
	"github.com/shoaib/notekeeper/internal/users"
	"github.com/shoaib/notekeeper/internal/vault"
)

const sessionTokenLabel = "session-token"

// App holds the wired-together client: vault, store session, auth, and the
// notes service for the currently logged-in user. All commands run on the
// REPL goroutine; nothing here is safe for concurrent use.
type App struct {
	config  *config.Config
	log     logging.Logger
	session *store.Session
	system  *store.Handle
	auth    *auth.Service
	errors  reporting.ErrorSink
	events  reporting.EventSink
	flags   remotecfg.Values

	tokenSecret []byte
	user        *users.User
	notes       *notes.Service

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires an App from configuration: opens the vault and the system
// store, loads remote feature flags, and tries to resume the previous
// session from the saved token. Callers own the returned App and must Close
// it.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	v := vault.NewPlatformVault(filepath.Join(cfg.DataDir, "vault"), log)
	factory := store.NewFactory(cfg.DataDir, v, cfg.DestructiveMigrations, log)

	system, err := factory.OpenSystemStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open system store: %w", err)
	}

	key, err := v.GetOrCreateKey(ctx)
	if err != nil {
		_ = system.Close(ctx)
		return nil, err
	}

	sink := reporting.NewLogSink(log)
	a := &App{
		config:      cfg,
		log:         log,
		session:     store.NewSession(factory, log),
		system:      system,
		auth:        auth.NewService(users.NewSQLiteRepository(system.DB()), log),
		errors:      sink,
		events:      sink,
		flags:       remotecfg.NewValues(nil),
		tokenSecret: cryptox.DeriveSubkey(key, sessionTokenLabel),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}

	if id, err := reporting.InstallationID(cfg.DataDir); err == nil {
		a.errors.SetKey(ctx, "installation_id", id)
	}

	if cfg.RemoteConfigURL != "" {
		a.flags = remotecfg.NewClient(cfg.RemoteConfigURL, cfg.RemoteFetchTimeout, log).Fetch(ctx)
	}

	a.resume(ctx)
	return a, nil
}

// Run starts the interactive loop and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "notekeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// Close flushes and closes every open store.
func (a *App) Close(ctx context.Context) {
	if err := a.session.Clear(ctx); err != nil {
		a.log.Warn(ctx, "error closing user store", "error", err)
	}
	if err := a.system.Close(ctx); err != nil {
		a.log.Warn(ctx, "error closing system store", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) status() string {
	if a.user == nil {
		return "not logged in"
	}
	return a.user.Username
}

// setUser opens the user's store and builds the notes service over it.
// Switching users closes the previous store first via the session.
func (a *App) setUser(ctx context.Context, u *users.User) error {
	handle, err := a.session.Get(ctx, u.ID)
	if err != nil {
		return err
	}

	repo := notes.NewReportedRepository(notes.NewSQLiteRepository(handle.DB()), a.errors)
	a.notes = notes.NewService(repo, handle, a.errors, a.events)
	a.user = u
	a.errors.SetKey(ctx, "user_id", u.ID)
	return nil
}

// resume restores the previous session from the saved token, silently
// falling back to the login prompt on any failure.
func (a *App) resume(ctx context.Context) {
	token, err := loadToken(a.config.DataDir)
	if err != nil {
		return
	}

	u, err := a.auth.Resume(ctx, token, a.tokenSecret)
	if err != nil {
		a.log.Debug(ctx, "saved session token rejected", "error", err)
		clearToken(a.config.DataDir)
		return
	}

	if err := a.setUser(ctx, u); err != nil {
		a.log.Warn(ctx, "error reopening store for saved session", "error", err)
		return
	}
	a.log.Info(ctx, "session resumed", "user", u.Username)
}
