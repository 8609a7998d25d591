package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/dmitrijs2005/wardrobe/internal/client/client"
	"github.com/dmitrijs2005/wardrobe/internal/client/config"
	"github.com/dmitrijs2005/wardrobe/internal/client/repositories/session"
	"github.com/dmitrijs2005/wardrobe/internal/client/services"
	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/dmitrijs2005/wardrobe/internal/filex"
	"github.com/dmitrijs2005/wardrobe/internal/logging"
)

const dbFileName = "wardrobe.db"

type App struct {
	config *config.Config
	dash   *services.Dashboard
	log    logging.Logger
	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer

	// signedIn is set once a session was established in this process, so a
	// failed login is not reported as an expired session.
	signedIn atomic.Bool
}

// NewApp wires the local session database, the HTTP client and the
// dashboard stores.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, dbFileName))
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}
	cache := session.NewCache(db)

	a := &App{config: c, log: logger, db: db, reader: bufio.NewReader(os.Stdin), out: os.Stdout}

	base, err := url.Parse(c.APIBaseURL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	jar, err := client.NewJar(ctx, base, cache, logger.With("component", "jar"))
	if err != nil {
		db.Close()
		return nil, err
	}
	hc, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, jar, logger.With("component", "http"))
	if err != nil {
		db.Close()
		return nil, err
	}

	a.dash = services.NewDashboard(hc, cache, jar, a, dashboardOptions(c), logger)
	return a, nil
}

func dashboardOptions(c *config.Config) services.DashboardOptions {
	return services.DashboardOptions{
		Temperature: c.Temperature,
		Planner: services.PlannerOptions{
			Horizon:   c.PlanHorizon,
			Mode:      c.PlanMode,
			Labels:    c.PlanLabels,
			StepDelay: c.PlanStepDelay,
		},
		FlashSuccessTTL: c.FlashSuccessTTL,
		FlashErrorTTL:   c.FlashErrorTTL,
	}
}

// ToSignIn implements services.Navigator.
func (a *App) ToSignIn(ctx context.Context, reason string) {
	wasSignedIn := a.signedIn.Swap(false)
	switch {
	case reason == common.SessionExpiredReason && wasSignedIn:
		a.println("Your session has expired. Please log in again.")
	case wasSignedIn:
		a.println("Signed out. Use 'login' to sign in.")
	}
}

func (a *App) isLoggedIn() bool {
	return a.dash.Session.Authenticated()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// alert shows a failed action through the alert modal. It stays open until
// dismissAlert.
func (a *App) alert(err error) {
	if err == nil {
		return
	}
	msg := userMessage(err)
	a.dash.Modals.OpenAlert(msg)
	if text, ok := a.dash.Modals.Alert(); ok {
		a.println("Error:", text)
	}
}

func (a *App) dismissAlert() {
	a.dash.Modals.CloseAlert()
}

// Run resolves the stored session and blocks in the REPL until the user
// exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println("Welcome to the wardrobe CLI (type 'help' for commands)")

	if id, err := a.dash.Start(ctx); err == nil {
		a.signedIn.Store(true)
		a.printf("Signed in as %s\n", id.DisplayName())
	} else if last := a.dash.Session.LastIdentity(ctx); !last.IsZero() {
		a.printf("Please log in again (last user: %s)\n", last.DisplayName())
	} else {
		a.println("Please 'login' or 'signup' to continue")
	}

	a.dash.Flash.OnChange(func(msg services.FlashMessage, visible bool) {
		if visible {
			a.printf("[%s] %s\n", msg.Kind, msg.Text)
		}
	})

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close detaches the stores and closes the local database.
func (a *App) Close() {
	a.dash.Close()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "error closing database", "error", err)
		}
	}
}

func (a *App) getStatus() string {
	s := string(a.dash.Section())
	if id := a.dash.Identity(); !id.IsZero() {
		s = id.DisplayName() + " " + s
	}
	return fmt.Sprintf("(%s %.0f°C)", s, a.dash.Temperature())
}
