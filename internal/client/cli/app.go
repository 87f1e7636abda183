package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/sweetshop/internal/client/client"
	"github.com/dmitrijs2005/sweetshop/internal/client/config"
	"github.com/dmitrijs2005/sweetshop/internal/client/guard"
	"github.com/dmitrijs2005/sweetshop/internal/client/models"
	"github.com/dmitrijs2005/sweetshop/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/sweetshop/internal/client/services"
	"github.com/dmitrijs2005/sweetshop/internal/client/session"
	"github.com/dmitrijs2005/sweetshop/internal/logging"
	"github.com/dmitrijs2005/sweetshop/internal/obs"
)

type App struct {
	config  *config.Config
	db      *sql.DB
	log     logging.Logger
	session *session.Session
	catalog services.CatalogService
	router  *guard.Router
	metrics prometheus.Gatherer

	nav history

	// catalog view state
	sweets   []models.Sweet
	term     string
	category string

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database and wires the API client, the session and
// the catalog service together. The session is not hydrated until Run.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.New(c.LogLevel, os.Stderr)

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	reg := prometheus.NewRegistry()
	metrics := obs.NewClientMetrics(reg)

	auth := client.NewAuthorization()
	api, err := client.NewHTTPClient(c.APIBaseURL, auth,
		client.WithTimeout(c.RequestTimeout),
		client.WithTransport(metrics.InstrumentTransport(http.DefaultTransport)),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sess := session.New(api, session.NewSQLiteStore(db, log), auth,
		session.WithLogger(log),
		session.WithRecorder(metrics),
	)

	return &App{
		config:  c,
		db:      db,
		log:     log,
		session: sess,
		catalog: services.NewCatalogService(api, metadata.NewSQLiteRepository(db), log),
		router:  guard.NewRouter(guard.DefaultRoutes),
		metrics: reg,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run hydrates the session in the background, shows the home view and
// serves the REPL until the user quits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	ctx = session.WithSession(ctx, a.session)
	go a.session.Hydrate(ctx)

	fmt.Fprintln(a.out, "Welcome to the Sweet Shop CLI (type 'help' for commands)")
	if err := a.navigate(ctx, guard.HomePath, false); err != nil {
		return err
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

// sess returns the session of the current scope.
func (a *App) sess(ctx context.Context) *session.Session {
	return session.MustFromContext(ctx)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.sess(ctx).IsAuthenticated()
}

func (a *App) isAdmin(ctx context.Context) bool {
	return a.sess(ctx).IsAdmin()
}

// status is shown in the prompt: the current view and who is signed in.
func (a *App) status(ctx context.Context) string {
	st := a.sess(ctx).State()
	who := "guest"
	switch {
	case st.Loading:
		who = "loading"
	case st.IsAuthenticated():
		who = st.Identity.Name
		if st.IsAdmin() {
			who += " (admin)"
		}
	}
	return fmt.Sprintf("%s %s", a.nav.current(), who)
}
