package session

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/sweetshop/internal/client/client"
	"github.com/dmitrijs2005/sweetshop/internal/client/models"
	"github.com/dmitrijs2005/sweetshop/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeAPI answers register/login with preset results. When gate is set,
// each call blocks until a value is sent on it.
type fakeAPI struct {
	mu sync.Mutex

	loginResp *models.AuthResponse
	loginErr  error
	regResp   *models.AuthResponse
	regErr    error

	gate chan struct{}

	lastName, lastEmail, lastPassword string
	calls                             int
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	f.mu.Lock()
	f.calls++
	f.lastEmail, f.lastPassword = email, password
	resp, err, gate := f.loginResp, f.loginErr, f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return resp, err
}

func (f *fakeAPI) Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	f.mu.Lock()
	f.calls++
	f.lastName, f.lastEmail, f.lastPassword = name, email, password
	resp, err, gate := f.regResp, f.regErr, f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return resp, err
}

func (f *fakeAPI) setLogin(resp *models.AuthResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginResp, f.loginErr = resp, err
}

// fakeStore is an in-memory Store with error injection.
type fakeStore struct {
	mu        sync.Mutex
	rec       Record
	status    LoadStatus
	saveErr   error
	clearErr  error
	saves     int
	clears    int
	loadCalls int
}

func (f *fakeStore) Load(ctx context.Context) (Record, LoadStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadCalls++
	return f.rec, f.status
}

func (f *fakeStore) Save(ctx context.Context, identity models.Identity, credential string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.rec, f.status = Record{Identity: identity, Credential: credential}, LoadFound
	return nil
}

func (f *fakeStore) SaveIdentity(ctx context.Context, identity models.Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.rec.Identity = identity
	return nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	if f.clearErr != nil {
		return f.clearErr
	}
	f.rec, f.status = Record{}, LoadEmpty
	return nil
}

// fakeRecorder remembers transition names.
type fakeRecorder struct {
	mu    sync.Mutex
	names []string
}

func (f *fakeRecorder) Transition(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names = append(f.names, name)
}

func (f *fakeRecorder) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.names...)
}

var (
	ann   = models.Identity{ID: "1", Name: "Ann", Email: "a@x.com", Role: models.RoleUser}
	admin = models.Identity{ID: "2", Name: "Root", Email: "root@x.com", Role: models.RoleAdmin}
)

func okResponse(token string, user models.Identity) *models.AuthResponse {
	return &models.AuthResponse{Success: true, Token: token, User: &user}
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newSQLiteSession(t *testing.T, db *sql.DB, api AuthAPI) (*Session, *client.Authorization) {
	t.Helper()
	auth := client.NewAuthorization()
	return New(api, NewSQLiteStore(db, logging.Nop()), auth), auth
}

// requireConsistent checks that identity and credential are set together.
func requireConsistent(t *testing.T, st State) {
	t.Helper()
	require.Equal(t, st.Identity != nil, st.Credential != "", "identity and credential must be set together: %+v", st)
}
