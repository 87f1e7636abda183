package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	auth   string
	reqID  string
	body   map[string]any
}

// fakeAPI records every request and answers with the handler's response.
type fakeAPI struct {
	mu       sync.Mutex
	requests []recorded
	status   int
	response string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(b, &body)

	f.mu.Lock()
	f.requests = append(f.requests, recorded{
		method: r.Method,
		path:   r.URL.Path,
		auth:   r.Header.Get("Authorization"),
		reqID:  r.Header.Get("X-Request-ID"),
		body:   body,
	})
	status, response := f.status, f.response
	f.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, response)
}

func (f *fakeAPI) respond(status int, response string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.response = status, response
}

func (f *fakeAPI) last(t *testing.T) recorded {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func newTestClient(t *testing.T, api *fakeAPI) (*HTTPClient, *Authorization) {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	auth := NewAuthorization()
	c, err := NewHTTPClient(srv.URL+"/api/", auth, WithTimeout(5*time.Second))
	require.NoError(t, err)
	return c, auth
}

func TestLogin_PostsCredentialsAndDecodesResponse(t *testing.T) {
	api := &fakeAPI{response: `{"success":true,"token":"T1","user":{"id":1,"name":"Ann","email":"a@x.com","role":"user"}}`}
	c, _ := newTestClient(t, api)

	resp, err := c.Login(context.Background(), "a@x.com", "secret")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "T1", resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, models.Identity{ID: "1", Name: "Ann", Email: "a@x.com", Role: models.RoleUser}, *resp.User)

	req := api.last(t)
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/api/auth/login", req.path)
	assert.Equal(t, map[string]any{"email": "a@x.com", "password": "secret"}, req.body)
	assert.Empty(t, req.auth, "no credential bound yet")
	assert.NotEmpty(t, req.reqID)
}

func TestRegister_PostsAllThreeFields(t *testing.T) {
	api := &fakeAPI{response: `{"success":true,"token":"T2","user":{"id":2,"name":"Bob","email":"b@x.com","role":"user"}}`}
	c, _ := newTestClient(t, api)

	_, err := c.Register(context.Background(), "Bob", "b@x.com", "secret")
	require.NoError(t, err)

	req := api.last(t)
	assert.Equal(t, "/api/auth/register", req.path)
	assert.Equal(t, map[string]any{"name": "Bob", "email": "b@x.com", "password": "secret"}, req.body)
}

func TestAuthorization_FollowsSlotOnEveryRequest(t *testing.T) {
	api := &fakeAPI{response: `{"success":true,"data":[]}`}
	c, auth := newTestClient(t, api)
	ctx := context.Background()

	auth.Set("T1")
	_, err := c.ListSweets(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer T1", api.last(t).auth)

	auth.Set("T2")
	_, err = c.ListSweets(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer T2", api.last(t).auth)

	auth.Clear()
	_, err = c.ListSweets(ctx)
	require.NoError(t, err)
	assert.Empty(t, api.last(t).auth)
}

func TestAuthorization_SetEmptyClears(t *testing.T) {
	auth := NewAuthorization()
	auth.Set("T1")
	assert.Equal(t, "T1", auth.Token())
	auth.Set("")
	assert.Equal(t, "", auth.Token())
}

func TestErrorStatus_CarriesServerMessage(t *testing.T) {
	api := &fakeAPI{status: http.StatusUnauthorized, response: `{"success":false,"message":"Invalid credentials"}`}
	c, _ := newTestClient(t, api)

	_, err := c.Login(context.Background(), "a@x.com", "bad")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	msg, ok := ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Invalid credentials", msg)
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestErrorStatus_WithoutBody(t *testing.T) {
	api := &fakeAPI{status: http.StatusInternalServerError, response: `oops`}
	c, _ := newTestClient(t, api)

	_, err := c.ListSweets(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "api error: status 500", err.Error())

	_, ok := ServerMessage(err)
	assert.False(t, ok)
}

func TestUnreachableServer_IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url, NewAuthorization())
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "a@x.com", "secret")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestListSweets_DecodesEnvelope(t *testing.T) {
	api := &fakeAPI{response: `{"success":true,"data":[{"_id":"s1","name":"Fudge","category":"Chocolate","price":2.5,"quantity":3}]}`}
	c, _ := newTestClient(t, api)

	sweets, err := c.ListSweets(context.Background())
	require.NoError(t, err)
	require.Len(t, sweets, 1)
	assert.Equal(t, models.Sweet{ID: "s1", Name: "Fudge", Category: "Chocolate", Price: 2.5, Quantity: 3}, sweets[0])
}

func TestEnvelopeFailure_IsAPIError(t *testing.T) {
	api := &fakeAPI{response: `{"success":false,"message":"Not enough stock"}`}
	c, _ := newTestClient(t, api)

	_, err := c.PurchaseSweet(context.Background(), "s1", 1)
	require.Error(t, err)
	assert.Equal(t, "Not enough stock", err.Error())
}

func TestPurchaseSweet_PathAndBody(t *testing.T) {
	api := &fakeAPI{response: `{"success":true,"data":{"_id":"s1","name":"Fudge","quantity":2}}`}
	c, _ := newTestClient(t, api)

	sweet, err := c.PurchaseSweet(context.Background(), "s1", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, sweet.Quantity)

	req := api.last(t)
	assert.Equal(t, "/api/sweets/s1/purchase", req.path)
	assert.Equal(t, map[string]any{"quantity": float64(1)}, req.body)
}

func TestUpdateSweet_SendsOnlySetFields(t *testing.T) {
	api := &fakeAPI{response: `{"success":true,"data":{"_id":"s1","quantity":13}}`}
	c, _ := newTestClient(t, api)

	q := 13
	_, err := c.UpdateSweet(context.Background(), "s1", models.SweetUpdate{Quantity: &q})
	require.NoError(t, err)

	req := api.last(t)
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, map[string]any{"quantity": float64(13)}, req.body)
}

func TestCreateAndDeleteSweet(t *testing.T) {
	api := &fakeAPI{response: `{"success":true,"data":{"_id":"s9","name":"Toffee","category":"Candy","price":1,"quantity":10}}`}
	c, _ := newTestClient(t, api)
	ctx := context.Background()

	created, err := c.CreateSweet(ctx, models.SweetInput{Name: "Toffee", Category: "Candy", Price: 1, Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, models.ID("s9"), created.ID)
	assert.Equal(t, "/api/sweets", api.last(t).path)

	api.respond(http.StatusOK, ``)
	require.NoError(t, c.DeleteSweet(ctx, "s9"))
	assert.Equal(t, http.MethodDelete, api.last(t).method)
	assert.Equal(t, "/api/sweets/s9", api.last(t).path)
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient("localhost:5000", NewAuthorization())
	require.Error(t, err)
}
