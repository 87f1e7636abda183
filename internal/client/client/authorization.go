package client

import (
	"net/http"
	"sync/atomic"

	"github.com/dmitrijs2005/sweetshop/internal/common"
	"github.com/google/uuid"
)

// Authorization is the single authorization slot shared by every request
// of an HTTPClient. An empty token means no header is sent.
type Authorization struct {
	token atomic.Pointer[string]
}

func NewAuthorization() *Authorization {
	return &Authorization{}
}

// Set replaces the active credential. Set("") is the same as Clear.
func (a *Authorization) Set(token string) {
	if token == "" {
		a.token.Store(nil)
		return
	}
	a.token.Store(&token)
}

func (a *Authorization) Clear() {
	a.token.Store(nil)
}

// Token returns the active credential or "".
func (a *Authorization) Token() string {
	if p := a.token.Load(); p != nil {
		return *p
	}
	return ""
}

// bearerTransport stamps the current credential and a request id on every
// outbound request.
type bearerTransport struct {
	auth *Authorization
	base http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	if token := t.auth.Token(); token != "" {
		r.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	} else {
		r.Header.Del(common.AuthorizationHeaderName)
	}
	if r.Header.Get(common.RequestIDHeaderName) == "" {
		r.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}

	return t.base.RoundTrip(r)
}
