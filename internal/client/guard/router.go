package guard

import (
	"strings"

	"github.com/dmitrijs2005/sweetshop/internal/client/session"
)

const (
	HomePath     = "/"
	SweetsPath   = "/sweets"
	LoginPath    = "/login"
	RegisterPath = "/register"
	LandingPath  = "/dashboard"
	AdminPath    = "/admin"
)

// Route binds a path to a policy.
type Route struct {
	Path   string
	Policy Policy
}

// DefaultRoutes is the storefront's route table.
var DefaultRoutes = []Route{
	{Path: HomePath, Policy: Open},
	{Path: SweetsPath, Policy: Open},
	{Path: LoginPath, Policy: Public},
	{Path: RegisterPath, Policy: Public},
	{Path: LandingPath, Policy: Protected},
	{Path: AdminPath, Policy: Admin},
}

// Router maps paths to policies. Unknown paths redirect to the fallback.
type Router struct {
	routes   map[string]Policy
	fallback string
}

// NewRouter builds a router over routes with HomePath as the catch-all
// target.
func NewRouter(routes []Route) *Router {
	r := &Router{routes: make(map[string]Policy, len(routes)), fallback: HomePath}
	for _, rt := range routes {
		r.routes[Normalize(rt.Path)] = rt.Policy
	}
	return r
}

// Policy returns the policy of path, if it is routed.
func (r *Router) Policy(path string) (Policy, bool) {
	p, ok := r.routes[Normalize(path)]
	return p, ok
}

// Resolve decides what to show for path given st.
func (r *Router) Resolve(path string, st session.State) Decision {
	path = Normalize(path)
	policy, ok := r.routes[path]
	if !ok {
		return redirect(r.fallback)
	}
	return Decide(policy, st, path)
}

// Normalize trims blanks and a trailing slash and adds the leading one.
func Normalize(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}
