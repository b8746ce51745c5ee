package screens

import (
	"strings"

	"resqall/internal/core/domain"
)

// Screen names a top-level view
type Screen string

const (
	ScreenLogin           Screen = "login"
	ScreenDashboard       Screen = "dashboard"
	ScreenProfile         Screen = "profile"
	ScreenTasks           Screen = "tasks"
	ScreenAdminVolunteers Screen = "admin/volunteers"
	ScreenAdminReports    Screen = "admin/reports"
)

// Well-known paths
const (
	PathRoot      = "/"
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
)

// Route binds a path to a screen. A nil AllowedRoles admits every role.
type Route struct {
	Path         string
	Screen       Screen
	Title        string
	Public       bool
	AllowedRoles []domain.Role
}

// Allows reports whether the role may mount the route
func (r Route) Allows(role domain.Role) bool {
	if r.AllowedRoles == nil {
		return true
	}
	for _, allowed := range r.AllowedRoles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Decision is the outcome of resolving a path. Exactly one of Screen or
// Redirect is set.
type Decision struct {
	Screen   Screen
	Title    string
	Redirect string
}

// IsRedirect reports whether the decision sends the client elsewhere
func (d Decision) IsRedirect() bool {
	return d.Redirect != ""
}

// DefaultRoutes is the route table of the application
func DefaultRoutes() []Route {
	return []Route{
		{Path: PathLogin, Screen: ScreenLogin, Title: "Join the Squad", Public: true},
		{Path: PathDashboard, Screen: ScreenDashboard, Title: "Mission Dashboard"},
		{Path: "/profile", Screen: ScreenProfile, Title: "Ranger Profile"},
		{
			Path:         "/tasks",
			Screen:       ScreenTasks,
			Title:        "Deployment Board",
			AllowedRoles: []domain.Role{domain.RoleVolunteer, domain.RoleAdmin},
		},
		{
			Path:         "/admin/volunteers",
			Screen:       ScreenAdminVolunteers,
			Title:        "Ranger Personnel",
			AllowedRoles: []domain.Role{domain.RoleAdmin},
		},
		{
			Path:         "/admin/reports",
			Screen:       ScreenAdminReports,
			Title:        "Master Log",
			AllowedRoles: []domain.Role{domain.RoleAdmin},
		},
	}
}

// Router is the authorization gate in front of every screen
type Router struct {
	routes map[string]Route
	order  []Route
}

// NewRouter creates a router over a route table
func NewRouter(routes []Route) *Router {
	r := &Router{
		routes: make(map[string]Route, len(routes)),
		order:  routes,
	}
	for _, route := range routes {
		r.routes[route.Path] = route
	}
	return r
}

// Routes returns the route table in declaration order
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.order))
	copy(out, r.order)
	return out
}

// Resolve decides what a client at path sees given its identity.
// Without an identity only public routes mount; everything else goes to the
// login screen. With one, the root and unknown paths go to the dashboard and
// a role outside a route's allow-list is soft-redirected there as well.
func (r *Router) Resolve(path string, identity *domain.Identity) Decision {
	path = normalize(path)
	route, known := r.routes[path]

	if identity == nil {
		if known && route.Public {
			return Decision{Screen: route.Screen, Title: route.Title}
		}
		return Decision{Redirect: PathLogin}
	}

	if !known {
		return Decision{Redirect: PathDashboard}
	}
	if !route.Allows(identity.Role) {
		return Decision{Redirect: PathDashboard}
	}
	return Decision{Screen: route.Screen, Title: route.Title}
}

func normalize(path string) string {
	if path == "" {
		return PathRoot
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
