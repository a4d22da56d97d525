package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophprofile/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
)

// Routes known to the navigation policy.
const (
	RouteHome           = "/"
	RouteLogin          = "/login"
	RouteRegister       = "/register"
	RouteForgotPassword = "/forgot-password"
	RouteProfile        = "/profile"
	RouteOrders         = "/orders"
)

// State is the navigation state derived from the persisted session flag.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// SessionGuard decides whether protected views may render.
//
// It reads the flag from the store on every call, so a logout in the same
// database is seen immediately. The flag is writable by the same user it
// gates; this is navigation, not access control.
type SessionGuard struct {
	slots  localstore.Repository
	logger logging.Logger
}

func NewSessionGuard(slots localstore.Repository, logger logging.Logger) *SessionGuard {
	return &SessionGuard{slots: slots, logger: logger.With("component", "guard")}
}

// IsAuthorized reports whether the session flag is set. A read failure is
// logged and counts as not authorized.
func (g *SessionGuard) IsAuthorized(ctx context.Context) bool {
	v, _, err := g.slots.GetItem(ctx, localstore.KeyAuthenticated)
	if err != nil {
		g.logger.Error(ctx, "session flag unreadable", "error", err)
		return false
	}
	return v == localstore.AuthenticatedValue
}

func (g *SessionGuard) State(ctx context.Context) State {
	if g.IsAuthorized(ctx) {
		return Authenticated
	}
	return Anonymous
}

// Resolve returns the route that should actually render when route is
// requested. Protected routes send anonymous users to /login, the login and
// register views send signed-in users to /profile, and / picks one of the two.
func (g *SessionGuard) Resolve(ctx context.Context, route string) (string, error) {
	authorized := g.IsAuthorized(ctx)

	switch route {
	case RouteProfile, RouteOrders:
		if !authorized {
			return RouteLogin, nil
		}
		return route, nil
	case RouteLogin, RouteRegister:
		if authorized {
			return RouteProfile, nil
		}
		return route, nil
	case RouteForgotPassword:
		return route, nil
	case RouteHome:
		if authorized {
			return RouteProfile, nil
		}
		return RouteLogin, nil
	default:
		return "", common.NotFound("route", fmt.Sprintf("Unknown route %s", route))
	}
}
