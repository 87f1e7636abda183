package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sweetshop/internal/client/guard"
	"github.com/dmitrijs2005/sweetshop/internal/client/session"
)

// maxRedirects bounds a chain of guard redirects.
const maxRedirects = 5

var errRedirectLoop = errors.New("too many redirects")

// navigate shows path, following guard decisions. With replace the current
// history entry is overwritten, otherwise a new one is pushed. A redirect
// keeps the mode of the initial navigation, so the disallowed view never
// enters the history. While the session is loading the placeholder is shown
// and the decision is re-evaluated once loading ends.
func (a *App) navigate(ctx context.Context, path string, replace bool) error {
	sess := a.sess(ctx)

	for hops := 0; hops <= maxRedirects; {
		d := a.router.Resolve(path, sess.State())

		switch d.Kind {
		case guard.Placeholder:
			fmt.Fprintln(a.out, "Loading...")
			if err := a.waitSettled(ctx); err != nil {
				return err
			}

		case guard.Redirect:
			a.log.Debug(ctx, "redirect", "from", path, "to", d.View)
			path = d.View
			hops++

		default:
			if replace {
				a.nav.replace(d.View)
			} else {
				a.nav.push(d.View)
			}
			return a.render(ctx, d.View)
		}
	}
	return fmt.Errorf("%s: %w", path, errRedirectLoop)
}

// waitSettled blocks until the session is no longer loading.
func (a *App) waitSettled(ctx context.Context) error {
	sess := a.sess(ctx)

	settled := make(chan struct{}, 1)
	cancel := sess.Subscribe(func(st session.State) {
		if !st.Loading {
			select {
			case settled <- struct{}{}:
			default:
			}
		}
	})
	defer cancel()

	if !sess.State().Loading {
		return nil
	}
	select {
	case <-settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *App) render(ctx context.Context, path string) error {
	switch path {
	case guard.SweetsPath:
		return a.renderCatalog(ctx)
	case guard.LoginPath:
		return a.loginView(ctx)
	case guard.RegisterPath:
		return a.registerView(ctx)
	case guard.LandingPath:
		return a.renderDashboard(ctx)
	case guard.AdminPath:
		return a.renderAdmin(ctx)
	default:
		return a.renderHome(ctx)
	}
}

// Go navigates to args[0].
func (a *App) Go(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: go <path>")
		return nil
	}
	return a.navigate(ctx, args[0], false)
}

// Back returns to the previous view, re-checking its guard.
func (a *App) Back(ctx context.Context) error {
	path, ok := a.nav.back()
	if !ok {
		printlnFn("Nothing to go back to")
		return nil
	}
	return a.navigate(ctx, path, true)
}
