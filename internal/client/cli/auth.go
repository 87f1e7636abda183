package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/dmitrijs2005/sweetshop/internal/client/guard"
	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

// Login opens the sign-in view. Signed-in users are sent to the dashboard.
func (a *App) Login(ctx context.Context) error {
	return a.navigate(ctx, guard.LoginPath, false)
}

// Register opens the sign-up view. Signed-in users are sent to the dashboard.
func (a *App) Register(ctx context.Context) error {
	return a.navigate(ctx, guard.RegisterPath, false)
}

// loginView collects credentials and signs in. On success the dashboard is
// shown; otherwise the session's error message is printed and the user
// stays on the sign-in view.
func (a *App) loginView(ctx context.Context) error {
	fmt.Fprintln(a.out, "== Welcome Back! ==")

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	form := loginForm{Email: email, Password: string(password)}
	if err := form.Validate(); err != nil {
		printValidation(err)
		return nil
	}

	sess := a.sess(ctx)
	sess.ClearError()
	if _, err := sess.Login(ctx, form.Email, form.Password); err != nil {
		printlnFn("Login failed:", sess.State().Error)
		return nil
	}

	printlnFn(fmt.Sprintf("Welcome back, %s!", sess.State().Identity.Name))
	return a.navigate(ctx, guard.LandingPath, false)
}

// registerView collects the sign-up form and creates the account.
func (a *App) registerView(ctx context.Context) error {
	fmt.Fprintln(a.out, "== Create Account ==")

	name, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)
	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer wipe(confirm)

	form := registerForm{Name: name, Email: email, Password: string(password), ConfirmPassword: string(confirm)}
	if err := form.Validate(); err != nil {
		printValidation(err)
		return nil
	}

	sess := a.sess(ctx)
	sess.ClearError()
	if _, err := sess.Register(ctx, form.Name, form.Email, form.Password); err != nil {
		printlnFn("Registration failed:", sess.State().Error)
		return nil
	}

	printlnFn(fmt.Sprintf("Welcome, %s! Your account is ready.", sess.State().Identity.Name))
	return a.navigate(ctx, guard.LandingPath, false)
}

// Logout signs out and returns to the home view.
func (a *App) Logout(ctx context.Context) error {
	sess := a.sess(ctx)
	if !sess.IsAuthenticated() {
		printlnFn("You are not logged in")
		return nil
	}
	sess.Logout(ctx)
	printlnFn("Logged out")
	return a.navigate(ctx, guard.HomePath, false)
}

// WhoAmI prints the signed-in identity.
func (a *App) WhoAmI(ctx context.Context) error {
	st := a.sess(ctx).State()
	if !st.IsAuthenticated() {
		printlnFn("Not logged in")
		return nil
	}
	line := fmt.Sprintf("%s <%s> role=%s", st.Identity.Name, st.Identity.Email, st.Identity.Role)
	if info, ok := models.InspectCredential(st.Credential); ok && info.Expired(time.Now()) {
		line += " (session expired)"
	}
	printlnFn(line)
	return nil
}

// printValidation prints one line per invalid field.
func printValidation(err error) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		printlnFn("Error:", err)
		return
	}
	for _, field := range validationOrder {
		if ferr, ok := verrs[field]; ok && ferr != nil {
			printlnFn(ferr.Error())
		}
	}
}

// validationOrder is the order fields appear in the forms.
var validationOrder = []string{"name", "email", "category", "price", "quantity", "password", "confirmPassword"}
