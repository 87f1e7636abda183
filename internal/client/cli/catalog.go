package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/sweetshop/internal/client/guard"
	"github.com/dmitrijs2005/sweetshop/internal/client/models"
	"github.com/dmitrijs2005/sweetshop/internal/client/services"
	"github.com/dmitrijs2005/sweetshop/internal/common"
	"github.com/dmitrijs2005/sweetshop/internal/obs"
)

// Sweets sets the catalog filter and shows the catalog. args are an
// optional search term ("-" for none) and an optional category.
func (a *App) Sweets(ctx context.Context, args []string) error {
	a.term, a.category = "", ""
	if len(args) > 0 && args[0] != "-" {
		a.term = args[0]
	}
	if len(args) > 1 {
		a.category = strings.Join(args[1:], " ")
	}
	return a.navigate(ctx, guard.SweetsPath, false)
}

// findSweet looks id up in the last listing, refreshing it once on a miss.
func (a *App) findSweet(ctx context.Context, id string) (models.Sweet, error) {
	if sw, err := services.Find(a.sweets, models.ID(id)); err == nil {
		return sw, nil
	}
	if _, err := a.loadSweets(ctx); err != nil {
		return models.Sweet{}, err
	}
	return services.Find(a.sweets, models.ID(id))
}

func (a *App) updateListed(sw models.Sweet) {
	for i := range a.sweets {
		if a.sweets[i].ID == sw.ID {
			a.sweets[i] = sw
			return
		}
	}
}

// Buy purchases one unit. Anonymous shoppers are sent to the sign-in view.
func (a *App) Buy(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: buy <id>")
		return nil
	}
	if !a.isLoggedIn(ctx) {
		printlnFn("Please login to purchase sweets")
		return a.navigate(ctx, guard.LoginPath, false)
	}

	sw, err := a.findSweet(ctx, args[0])
	if err != nil {
		printlnFn(userMessage(err, "Sweet not found"))
		return nil
	}

	updated, err := a.catalog.Purchase(ctx, sw)
	switch {
	case errors.Is(err, common.ErrorOutOfStock):
		printlnFn(fmt.Sprintf("%s is out of stock", sw.Name))
		return nil
	case err != nil:
		printlnFn(userMessage(err, "Purchase failed"))
		return nil
	}

	a.updateListed(*updated)
	printlnFn(fmt.Sprintf("Purchased 1 x %s (%s)", sw.Name, catalogStock(updated.Quantity)))
	return nil
}

// requireAdmin reports whether the admin commands may run. When they may
// not, the admin view is requested so the guard decides where to go.
func (a *App) requireAdmin(ctx context.Context) (bool, error) {
	d := guard.Decide(guard.Admin, a.sess(ctx).State(), guard.AdminPath)
	if d.Kind == guard.Render {
		return true, nil
	}
	if d.Kind == guard.Redirect {
		printlnFn("Admin access required")
	}
	return false, a.navigate(ctx, guard.AdminPath, false)
}

// AddSweet runs the add-sweet form.
func (a *App) AddSweet(ctx context.Context) error {
	if ok, err := a.requireAdmin(ctx); !ok {
		return err
	}

	var (
		form sweetForm
		raw  string
		err  error
	)
	if form.Name, err = getSimpleText(a.reader, "Sweet name", a.out); err != nil {
		return err
	}
	prompt := fmt.Sprintf("Category [%s] (default %s)", strings.Join(models.SweetCategories, ", "), models.DefaultCategory)
	if form.Category, err = getSimpleText(a.reader, prompt, a.out); err != nil {
		return err
	}
	if form.Category == "" {
		form.Category = models.DefaultCategory
	}

	if raw, err = getSimpleText(a.reader, "Price ($)", a.out); err != nil {
		return err
	}
	if form.Price, err = strconv.ParseFloat(raw, 64); err != nil {
		printlnFn("Price must be a number")
		return nil
	}
	if raw, err = getSimpleText(a.reader, "Quantity", a.out); err != nil {
		return err
	}
	if form.Quantity, err = strconv.Atoi(raw); err != nil {
		printlnFn("Quantity must be a whole number")
		return nil
	}
	if form.Description, err = getSimpleText(a.reader, "Description (optional)", a.out); err != nil {
		return err
	}

	if err := form.Validate(); err != nil {
		printValidation(err)
		return nil
	}

	created, err := a.catalog.Create(ctx, form.input())
	if err != nil {
		printlnFn(userMessage(err, "Failed to add sweet"))
		return nil
	}
	a.log.Info(ctx, "sweet added", "id", created.ID, "name", created.Name)
	printlnFn("Sweet added successfully!")
	return a.navigate(ctx, guard.AdminPath, false)
}

// Restock adds units to a sweet: restock <id> <amount>.
func (a *App) Restock(ctx context.Context, args []string) error {
	if len(args) < 2 {
		printlnFn("Usage: restock <id> <amount>")
		return nil
	}
	if ok, err := a.requireAdmin(ctx); !ok {
		return err
	}

	amount, err := strconv.Atoi(args[1])
	if err != nil || amount <= 0 {
		printlnFn("Amount must be a positive whole number")
		return nil
	}
	sw, err := a.findSweet(ctx, args[0])
	if err != nil {
		printlnFn(userMessage(err, "Sweet not found"))
		return nil
	}

	updated, err := a.catalog.Restock(ctx, sw, amount)
	if err != nil {
		printlnFn(userMessage(err, "Failed to restock"))
		return nil
	}
	a.updateListed(*updated)
	printlnFn(fmt.Sprintf("Restocked successfully! Added %d units.", amount))
	return nil
}

// DeleteSweet removes a sweet after confirmation: delete <id>.
func (a *App) DeleteSweet(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: delete <id>")
		return nil
	}
	if ok, err := a.requireAdmin(ctx); !ok {
		return err
	}

	sw, err := a.findSweet(ctx, args[0])
	if err != nil {
		printlnFn(userMessage(err, "Sweet not found"))
		return nil
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Are you sure you want to delete %q? (y/N)", sw.Name), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.catalog.Delete(ctx, sw.ID); err != nil {
		printlnFn(userMessage(err, "Failed to delete sweet"))
		return nil
	}
	a.log.Info(ctx, "sweet deleted", "id", sw.ID)
	printlnFn("Sweet deleted successfully!")
	return a.navigate(ctx, guard.AdminPath, false)
}

// Stats dumps the client metrics.
func (a *App) Stats(ctx context.Context) error {
	return obs.WriteText(a.out, a.metrics)
}
