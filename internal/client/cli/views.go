package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/sweetshop/internal/client/client"
	"github.com/dmitrijs2005/sweetshop/internal/client/models"
	"github.com/dmitrijs2005/sweetshop/internal/client/services"
)

func (a *App) renderHome(ctx context.Context) error {
	st := a.sess(ctx).State()

	fmt.Fprintln(a.out, "== Sweet Shop ==")
	fmt.Fprintln(a.out, "Delicious sweets, delivered to your terminal.")
	if st.IsAuthenticated() {
		fmt.Fprintf(a.out, "Signed in as %s. Try 'sweets' or 'go /dashboard'.\n", st.Identity.Name)
		return nil
	}
	fmt.Fprintln(a.out, "Browse with 'sweets', or 'login' / 'register' to start shopping.")
	return nil
}

func (a *App) renderDashboard(ctx context.Context) error {
	st := a.sess(ctx).State()
	if !st.IsAuthenticated() {
		return nil
	}
	user := st.Identity

	fmt.Fprintf(a.out, "== Welcome, %s! ==\n", user.Name)
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", user.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", user.Email)
	fmt.Fprintf(tw, "Role:\t%s\n", user.Role)
	if info, ok := models.InspectCredential(st.Credential); ok && !info.ExpiresAt.IsZero() {
		state := "valid"
		if info.Expired(time.Now()) {
			state = "expired"
		}
		fmt.Fprintf(tw, "Session:\t%s until %s\n", state, info.ExpiresAt.Local().Format(time.RFC1123))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if st.IsAdmin() {
		fmt.Fprintln(a.out, "Admin panel: full access ('go /admin').")
	}
	return nil
}

// loadSweets refreshes the cached listing of the catalog view.
func (a *App) loadSweets(ctx context.Context) (services.Listing, error) {
	listing, err := a.catalog.List(ctx)
	if err != nil {
		return listing, err
	}
	a.sweets = listing.Sweets
	return listing, nil
}

func (a *App) renderCatalog(ctx context.Context) error {
	listing, err := a.loadSweets(ctx)
	if err != nil {
		printlnFn(userMessage(err, "Failed to load sweets"))
		return nil
	}

	fmt.Fprintln(a.out, "== Our Sweet Collection ==")
	if listing.Offline {
		fmt.Fprintln(a.out, "(offline: showing the last catalog fetched)")
	}

	category := a.category
	if category == "" {
		category = services.AllCategories
	}
	fmt.Fprintf(a.out, "Categories: %s (showing %s)\n", strings.Join(services.Categories(listing.Sweets), ", "), category)
	if a.term != "" {
		fmt.Fprintf(a.out, "Search: %q\n", a.term)
	}

	filtered := services.Filter(listing.Sweets, a.term, category)
	if len(filtered) == 0 {
		fmt.Fprintln(a.out, "No sweets found matching your criteria.")
		return nil
	}
	return writeSweets(a.out, filtered, catalogStock)
}

func (a *App) renderAdmin(ctx context.Context) error {
	st := a.sess(ctx).State()
	fmt.Fprintln(a.out, "== Admin Panel ==")
	fmt.Fprintf(a.out, "Welcome, %s! Manage your sweet shop inventory.\n", st.Identity.Name)

	listing, err := a.loadSweets(ctx)
	if err != nil {
		printlnFn(userMessage(err, "Failed to load sweets"))
		return nil
	}
	fmt.Fprintf(a.out, "Inventory (%d items). Commands: add, restock <id> <n>, delete <id>\n", len(listing.Sweets))
	if len(listing.Sweets) == 0 {
		fmt.Fprintln(a.out, "No sweets in inventory. Add your first sweet with 'add'!")
		return nil
	}
	return writeSweets(a.out, listing.Sweets, models.StockStatus)
}

// catalogStock is the stock label of the shopper's catalog.
func catalogStock(quantity int) string {
	switch {
	case quantity <= 0:
		return "Out of Stock"
	case quantity <= models.LowStockThreshold:
		return fmt.Sprintf("Only %d left!", quantity)
	default:
		return fmt.Sprintf("%d in stock", quantity)
	}
}

func writeSweets(w io.Writer, sweets []models.Sweet, stock func(int) string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, sw := range sweets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t$%.2f\t%s\n", sw.ID, sw.Name, sw.Category, sw.Price, stock(sw.Quantity))
	}
	return tw.Flush()
}

// userMessage is the server's message for err, or fallback.
func userMessage(err error, fallback string) string {
	if msg, ok := client.ServerMessage(err); ok {
		return msg
	}
	return fallback
}
