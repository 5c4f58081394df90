// Package view implements the terminal view-model: a fixed set of named UI
// regions populated once at startup, plus render functions mapping server
// data onto them. Rendering never fetches; the app layer hands it transient
// copies of server state.
package view

import (
	"fmt"
	"io"
	"sync"

	"github.com/atinyakov/storeviewer/internal/models"
)

const (
	// AllCategories is the sentinel option always listed first in the
	// category selector. It maps to the empty filter category.
	AllCategories = "All Categories"

	noProductsText    = "No products found"
	noDescriptionText = "No description available"
)

// View holds the named UI regions. All mutations go through methods so that
// logged-in/out transitions flip every affordance together.
type View struct {
	mu       sync.Mutex
	out      io.Writer
	notifier *Notifier

	loggedIn          bool
	welcome           string
	adminPanelVisible bool
	loading           bool

	publicProducts []models.Product
	adminProducts  []models.Product
	categories     []string
	filter         Filter

	loginDialogOpen   bool
	productDialogOpen bool
	dialogTitle       string
	form              ProductForm
}

// New returns a View writing to out.
func New(out io.Writer, notifier *Notifier) *View {
	return &View{out: out, notifier: notifier, categories: []string{AllCategories}}
}

// Notify shows a transient message.
func (v *View) Notify(text string, kind Kind) {
	v.notifier.Show(text, kind)
}

// SetLoggedIn flips every affordance to the authenticated state in one step:
// welcome text, logout control and the admin-panel entry point.
func (v *View) SetLoggedIn(username string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loggedIn = true
	v.welcome = fmt.Sprintf("Welcome, %s!", username)
	fmt.Fprintln(v.out, v.welcome)
}

// SetLoggedOut flips every affordance back to the anonymous state and hides
// the admin panel together with its data.
func (v *View) SetLoggedOut() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loggedIn = false
	v.welcome = ""
	v.adminPanelVisible = false
	v.adminProducts = nil
}

// ShowAdminPanel reveals the admin grid region.
func (v *View) ShowAdminPanel() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.adminPanelVisible = true
}

// ShowPublicProducts hides the admin panel and re-renders the public grid.
func (v *View) ShowPublicProducts() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.adminPanelVisible = false
	v.renderPublic()
}

// SetLoading toggles the loading indicator shown during the public fetch.
func (v *View) SetLoading(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = on
	if on {
		fmt.Fprintln(v.out, "Loading products...")
	}
}

// RenderPublicProducts replaces the public grid contents. On fetch failure
// the app never calls this, so the previous grid stays intact.
func (v *View) RenderPublicProducts(products []models.Product) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.publicProducts = append([]models.Product(nil), products...)
	v.renderPublic()
}

// RenderAdminProducts replaces the admin grid contents.
func (v *View) RenderAdminProducts(products []models.Product) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.adminProducts = append([]models.Product(nil), products...)
	v.renderAdmin()
}

// SetCategoryOptions repopulates the category selector, sentinel first.
func (v *View) SetCategoryOptions(categories []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.categories = append([]string{AllCategories}, categories...)
}

// SetSearchTerm updates the filter term and re-renders the public grid.
func (v *View) SetSearchTerm(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter.SearchTerm = term
	v.renderPublic()
}

// SetCategory updates the category filter and re-renders immediately. The
// sentinel option selects all categories.
func (v *View) SetCategory(category string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if category == AllCategories {
		category = ""
	}
	v.filter.Category = category
	v.renderPublic()
}

// OpenLoginDialog opens the login dialog.
func (v *View) OpenLoginDialog() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loginDialogOpen = true
}

// OpenProductDialog opens the create/edit dialog pre-filled with form.
func (v *View) OpenProductDialog(title string, form ProductForm) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.productDialogOpen = true
	v.dialogTitle = title
	v.form = form
}

// CloseDialogs closes both dialogs.
func (v *View) CloseDialogs() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loginDialogOpen = false
	v.productDialogOpen = false
}

// Form returns the current contents of the product dialog.
func (v *View) Form() ProductForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

// DialogTitle returns the product dialog title.
func (v *View) DialogTitle() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dialogTitle
}

// ProductDialogOpen reports whether the product dialog is open.
func (v *View) ProductDialogOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.productDialogOpen
}

// LoggedIn reports the authenticated state of the UI.
func (v *View) LoggedIn() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loggedIn
}

// Welcome returns the welcome text, "" when logged out.
func (v *View) Welcome() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.welcome
}

// AdminPanelVisible reports whether the admin grid region is shown.
func (v *View) AdminPanelVisible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.adminPanelVisible
}

// Loading reports whether the loading indicator is on.
func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// PublicProducts returns a copy of the public grid contents, unfiltered.
func (v *View) PublicProducts() []models.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]models.Product(nil), v.publicProducts...)
}

// AdminProducts returns a copy of the admin grid contents.
func (v *View) AdminProducts() []models.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]models.Product(nil), v.adminProducts...)
}

// VisibleProducts returns the public grid contents under the current filter.
func (v *View) VisibleProducts() []models.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Apply(v.publicProducts, v.filter)
}

// Categories returns the selector options, sentinel included.
func (v *View) Categories() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.categories...)
}

// renderPublic writes the filtered public grid. Callers hold the lock.
func (v *View) renderPublic() {
	visible := Apply(v.publicProducts, v.filter)
	fmt.Fprintln(v.out, "--- Products ---")
	if len(visible) == 0 {
		fmt.Fprintln(v.out, noProductsText)
		return
	}
	for _, p := range visible {
		writeCard(v.out, p, false)
	}
}

// renderAdmin writes the admin grid with its per-row actions.
func (v *View) renderAdmin() {
	fmt.Fprintln(v.out, "--- Admin Products ---")
	if len(v.adminProducts) == 0 {
		fmt.Fprintln(v.out, noProductsText)
		return
	}
	for _, p := range v.adminProducts {
		writeCard(v.out, p, true)
	}
}

// writeCard renders one product card. Admin cards carry edit/delete actions
// keyed by the product id, never by generated markup.
func writeCard(w io.Writer, p models.Product, admin bool) {
	fmt.Fprintf(w, "#%d [%s] %s  $%.2f  Stock: %d\n", p.ID, p.Category, p.Name, p.Price, p.Quantity)
	desc := p.Description
	if desc == "" {
		desc = noDescriptionText
	}
	fmt.Fprintf(w, "    %s\n", desc)
	if p.ImageURL != nil {
		fmt.Fprintf(w, "    image: %s\n", *p.ImageURL)
	}
	if !p.Available {
		fmt.Fprintln(w, "    Out of Stock")
	}
	if admin {
		fmt.Fprintf(w, "    actions: edit %d | delete %d\n", p.ID, p.ID)
	}
}
