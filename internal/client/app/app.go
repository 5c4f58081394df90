// Package app wires the session, API client and view together and implements
// the user-triggered flows: login, session restoration, catalog loading,
// product mutations and filtering. Within one flow requests are sequenced:
// a mutation's reloads only start after its response has resolved.
package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/storeviewer/internal/client/api"
	"github.com/atinyakov/storeviewer/internal/client/session"
	"github.com/atinyakov/storeviewer/internal/client/view"
	"github.com/atinyakov/storeviewer/internal/models"
)

// searchDebounce is the quiescence window for search input before the
// filter recomputes.
const searchDebounce = 300 * time.Millisecond

// App owns the client's flows. The confirm hook gates destructive actions;
// main wires it to a terminal prompt, tests to a canned answer.
type App struct {
	api     *api.Client
	session *session.Manager
	view    *view.View
	log     *zap.Logger
	search  *view.Debouncer
	confirm func(prompt string) bool
}

// New returns an App. A nil confirm hook declines every confirmation.
func New(client *api.Client, sess *session.Manager, v *view.View, log *zap.Logger, confirm func(string) bool) *App {
	if confirm == nil {
		confirm = func(string) bool { return false }
	}
	return &App{
		api:     client,
		session: sess,
		view:    v,
		log:     log,
		search:  view.NewDebouncer(searchDebounce),
		confirm: confirm,
	}
}

// Login exchanges credentials for a session. On failure the stored token and
// the UI state stay untouched; the server message is surfaced when present.
func (a *App) Login(ctx context.Context, username, password string) error {
	res, err := a.api.Login(ctx, username, password)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			msg := apiErr.Message
			if msg == "" {
				msg = "Login failed"
			}
			a.view.Notify(msg, view.KindError)
		} else {
			a.view.Notify("Error during login: "+err.Error(), view.KindError)
		}
		return err
	}

	if err := a.session.Set(res.Token, res.Username); err != nil {
		// The session is live in memory; only the durable copy failed.
		a.log.Warn("failed to persist session token", zap.Error(err))
	}
	a.view.SetLoggedIn(res.Username)
	a.view.CloseDialogs()
	a.view.Notify("Login successful!", view.KindSuccess)
	return nil
}

// RestoreSession revives a saved token at startup: the token is validated,
// then an admin endpoint is probed to confirm continued authorization. Any
// failure on either step clears the session entirely.
func (a *App) RestoreSession(ctx context.Context) error {
	token, ok := a.session.Init()
	if !ok {
		return nil
	}
	if err := a.api.Validate(ctx, token); err != nil {
		return a.failRestore(err)
	}
	if _, err := a.api.AdminProducts(ctx); err != nil {
		return a.failRestore(err)
	}
	username := session.UsernameFromToken(token)
	a.session.Activate(username)
	a.view.SetLoggedIn(username)
	return nil
}

// failRestore clears a half-restored session without surfacing an error; a
// partially authenticated state is unsafe, so restoration fails closed.
func (a *App) failRestore(err error) error {
	a.log.Warn("session restore failed", zap.Error(err))
	a.resetSession()
	return err
}

// Logout ends the session and returns the view to the public catalog.
func (a *App) Logout() {
	a.resetSession()
	a.view.ShowPublicProducts()
	a.view.Notify("Logged out successfully", view.KindSuccess)
}

func (a *App) resetSession() {
	if err := a.session.Clear(); err != nil {
		a.log.Warn("failed to clear session token", zap.Error(err))
	}
	a.view.SetLoggedOut()
}

// LoadPublicProducts fetches and renders the public grid, behind the loading
// indicator. On failure the previous grid stays as is. An active session
// chains the admin load, so both grids track server state together.
func (a *App) LoadPublicProducts(ctx context.Context) error {
	a.view.SetLoading(true)
	defer a.view.SetLoading(false)

	products, err := a.api.PublicProducts(ctx)
	if err != nil {
		a.view.Notify("Error loading products: "+errMessage(err), view.KindError)
		return err
	}
	a.view.RenderPublicProducts(products)
	if a.session.Active() {
		return a.LoadAdminProducts(ctx)
	}
	return nil
}

// LoadAdminProducts fetches and renders the admin grid. A no-op without a
// token. Failures are logged, not surfaced: the public view stays usable.
func (a *App) LoadAdminProducts(ctx context.Context) error {
	if _, ok := a.session.Token(); !ok {
		return nil
	}
	products, err := a.api.AdminProducts(ctx)
	if err != nil {
		a.log.Error("failed to load admin products", zap.Error(err))
		return err
	}
	a.view.RenderAdminProducts(products)
	return nil
}

// LoadCategories repopulates the category selector, sentinel option first.
// Failures are logged only.
func (a *App) LoadCategories(ctx context.Context) error {
	categories, err := a.api.Categories(ctx)
	if err != nil {
		a.log.Error("failed to load categories", zap.Error(err))
		return err
	}
	a.view.SetCategoryOptions(categories)
	return nil
}

// SubmitProduct reads the product form, creates or updates depending on the
// id field, then reloads both grids. The server stays the source of truth:
// there is no optimistic local update.
func (a *App) SubmitProduct(ctx context.Context, form view.ProductForm) error {
	if !a.session.Active() {
		a.view.Notify("Please login first", view.KindError)
		return api.ErrNoSession
	}

	payload, err := parseForm(form)
	if err != nil {
		a.view.Notify("Error saving product: "+err.Error(), view.KindError)
		return err
	}

	isEdit := strings.TrimSpace(form.ID) != ""
	if isEdit {
		id, err := strconv.ParseInt(strings.TrimSpace(form.ID), 10, 64)
		if err != nil {
			a.view.Notify("Error saving product: invalid product id", view.KindError)
			return fmt.Errorf("invalid product id %q: %w", form.ID, err)
		}
		_, err = a.api.UpdateProduct(ctx, id, payload)
		if err != nil {
			a.view.Notify("Error saving product: "+errMessage(err), view.KindError)
			return err
		}
	} else {
		if _, err := a.api.CreateProduct(ctx, payload); err != nil {
			a.view.Notify("Error saving product: "+errMessage(err), view.KindError)
			return err
		}
	}

	a.view.CloseDialogs()
	if isEdit {
		a.view.Notify("Product updated successfully!", view.KindSuccess)
	} else {
		a.view.Notify("Product created successfully!", view.KindSuccess)
	}
	if err := a.LoadPublicProducts(ctx); err != nil {
		return err
	}
	return a.LoadAdminProducts(ctx)
}

// NewProductForm opens the create dialog with a reset form.
func (a *App) NewProductForm() {
	a.view.OpenProductDialog("Add New Product", view.ProductForm{Available: true})
}

// EditProduct fetches a product and opens the edit dialog pre-filled.
func (a *App) EditProduct(ctx context.Context, id int64) error {
	p, err := a.api.PublicProduct(ctx, id)
	if err != nil {
		a.view.Notify("Error loading product: "+errMessage(err), view.KindError)
		return err
	}
	a.view.OpenProductDialog("Edit Product", view.FormFromProduct(*p))
	return nil
}

// DeleteProduct asks for confirmation, then deletes and reloads both grids.
// Declining the confirmation issues no network call at all.
func (a *App) DeleteProduct(ctx context.Context, id int64) error {
	if !a.confirm("Are you sure you want to delete this product?") {
		return nil
	}
	if !a.session.Active() {
		a.view.Notify("Please login first", view.KindError)
		return api.ErrNoSession
	}
	if err := a.api.DeleteProduct(ctx, id); err != nil {
		a.view.Notify("Error deleting product: "+errMessage(err), view.KindError)
		return err
	}
	a.view.Notify("Product deleted successfully!", view.KindSuccess)
	if err := a.LoadPublicProducts(ctx); err != nil {
		return err
	}
	return a.LoadAdminProducts(ctx)
}

// SetSearchTerm routes search input through the debouncer; the filter only
// recomputes after typing pauses.
func (a *App) SetSearchTerm(term string) {
	a.search.Call(func() {
		a.view.SetSearchTerm(term)
	})
}

// SetCategory applies a category selection immediately.
func (a *App) SetCategory(category string) {
	a.view.SetCategory(category)
}

// ShowAdminPanel reveals the admin grid and refreshes it.
func (a *App) ShowAdminPanel(ctx context.Context) error {
	a.view.ShowAdminPanel()
	return a.LoadAdminProducts(ctx)
}

// parseForm converts form field strings into a product payload. An empty
// image URL is normalized to absent.
func parseForm(f view.ProductForm) (models.Product, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil {
		return models.Product{}, fmt.Errorf("invalid price %q", f.Price)
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(f.Quantity))
	if err != nil {
		return models.Product{}, fmt.Errorf("invalid quantity %q", f.Quantity)
	}
	p := models.Product{
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		Price:       price,
		Quantity:    quantity,
		Available:   f.Available,
	}
	if img := strings.TrimSpace(f.ImageURL); img != "" {
		p.ImageURL = &img
	}
	return p, nil
}

// errMessage prefers the server-provided message for notifications.
func errMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
