package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/atinyakov/storeviewer/internal/models"
)

func strPtr(s string) *string { return &s }

func newTestView() (*View, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, NewNotifier(&buf)), &buf
}

func TestView_LoginLogoutTransitionsAreAtomic(t *testing.T) {
	v, _ := newTestView()

	v.SetLoggedIn("admin")
	if !v.LoggedIn() {
		t.Fatal("expected logged-in state")
	}
	if got := v.Welcome(); got != "Welcome, admin!" {
		t.Errorf("welcome = %q", got)
	}

	v.RenderAdminProducts([]models.Product{{ID: 1, Name: "Widget"}})
	v.ShowAdminPanel()

	v.SetLoggedOut()
	if v.LoggedIn() {
		t.Fatal("expected logged-out state")
	}
	if v.Welcome() != "" {
		t.Error("welcome text must be cleared on logout")
	}
	if v.AdminPanelVisible() {
		t.Error("admin panel must be hidden on logout")
	}
	if len(v.AdminProducts()) != 0 {
		t.Error("admin grid must be emptied on logout")
	}
}

func TestView_CategoryOptionsSentinelFirst(t *testing.T) {
	v, _ := newTestView()

	v.SetCategoryOptions([]string{"Tools", "Toys"})
	got := v.Categories()
	if len(got) != 3 || got[0] != AllCategories || got[1] != "Tools" || got[2] != "Toys" {
		t.Errorf("categories = %v", got)
	}
}

func TestView_FilteringOverRenderedGrid(t *testing.T) {
	v, _ := newTestView()
	v.RenderPublicProducts([]models.Product{
		{ID: 1, Name: "Widget", Category: "Tools"},
		{ID: 2, Name: "Doll", Category: "Toys"},
	})

	v.SetSearchTerm("widget")
	if visible := v.VisibleProducts(); len(visible) != 1 || visible[0].ID != 1 {
		t.Fatalf("visible = %+v", visible)
	}

	v.SetSearchTerm("")
	v.SetCategory("Toys")
	if visible := v.VisibleProducts(); len(visible) != 1 || visible[0].ID != 2 {
		t.Fatalf("visible = %+v", visible)
	}

	// The sentinel option selects all categories.
	v.SetCategory(AllCategories)
	if visible := v.VisibleProducts(); len(visible) != 2 {
		t.Fatalf("visible = %+v", visible)
	}

	// Filtering never drops the underlying grid contents.
	v.SetSearchTerm("no such product")
	if got := v.PublicProducts(); len(got) != 2 {
		t.Fatalf("grid contents changed: %+v", got)
	}
}

func TestView_RenderProductCards(t *testing.T) {
	v, buf := newTestView()

	v.RenderPublicProducts([]models.Product{
		{ID: 1, Name: "Widget", Category: "Tools", Price: 9.99, Quantity: 5, Available: true},
		{ID: 2, Name: "Gadget", Category: "Toys", Description: "Wind-up toy", Available: false,
			ImageURL: strPtr("http://img.example/g.png")},
	})

	out := buf.String()
	for _, want := range []string{
		"#1 [Tools] Widget  $9.99  Stock: 5",
		"No description available",
		"Wind-up toy",
		"Out of Stock",
		"image: http://img.example/g.png",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "actions:") {
		t.Error("public cards must not carry admin actions")
	}
}

func TestView_AdminCardsCarryActionsByID(t *testing.T) {
	v, buf := newTestView()

	v.RenderAdminProducts([]models.Product{{ID: 3, Name: "Widget", Category: "Tools", Available: true}})

	out := buf.String()
	if !strings.Contains(out, "actions: edit 3 | delete 3") {
		t.Errorf("output missing admin actions:\n%s", out)
	}
}

func TestView_EmptyGridPlaceholder(t *testing.T) {
	v, buf := newTestView()

	v.RenderPublicProducts(nil)
	if !strings.Contains(buf.String(), "No products found") {
		t.Errorf("output missing placeholder:\n%s", buf.String())
	}
}

func TestView_ProductDialog(t *testing.T) {
	v, _ := newTestView()

	form := ProductForm{ID: "7", Name: "Widget"}
	v.OpenProductDialog("Edit Product", form)
	if !v.ProductDialogOpen() {
		t.Fatal("dialog should be open")
	}
	if v.DialogTitle() != "Edit Product" {
		t.Errorf("title = %q", v.DialogTitle())
	}
	if got := v.Form(); got != form {
		t.Errorf("form = %+v", got)
	}

	v.CloseDialogs()
	if v.ProductDialogOpen() {
		t.Fatal("dialog should be closed")
	}
}

func TestFormFromProduct(t *testing.T) {
	p := models.Product{
		ID:          7,
		Name:        "Widget",
		Description: "steel",
		Category:    "Tools",
		Price:       9.99,
		Quantity:    5,
		Available:   true,
		ImageURL:    strPtr("http://img.example/w.png"),
	}

	form := FormFromProduct(p)
	want := ProductForm{
		ID:          "7",
		Name:        "Widget",
		Description: "steel",
		Category:    "Tools",
		Price:       "9.99",
		Quantity:    "5",
		ImageURL:    "http://img.example/w.png",
		Available:   true,
	}
	if form != want {
		t.Errorf("form = %+v; want %+v", form, want)
	}
}
