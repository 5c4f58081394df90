package view

import (
	"strconv"

	"github.com/atinyakov/storeviewer/internal/models"
)

// ProductForm mirrors the fields of the product dialog. All values are
// strings, exactly as form controls hold them; parsing happens on submit.
// An empty ID means the dialog creates a new product.
type ProductForm struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       string
	Quantity    string
	ImageURL    string
	Available   bool
}

// FormFromProduct fills a form from an existing product, for the edit dialog.
func FormFromProduct(p models.Product) ProductForm {
	form := ProductForm{
		ID:          strconv.FormatInt(p.ID, 10),
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Quantity:    strconv.Itoa(p.Quantity),
		Available:   p.Available,
	}
	if p.ImageURL != nil {
		form.ImageURL = *p.ImageURL
	}
	return form
}
