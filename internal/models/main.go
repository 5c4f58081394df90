// Package models defines the data structures exchanged with the store backend.
package models

// Product is a catalog item. The server owns products; the client only holds
// transient copies for rendering and editing.
type Product struct {
	// ID is the server-assigned identifier.
	ID int64 `json:"id"`
	// Name is the display name of the product.
	Name string `json:"name"`
	// Description is an optional free-text description.
	Description string `json:"description,omitempty"`
	// Category groups products for filtering.
	Category string `json:"category"`
	// Price is the unit price.
	Price float64 `json:"price"`
	// Quantity is the stock count.
	Quantity int `json:"quantity"`
	// Available reports whether the product can currently be sold.
	Available bool `json:"available"`
	// ImageURL is an optional link to a product image; nil when absent.
	ImageURL *string `json:"imageUrl,omitempty"`
}

// Credentials carry the values of the login form.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the body the backend returns on a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// ErrorBody is the error payload the backend returns on failed requests.
type ErrorBody struct {
	Message string `json:"message"`
}
