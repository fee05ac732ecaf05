package models

// WishlistTemplate is a starter template offered on the create-list page.
type WishlistTemplate struct {
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ExampleItems []string `json:"example_items"`
}
