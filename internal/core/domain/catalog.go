package domain

import "time"

// Category groups products. Deleting a category does not cascade to its
// products; they keep a dangling category_id (behavior inherited from the
// previous system, see DESIGN.md).
type Category struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
}

// Image is either a product's main image (embedded one-to-one) or a member
// of its auxiliary collection. ProductID is the back-reference; empty for
// orphaned images.
type Image struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	URL         string `json:"url" bson:"url"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	ProductID   string `json:"product_id,omitempty" bson:"product_id,omitempty"`
}

// Product is the catalog aggregate root. CategoryID and MainImageID are set
// at creation and never empty afterwards. CreatedAt is stamped once and
// immutable.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	CategoryID  string    `json:"category_id" bson:"category_id"`
	MainImageID string    `json:"main_image_id" bson:"main_image_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
