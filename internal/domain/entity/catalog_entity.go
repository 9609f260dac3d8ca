package entity

import "time"

// Category is the top level of the catalog hierarchy.
type Category struct {
	ID        string
	Name      string
	Slug      string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubCategory belongs to exactly one Category.
type SubCategory struct {
	ID         string
	CategoryID string
	Name       string
	Slug       string
	ImageURL   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SubSubCategory belongs to exactly one SubCategory.
type SubSubCategory struct {
	ID            string
	SubCategoryID string
	Name          string
	Slug          string
	ImageURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Product sits under any level of the hierarchy; the deeper parents are
// optional.
type Product struct {
	ID               string
	CategoryID       string
	SubCategoryID    string
	SubSubCategoryID string
	Name             string
	Slug             string
	Description      string
	Price            float64
	Stock            int
	ImageURL         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
