package catalog

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// We store price as a string to avoid rounding errors (NUMERIC in Postgres)
	Price      string  `json:"price"`
	Image      *string `json:"image"`
	CategoryID int64   `json:"category_id"`
}

// ListResponse is the paginated catalog page; the field names are what the
// storefront frontend already consumes.
// swagger:model
type ListResponse struct {
	Items       []Item `json:"items"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
}
