package categories

// Category groups job listings under a unique name and URL-safe slug.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
