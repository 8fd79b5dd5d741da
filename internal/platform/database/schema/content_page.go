package schema

// PageTable represents the 'content.page' table
type PageTable struct {
	Table           string
	ID              string
	Title           string
	Slug            string
	Content         string
	MetaTitle       string
	MetaDescription string
	UpdatedAt       string
	UpdatedBy       string
	CreatedAt       string
}

// Page is the schema definition for content.page
var Page = PageTable{
	Table:           "content.page",
	ID:              "id",
	Title:           "title",
	Slug:            "slug",
	Content:         "content",
	MetaTitle:       "meta_title",
	MetaDescription: "meta_description",
	UpdatedAt:       "updated_at",
	UpdatedBy:       "updated_by",
	CreatedAt:       "created_at",
}
