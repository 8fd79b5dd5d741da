package schema

// PostTable represents the 'content.post' table
type PostTable struct {
	Table         string
	ID            string
	Title         string
	Slug          string
	Content       string
	Excerpt       string
	FeaturedImage string
	Category      string
	Tags          string
	Published     string
	PublishedAt   string
	CreatedAt     string
	UpdatedAt     string
}

// Post is the schema definition for content.post
var Post = PostTable{
	Table:         "content.post",
	ID:            "id",
	Title:         "title",
	Slug:          "slug",
	Content:       "content",
	Excerpt:       "excerpt",
	FeaturedImage: "featured_image",
	Category:      "category",
	Tags:          "tags",
	Published:     "published",
	PublishedAt:   "published_at",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
}
