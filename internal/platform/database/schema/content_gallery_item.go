package schema

// GalleryItemTable represents the 'content.gallery_item' table
type GalleryItemTable struct {
	Table       string
	ID          string
	Title       string
	CosplayerID string
	ImagePath   string
	Description string
	Tags        string
	Likes       string
	Featured    string
	CreatedAt   string
	UpdatedAt   string
}

// GalleryItem is the schema definition for content.gallery_item
var GalleryItem = GalleryItemTable{
	Table:       "content.gallery_item",
	ID:          "id",
	Title:       "title",
	CosplayerID: "cosplayer_id",
	ImagePath:   "image_path",
	Description: "description",
	Tags:        "tags",
	Likes:       "likes",
	Featured:    "featured",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}
