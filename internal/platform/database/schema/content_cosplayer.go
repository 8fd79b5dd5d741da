package schema

// CosplayerTable represents the 'content.cosplayer' table
type CosplayerTable struct {
	Table        string
	ID           string
	Name         string
	Character    string
	Bio          string
	Location     string
	ProfileImage string
	Tags         string
	Popularity   string
	Status       string
	Featured     string
	SocialLinks  string
	CreatedAt    string
	UpdatedAt    string
}

// Cosplayer is the schema definition for content.cosplayer
var Cosplayer = CosplayerTable{
	Table:        "content.cosplayer",
	ID:           "id",
	Name:         "name",
	Character:    "character",
	Bio:          "bio",
	Location:     "location",
	ProfileImage: "profile_image",
	Tags:         "tags",
	Popularity:   "popularity",
	Status:       "status",
	Featured:     "featured",
	SocialLinks:  "social_links",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}
