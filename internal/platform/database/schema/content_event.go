package schema

// EventTable represents the 'content.event' table
type EventTable struct {
	Table       string
	ID          string
	Title       string
	Location    string
	Date        string
	EndDate     string
	Description string
	ImagePath   string
	Tags        string
	EventType   string
	Featured    string
	CreatedAt   string
	UpdatedAt   string
}

// Event is the schema definition for content.event
var Event = EventTable{
	Table:       "content.event",
	ID:          "id",
	Title:       "title",
	Location:    "location",
	Date:        "date",
	EndDate:     "end_date",
	Description: "description",
	ImagePath:   "image_path",
	Tags:        "tags",
	EventType:   "event_type",
	Featured:    "featured",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}
