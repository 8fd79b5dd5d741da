package schema

// MessageTable represents the 'content.message' table
type MessageTable struct {
	Table     string
	ID        string
	Name      string
	Email     string
	Subject   string
	Body      string
	Status    string
	CreatedAt string
}

// Message is the schema definition for content.message
var Message = MessageTable{
	Table:     "content.message",
	ID:        "id",
	Name:      "name",
	Email:     "email",
	Subject:   "subject",
	Body:      "body",
	Status:    "status",
	CreatedAt: "created_at",
}
