// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package event

import "context"

// Repository abstracts the persistence layer for calendar events.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Event, int, error)
	FindByID(context context.Context, id string) (*Event, error)
	Create(context context.Context, event *Event) error
	Update(context context.Context, id string, patch Patch) error
	Delete(context context.Context, id string) error
}
