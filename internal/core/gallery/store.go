// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package gallery

import "context"

// Repository abstracts the persistence layer for gallery items.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Item, int, error)
	FindByID(context context.Context, id string) (*Item, error)
	Create(context context.Context, item *Item) error
	Update(context context.Context, id string, patch Patch) error
	Delete(context context.Context, id string) error

	// IncrementLikes applies a server-side atomic counter bump and returns
	// the new value. Two concurrent likers both land.
	IncrementLikes(context context.Context, id string, delta int) (int, error)
}
