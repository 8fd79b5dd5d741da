// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package post

import "context"

// Repository abstracts the persistence layer for blog posts.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error)
	FindByID(context context.Context, id string) (*Post, error)
	FindBySlug(context context.Context, slug string) (*Post, error)
	Create(context context.Context, post *Post) error
	Update(context context.Context, id string, patch Patch) error
	Delete(context context.Context, id string) error
}
