// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package page

import "context"

// Repository abstracts the persistence layer for CMS pages.
type Repository interface {
	List(context context.Context) ([]*Page, error)
	FindByID(context context.Context, id string) (*Page, error)
	FindBySlug(context context.Context, slug string) (*Page, error)
	Create(context context.Context, page *Page) error
	Update(context context.Context, id string, patch Patch) error
	Delete(context context.Context, id string) error
}
