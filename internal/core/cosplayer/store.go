// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package cosplayer

import "context"

// Repository abstracts the persistence layer for cosplayer profiles.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Cosplayer, int, error)
	FindByID(context context.Context, id string) (*Cosplayer, error)
	Create(context context.Context, cosplayer *Cosplayer) error
	Update(context context.Context, id string, patch Patch) error
	Delete(context context.Context, id string) error

	// IncrementPopularity applies a server-side atomic counter bump and
	// returns the new value.
	IncrementPopularity(context context.Context, id string, delta int) (int, error)
}
