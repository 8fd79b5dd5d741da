// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package message

import "context"

// Repository abstracts the persistence layer for contact messages.
type Repository interface {
	List(context context.Context, status Status, limit, offset int) ([]*Message, int, error)
	FindByID(context context.Context, id string) (*Message, error)
	Create(context context.Context, message *Message) error
	UpdateStatus(context context.Context, id string, status Status) error
	Delete(context context.Context, id string) error
}
