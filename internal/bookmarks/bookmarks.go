// Package bookmarks keeps the user's saved mails, persisted through a Store.
package bookmarks

import (
	"context"
	"fmt"
	"slices"

	"github.com/gravitrone/mailsearch/cli/internal/api"
)

// Book is the in-memory bookmark list backed by a Store. Every mutation is saved
// before it returns. Not safe for concurrent use.
type Book struct {
	store Store
	items []api.Email
}

// Open loads the saved list from store.
func Open(ctx context.Context, store Store) (*Book, error) {
	items, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Book{store: store, items: items}, nil
}

// List returns the bookmarks in the order they were added.
func (b *Book) List() []api.Email {
	return slices.Clone(b.items)
}

// Count returns the number of bookmarks.
func (b *Book) Count() int { return len(b.items) }

// Contains reports whether a mail with id is bookmarked.
func (b *Book) Contains(id string) bool {
	return b.index(id) >= 0
}

// Get returns the bookmark with id.
func (b *Book) Get(id string) (api.Email, error) {
	i := b.index(id)
	if i < 0 {
		return api.Email{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return b.items[i], nil
}

// Add appends mail unless one with the same id is already saved. It reports whether
// the list changed.
func (b *Book) Add(ctx context.Context, mail api.Email) (bool, error) {
	if mail.ID == "" {
		return false, fmt.Errorf("bookmark requires an id")
	}
	if b.Contains(mail.ID) {
		return false, nil
	}
	next := append(slices.Clone(b.items), mail)
	if err := b.store.Save(ctx, next); err != nil {
		return false, err
	}
	b.items = next
	return true, nil
}

// Remove drops the bookmark with id.
func (b *Book) Remove(ctx context.Context, id string) error {
	i := b.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := slices.Delete(slices.Clone(b.items), i, i+1)
	if err := b.store.Save(ctx, next); err != nil {
		return err
	}
	b.items = next
	return nil
}

// Toggle adds mail when absent and removes it otherwise. It reports whether the mail
// is bookmarked afterwards.
func (b *Book) Toggle(ctx context.Context, mail api.Email) (bool, error) {
	if b.Contains(mail.ID) {
		return false, b.Remove(ctx, mail.ID)
	}
	_, err := b.Add(ctx, mail)
	return err == nil, err
}

// Close closes the underlying store.
func (b *Book) Close() error {
	return b.store.Close()
}

func (b *Book) index(id string) int {
	return slices.IndexFunc(b.items, func(m api.Email) bool { return m.ID == id })
}
