package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tutorhub/tutor-support-api/internal/models"
	"github.com/tutorhub/tutor-support-api/internal/store"
)

// DocumentRepository manages shared-document metadata.
type DocumentRepository struct {
	store *store.Store
}

// NewDocumentRepository constructs the repository.
func NewDocumentRepository(st *store.Store) *DocumentRepository {
	return &DocumentRepository{store: st}
}

// ListByUser returns a user's documents. When publicOnly is set, private
// documents are filtered out (the viewer is not the owner).
func (r *DocumentRepository) ListByUser(ctx context.Context, userID string, publicOnly bool) ([]models.Document, error) {
	var result []models.Document
	err := r.store.View(ctx, func(state *store.State) error {
		result = make([]models.Document, 0)
		for _, doc := range state.Documents {
			if doc.UserID != userID {
				continue
			}
			if publicOnly && doc.Visibility != models.VisibilityPublic {
				continue
			}
			result = append(result, doc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Create stores new document metadata.
func (r *DocumentRepository) Create(ctx context.Context, doc models.Document) (models.Document, error) {
	if doc.ID == "" {
		doc.ID = fmt.Sprintf("doc-%s", uuid.NewString())
	}
	err := r.store.Update(ctx, func(state *store.State) error {
		state.Documents = append(state.Documents, doc)
		return nil
	})
	if err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

// SetVisibility flips a document between public and private.
func (r *DocumentRepository) SetVisibility(ctx context.Context, id string, visibility models.Visibility) error {
	return r.store.Update(ctx, func(state *store.State) error {
		for i := range state.Documents {
			if state.Documents[i].ID == id {
				state.Documents[i].Visibility = visibility
				return nil
			}
		}
		return ErrNotFound
	})
}

// SetPinned toggles the pinned flag.
func (r *DocumentRepository) SetPinned(ctx context.Context, id string, pinned bool) error {
	return r.store.Update(ctx, func(state *store.State) error {
		for i := range state.Documents {
			if state.Documents[i].ID == id {
				state.Documents[i].Pinned = pinned
				return nil
			}
		}
		return ErrNotFound
	})
}

// Delete removes document metadata.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	return r.store.Update(ctx, func(state *store.State) error {
		for i, doc := range state.Documents {
			if doc.ID == id {
				state.Documents = append(state.Documents[:i], state.Documents[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}
