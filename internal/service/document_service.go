package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tutorhub/tutor-support-api/internal/models"
	appErrors "github.com/tutorhub/tutor-support-api/pkg/errors"
)

type documentRepository interface {
	ListByUser(ctx context.Context, userID string, publicOnly bool) ([]models.Document, error)
	Create(ctx context.Context, doc models.Document) (models.Document, error)
	SetVisibility(ctx context.Context, id string, visibility models.Visibility) error
	SetPinned(ctx context.Context, id string, pinned bool) error
	Delete(ctx context.Context, id string) error
}

// DocumentRequest carries metadata for an uploaded document.
type DocumentRequest struct {
	UserID     string `json:"userId" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Type       string `json:"type"`
	Size       string `json:"size"`
	Visibility string `json:"visibility"`
	URL        string `json:"url"`
}

// DocumentService manages shared-document metadata. Visibility is enforced
// here: a viewer who is not the owner only sees public documents.
type DocumentService struct {
	documents documentRepository
	validate  *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewDocumentService constructs the document service.
func NewDocumentService(documents documentRepository, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		documents: documents,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// ListForUser returns a user's documents as seen by the viewer.
func (s *DocumentService) ListForUser(ctx context.Context, ownerID, viewerID string) ([]models.Document, error) {
	if ownerID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "userId is required")
	}
	docs, err := s.documents.ListByUser(ctx, ownerID, viewerID != ownerID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return docs, nil
}

// Upload stores document metadata.
func (s *DocumentService) Upload(ctx context.Context, req DocumentRequest) (models.Document, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Document{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "userId and name are required")
	}

	visibility := models.Visibility(req.Visibility)
	if visibility == "" {
		visibility = models.VisibilityPrivate
	}
	if visibility != models.VisibilityPublic && visibility != models.VisibilityPrivate {
		return models.Document{}, appErrors.Clone(appErrors.ErrValidation, "visibility must be public or private")
	}

	docType := models.DocumentType(req.Type)
	if docType == "" {
		docType = models.DocOther
	}

	created, err := s.documents.Create(ctx, models.Document{
		UserID:     req.UserID,
		Name:       req.Name,
		Type:       docType,
		Size:       req.Size,
		UploadDate: s.now().Format(models.DateLayout),
		Visibility: visibility,
		URL:        req.URL,
	})
	if err != nil {
		return models.Document{}, mapRepositoryError(err)
	}

	s.logger.Info("document uploaded",
		zap.String("document_id", created.ID),
		zap.String("user_id", created.UserID))
	return created, nil
}

// SetVisibility flips a document between public and private.
func (s *DocumentService) SetVisibility(ctx context.Context, id, visibility string) error {
	v := models.Visibility(visibility)
	if v != models.VisibilityPublic && v != models.VisibilityPrivate {
		return appErrors.Clone(appErrors.ErrValidation, "visibility must be public or private")
	}
	if err := s.documents.SetVisibility(ctx, id, v); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

// SetPinned toggles the pinned flag.
func (s *DocumentService) SetPinned(ctx context.Context, id string, pinned bool) error {
	if err := s.documents.SetPinned(ctx, id, pinned); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

// Delete removes document metadata.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if err := s.documents.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	s.logger.Info("document deleted", zap.String("document_id", id))
	return nil
}
