package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studyprep/content-service/internal/cache"
	"github.com/studyprep/content-service/internal/events"
	"github.com/studyprep/content-service/internal/models"
	"github.com/studyprep/content-service/internal/normalizer"
	"github.com/studyprep/content-service/internal/remote"
	"github.com/studyprep/content-service/internal/validator"
)

const (
	templateCacheTTL = 10 * time.Minute
	eventSource      = "content-service"
	eventVersion     = "1.0"
)

// RemoteAPI is the slice of the remote content API client the template
// service depends on.
type RemoteAPI interface {
	GetQuestions(ctx context.Context, kind, id string) (any, error)
	SaveQuestions(ctx context.Context, kind, id string, sections []models.Section) (*remote.SaveResponse, error)
}

// SaveTemplateRequest is the editing-session state submitted on save: a flat
// question list tagged with section ids, plus the section metadata records.
type SaveTemplateRequest struct {
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description"`
	PaperInfo   models.PaperInfo     `json:"paper_info"`
	Questions   []models.Question    `json:"questions"`
	Sections    []models.SectionMeta `json:"sections" validate:"required"`
}

// TemplateService owns the load/save/validate/export lifecycle of quiz and
// past-paper templates.
type TemplateService interface {
	LoadTemplate(ctx context.Context, kind, id string) (*models.Template, error)
	SaveTemplate(ctx context.Context, kind, id, userID string, req SaveTemplateRequest) (*remote.SaveResponse, error)
	ValidateDocument(doc any) error
	ExportTemplate(ctx context.Context, kind, id string) ([]byte, error)
}

type templateService struct {
	remote    RemoteAPI
	cache     cache.CacheService
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *slog.Logger
}

func NewTemplateService(
	remoteAPI RemoteAPI,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	v *validator.Validator,
	logger *slog.Logger,
) TemplateService {
	return &templateService{
		remote:    remoteAPI,
		cache:     cacheService,
		publisher: publisher,
		validator: v,
		logger:    logger,
	}
}

// LoadTemplate fetches the questions document for a quiz or past paper and
// normalizes it into the canonical template shape. Normalized documents are
// cached; the cache is invalidated on save.
func (s *templateService) LoadTemplate(ctx context.Context, kind, id string) (*models.Template, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	key := templateCacheKey(kind, id)

	var cached models.Template
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("template cache read failed", "key", key, "error", err)
	}

	doc, err := s.remote.GetQuestions(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	template := normalizer.Normalize(doc)

	if err := s.cache.Set(ctx, key, template, templateCacheTTL); err != nil {
		s.logger.Warn("template cache write failed", "key", key, "error", err)
	}

	return template, nil
}

// SaveTemplate reassembles the flat editing-session state into the nested
// section document, validates it, and replaces the remote document wholesale.
// Nothing is persisted when validation fails, and a failed remote save is not
// retried.
func (s *templateService) SaveTemplate(ctx context.Context, kind, id, userID string, req SaveTemplateRequest) (*remote.SaveResponse, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	sections := normalizer.AssembleSections(req.Questions, req.Sections)
	totals := normalizer.ComputeTotals(sections)

	template := &models.Template{
		Title:       req.Title,
		Description: req.Description,
		PaperInfo:   req.PaperInfo,
		Sections:    sections,
	}
	template.PaperInfo.DurationMinutes = totals.EstimatedDurationMinutes

	if err := s.validator.Template().ValidateTemplate(template); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	resp, err := s.remote.SaveQuestions(ctx, kind, id, template.Sections)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, templateCacheKey(kind, id)); err != nil {
		s.logger.Warn("template cache invalidation failed", "kind", kind, "id", id, "error", err)
	}

	saved := events.TemplateSavedEvent{
		Kind:           kind,
		ResourceID:     id,
		Title:          template.Title,
		TotalQuestions: template.PaperInfo.TotalQuestions,
		TotalMarks:     template.PaperInfo.TotalMarks,
		SavedBy:        userID,
	}
	if resp.Data != nil {
		saved.QuestionsDataURL = resp.Data.QuestionsDataURL
	}
	s.publish(ctx, events.EventTemplateSaved, saved)

	s.logger.Info("template saved",
		"kind", kind,
		"id", id,
		"total_questions", template.PaperInfo.TotalQuestions,
		"total_marks", template.PaperInfo.TotalMarks)

	return resp, nil
}

// ValidateDocument gates a candidate document before preview or upload.
func (s *templateService) ValidateDocument(doc any) error {
	return s.validator.Template().ValidateDocument(doc)
}

// ExportTemplate serializes the normalized template as pretty-printed JSON
// and checks the result against the published schema.
func (s *templateService) ExportTemplate(ctx context.Context, kind, id string) ([]byte, error) {
	template, err := s.LoadTemplate(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize template: %w", err)
	}

	if err := validator.CheckCanonical(data); err != nil {
		return nil, fmt.Errorf("exported template failed schema check: %w", err)
	}

	s.publish(ctx, events.EventTemplateExported, events.TemplateExportedEvent{
		Kind:       kind,
		ResourceID: id,
		Format:     "json",
	})

	return data, nil
}

func (s *templateService) publish(ctx context.Context, eventType events.EventType, data interface{}) {
	event := &events.TemplateEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
	if err := s.publisher.PublishTemplateEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", eventType, "error", err)
	}
}

func checkKind(kind string) error {
	if kind != remote.KindQuiz && kind != remote.KindPastPaper {
		return fmt.Errorf("%w: %s", ErrTemplateInvalidKind, kind)
	}
	return nil
}

func templateCacheKey(kind, id string) string {
	return fmt.Sprintf("template:%s:%s", kind, id)
}
