package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emailbuilder/emailbuilder/internal/emailtemplate"
	"github.com/emailbuilder/emailbuilder/internal/emailtemplate/repository"
	"github.com/emailbuilder/emailbuilder/internal/layout"
	"github.com/emailbuilder/emailbuilder/internal/preview"
	"github.com/emailbuilder/emailbuilder/pkg/logger"
	"github.com/emailbuilder/emailbuilder/pkg/metrics"
	"github.com/google/uuid"
)

const (
	DownloadFilename = "email-template.html"
	SavedMessage     = "Template saved successfully"
)

var (
	ErrResourceUnavailable = errors.New("layout unavailable")
	ErrStoreWrite          = errors.New("store write failed")
	ErrRender              = errors.New("render failed")
)

// Rendered is a final template ready to be served as an attachment.
type Rendered struct {
	HTML     []byte
	Filename string
}

// Archiver stores rendered downloads. Implemented by storage.MinIOStorage.
type Archiver interface {
	Archive(ctx context.Context, key string, html []byte) error
}

// Service defines the template operations used by the handler layer.
type Service interface {
	GetLayout(ctx context.Context) (string, error)
	SaveDraft(ctx context.Context, d emailtemplate.Draft) (string, error)
	RenderAndDownload(ctx context.Context, d emailtemplate.Draft) (*Rendered, error)
	Preview(ctx context.Context, d emailtemplate.Draft) (string, error)
}

type Option func(*templateService)

// WithArchiver uploads every successful download to object storage.
func WithArchiver(a Archiver) Option {
	return func(s *templateService) { s.archiver = a }
}

// New returns a Service. lay may be nil when the layout failed to load at
// startup; layout-dependent operations then fail with ErrResourceUnavailable.
func New(repo repository.Repository, lay *layout.Layout, opts ...Option) Service {
	s := &templateService{repo: repo, layout: lay}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewMemoryService returns a Service backed by the in-memory repository and
// the embedded layout.
func NewMemoryService() Service {
	lay, err := layout.Default()
	if err != nil {
		panic(err)
	}
	return New(repository.NewMemoryRepo(), lay)
}

type templateService struct {
	repo     repository.Repository
	layout   *layout.Layout
	archiver Archiver
}

func (s *templateService) GetLayout(ctx context.Context) (string, error) {
	if s.layout == nil {
		return "", ErrResourceUnavailable
	}
	return s.layout.Raw(), nil
}

func (s *templateService) SaveDraft(ctx context.Context, d emailtemplate.Draft) (string, error) {
	if err := emailtemplate.Validate(d); err != nil {
		metrics.TemplateSaves.WithLabelValues("invalid").Inc()
		return "", err
	}
	id, err := s.repo.Insert(ctx, emailtemplate.NewPersistedTemplate(d))
	if err != nil {
		metrics.TemplateSaves.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	metrics.TemplateSaves.WithLabelValues("ok").Inc()
	logger.Debugf("template saved id=%s", id)
	return SavedMessage, nil
}

func (s *templateService) RenderAndDownload(ctx context.Context, d emailtemplate.Draft) (*Rendered, error) {
	if err := emailtemplate.Validate(d); err != nil {
		metrics.TemplateRenders.WithLabelValues("download", "invalid").Inc()
		return nil, err
	}
	if s.layout == nil {
		metrics.TemplateRenders.WithLabelValues("download", "error").Inc()
		return nil, ErrResourceUnavailable
	}
	start := time.Now()
	html, err := s.layout.Execute(layout.Fields{
		Title:      d.Title,
		Content:    d.Content,
		Footer:     d.Footer,
		ImageURL:   d.ImageURL,
		ButtonText: d.ButtonText,
		ButtonURL:  d.ButtonURL,
		HasButton:  d.HasButton(),
	})
	metrics.RenderDuration.WithLabelValues("download").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TemplateRenders.WithLabelValues("download", "error").Inc()
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	metrics.TemplateRenders.WithLabelValues("download", "ok").Inc()

	out := &Rendered{HTML: []byte(html), Filename: DownloadFilename}
	s.archive(ctx, out.HTML)
	return out, nil
}

func (s *templateService) Preview(ctx context.Context, d emailtemplate.Draft) (string, error) {
	if s.layout == nil {
		metrics.TemplateRenders.WithLabelValues("preview", "error").Inc()
		return "", ErrResourceUnavailable
	}
	start := time.Now()
	html, err := preview.Render(s.layout, d)
	metrics.RenderDuration.WithLabelValues("preview").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TemplateRenders.WithLabelValues("preview", "error").Inc()
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	metrics.TemplateRenders.WithLabelValues("preview", "ok").Inc()
	return html, nil
}

// archive never fails the download; errors are logged and counted.
func (s *templateService) archive(ctx context.Context, html []byte) {
	if s.archiver == nil {
		return
	}
	key := "renders/" + uuid.NewString() + ".html"
	if err := s.archiver.Archive(ctx, key, html); err != nil {
		metrics.ArchiveFailures.Inc()
		logger.Warnf("render archive failed key=%s: %v", key, err)
		return
	}
	logger.Debugf("render archived key=%s", key)
}
