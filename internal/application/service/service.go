// Package service orchestrates the application lifecycle: intake, status
// lookups, and the submission transition with its notification side effect.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	appmetrics "insureease/internal/application/metrics"
	"insureease/internal/application/models"
	"insureease/internal/application/store"
	"insureease/internal/audit"
	"insureease/internal/notify"
	dErrors "insureease/pkg/domain-errors"
	"insureease/pkg/platform/sentinel"
	"insureease/pkg/requestcontext"
)

// Service drives the application lifecycle over an injected store and mailer.
type Service struct {
	store   store.ApplicationStore
	mailer  notify.Mailer
	cache   store.StatusCache
	audit   *audit.Publisher
	logger  *slog.Logger
	metrics *appmetrics.Metrics
}

type serviceConfig struct {
	cache   store.StatusCache
	audit   *audit.Publisher
	logger  *slog.Logger
	metrics *appmetrics.Metrics
}

// Option configures optional service collaborators.
type Option func(*serviceConfig)

// WithStatusCache enables the status projection cache.
func WithStatusCache(cache store.StatusCache) Option {
	return func(cfg *serviceConfig) { cfg.cache = cache }
}

// WithAudit enables audit event emission.
func WithAudit(publisher *audit.Publisher) Option {
	return func(cfg *serviceConfig) { cfg.audit = publisher }
}

// WithLogger sets the logger; a discarding default is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) { cfg.logger = logger }
}

// WithMetrics enables application metrics.
func WithMetrics(m *appmetrics.Metrics) Option {
	return func(cfg *serviceConfig) { cfg.metrics = m }
}

func New(applications store.ApplicationStore, mailer notify.Mailer, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		store:   applications,
		mailer:  mailer,
		cache:   cfg.cache,
		audit:   cfg.audit,
		logger:  logger,
		metrics: cfg.metrics,
	}
}

// Create maps a raw submission into a record, stamps the initial lifecycle
// fields, and persists it. The store re-runs validation before the write.
// Returns the assigned application reference on success.
func (s *Service) Create(ctx context.Context, sub models.Submission) (string, error) {
	start := time.Now()

	app, err := models.FromSubmission(sub)
	if err != nil {
		return "", err
	}

	app.ID = newReference()
	app.Status = models.StatusPending
	app.Date = requestcontext.Now(ctx)

	if err := app.Validate(); err != nil {
		s.incrementValidationFailure()
		return "", err
	}

	if err := s.store.Save(ctx, app); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			s.incrementValidationFailure()
			return "", err
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal,
			"An error occurred while processing your application")
	}

	s.emitAudit(ctx, audit.Event{
		ApplicationID: app.ID,
		Action:        audit.ActionCreated,
		Detail:        string(app.PackageType),
	})
	if s.metrics != nil {
		s.metrics.IncrementCreated()
		s.metrics.ObserveCreate(start)
	}
	return app.ID, nil
}

// Status returns the read-only status projection for one application.
func (s *Service) Status(ctx context.Context, id string) (*store.StatusProjection, error) {
	start := time.Now()
	defer s.observeStatus(start)

	if id == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "No application ID provided")
	}

	if s.cache != nil {
		if projection, err := s.cache.Get(ctx, id); err == nil {
			return projection, nil
		}
	}

	app, err := s.store.FindByID(ctx, id)
	if err != nil {
		code := dErrors.CodeInternal
		if errors.Is(err, sentinel.ErrNotFound) {
			code = dErrors.CodeNotFound
		}
		return nil, dErrors.Wrap(err, code, fmt.Sprintf("Error retrieving application: %v", err))
	}

	projection := &store.StatusProjection{
		Status:        app.Status,
		Date:          app.Date,
		ApplicantName: app.ApplicantName(),
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, id, projection); err != nil {
			s.logger.WarnContext(ctx, "failed to cache status projection",
				"application_id", id,
				"error", err.Error(),
			)
		}
	}
	return projection, nil
}

// Submit takes the one-way Pending → Submitted transition and fires the
// applicant notification. Delivery failure is logged and counted but never
// rolls back the transition or surfaces to the caller.
func (s *Service) Submit(ctx context.Context, id string) error {
	if id == "" {
		return dErrors.New(dErrors.CodeBadRequest, "No application ID provided")
	}

	app, err := s.store.Execute(ctx, id,
		func(a *models.Application) error {
			return a.CanSubmit()
		},
		func(a *models.Application) {
			a.ApplySubmission()
		},
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeNotFound, fmt.Sprintf("Error retrieving application: %v", err))
		}
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to submit application")
	}

	s.invalidateStatus(ctx, id)
	s.emitAudit(ctx, audit.Event{ApplicationID: id, Action: audit.ActionSubmitted})
	if s.metrics != nil {
		s.metrics.IncrementSubmitted()
	}

	s.sendSubmissionNotice(ctx, app)
	return nil
}

// sendSubmissionNotice delivers the confirmation email. Best effort: the
// status transition has already committed when this runs.
func (s *Service) sendSubmissionNotice(ctx context.Context, app *models.Application) {
	subject := fmt.Sprintf("Insurance Application Received - %s", app.ID)
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>Thank you for submitting your insurance application with InsureEase.</p>
<p>Your application reference number is: <strong>%s</strong></p>
<p>We will review your application and get back to you shortly.</p>
<p>Regards,<br>InsureEase Team</p>`, notify.GreetingName(app.FirstName, app.LastName, app.Email), app.ID)

	if err := s.mailer.Send(ctx, app.Email, subject, body); err != nil {
		if s.metrics != nil {
			s.metrics.IncrementNotificationFailure()
		}
		s.logger.ErrorContext(ctx, "failed to send application notification",
			"application_id", app.ID,
			"error", err.Error(),
		)
	}
}

func (s *Service) invalidateStatus(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate status projection",
			"application_id", id,
			"error", err.Error(),
		)
	}
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"application_id", event.ApplicationID,
			"action", event.Action,
			"error", err.Error(),
		)
	}
}

func (s *Service) incrementValidationFailure() {
	if s.metrics != nil {
		s.metrics.IncrementValidationFailure()
	}
}

func (s *Service) observeStatus(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveStatus(start)
	}
}

// newReference assigns a short human-readable application reference. The
// store's primary key constraint backstops the (vanishingly unlikely)
// collision case.
func newReference() string {
	return "APP-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
