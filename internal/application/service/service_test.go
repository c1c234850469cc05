package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insureease/internal/application/models"
	"insureease/internal/application/store"
	"insureease/internal/audit"
	dErrors "insureease/pkg/domain-errors"
	"insureease/pkg/platform/sentinel"
	"insureease/pkg/requestcontext"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

// recordingMailer captures outbound mail; set fail to simulate delivery
// outages.
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// memoryStatusCache is a map-backed StatusCache for exercising the cache path
// without Redis.
type memoryStatusCache struct {
	mu      sync.Mutex
	entries map[string]store.StatusProjection
	sets    int
	hits    int
}

func newMemoryStatusCache() *memoryStatusCache {
	return &memoryStatusCache{entries: make(map[string]store.StatusProjection)}
}

func (c *memoryStatusCache) Get(_ context.Context, id string) (*store.StatusProjection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.entries[id]; ok {
		c.hits++
		return &p, nil
	}
	return nil, sentinel.ErrNotFound
}

func (c *memoryStatusCache) Set(_ context.Context, id string, p *store.StatusProjection) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = *p
	c.sets++
	return nil
}

func (c *memoryStatusCache) Invalidate(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return nil
}

func validSubmission() models.Submission {
	return models.Submission{
		"firstName":         "Naledi",
		"lastName":          "Mahlangu",
		"email":             "naledi@example.com",
		"idType":            "passport",
		"idNumber":          "AB123456",
		"accountNumber":     "12345678",
		"packageType":       "standard",
		"coverageAmount":    "coverage_100k",
		"additionalOptions": []string{"critical_illness"},
	}
}

func newService(t *testing.T, opts ...Option) (*Service, *recordingMailer) {
	t.Helper()
	mailer := &recordingMailer{}
	return New(store.NewInMemory(), mailer, opts...), mailer
}

func TestCreateAssignsReferenceAndPendingStatus(t *testing.T) {
	svc, _ := newService(t)
	created := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), created)

	id, err := svc.Create(ctx, validSubmission())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "APP-"), "expected APP- prefix, got %s", id)

	projection, err := svc.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, projection.Status)
	assert.Equal(t, created, projection.Date)
	assert.Equal(t, "Naledi Mahlangu", projection.ApplicantName)
}

func TestCreateRejectsMissingData(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, "No data provided", dErrors.MessageOf(err))
}

func TestCreateRejectsInvalidRecords(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(models.Submission)
		message string
	}{
		{
			name:    "short account number",
			mutate:  func(sub models.Submission) { sub["accountNumber"] = "1234567" },
			message: "Account number must be at least 8 digits",
		},
		{
			name:    "non-digit account number",
			mutate:  func(sub models.Submission) { sub["accountNumber"] = "12a45678" },
			message: "Account number must contain only digits",
		},
		{
			name:    "bad email",
			mutate:  func(sub models.Submission) { sub["email"] = "naledi-at-example" },
			message: "Please enter a valid email address",
		},
		{
			name:    "short passport number",
			mutate:  func(sub models.Submission) { sub["idNumber"] = "AB1" },
			message: "Passport number must be at least 6 characters",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newService(t)
			sub := validSubmission()
			tc.mutate(sub)

			_, err := svc.Create(context.Background(), sub)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			assert.Equal(t, tc.message, dErrors.MessageOf(err))
		})
	}
}

func TestSubmitSendsNotificationOnce(t *testing.T) {
	auditStore := audit.NewInMemoryStore()
	svc, mailer := newService(t, WithAudit(audit.NewPublisher(auditStore)))
	ctx := context.Background()

	id, err := svc.Create(ctx, validSubmission())
	require.NoError(t, err)

	require.NoError(t, svc.Submit(ctx, id))

	require.Equal(t, 1, mailer.count())
	assert.Equal(t, "naledi@example.com", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].subject, id)
	assert.Contains(t, mailer.sent[0].body, "Dear Naledi Mahlangu")
	assert.Contains(t, mailer.sent[0].body, id)

	projection, err := svc.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, projection.Status)

	// Second submit is a conflict and must not re-send.
	err = svc.Submit(ctx, id)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	assert.Equal(t, 1, mailer.count())

	events, err := auditStore.ListByApplication(ctx, id)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, audit.ActionCreated, events[0].Action)
	assert.Equal(t, audit.ActionSubmitted, events[1].Action)
}

func TestSubmitSurvivesNotificationFailure(t *testing.T) {
	svc, mailer := newService(t)
	mailer.fail = true
	ctx := context.Background()

	id, err := svc.Create(ctx, validSubmission())
	require.NoError(t, err)

	// Delivery fails but the transition must stand and no error may surface.
	require.NoError(t, svc.Submit(ctx, id))

	projection, err := svc.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, projection.Status)
}

func TestSubmitUnknownApplication(t *testing.T) {
	svc, mailer := newService(t)

	err := svc.Submit(context.Background(), "APP-DOESNOTEXIST")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	assert.Equal(t, 0, mailer.count())
}

func TestStatusRequiresID(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Status(context.Background(), "")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	assert.Equal(t, "No application ID provided", dErrors.MessageOf(err))
}

func TestStatusUnknownApplication(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Status(context.Background(), "APP-DOESNOTEXIST")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	assert.True(t, strings.HasPrefix(dErrors.MessageOf(err), "Error retrieving application:"))
}

func TestStatusUsesCache(t *testing.T) {
	cache := newMemoryStatusCache()
	svc, _ := newService(t, WithStatusCache(cache))
	ctx := context.Background()

	id, err := svc.Create(ctx, validSubmission())
	require.NoError(t, err)

	_, err = svc.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 0, cache.hits)

	_, err = svc.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits, "second lookup should hit the cache")

	// The submission transition invalidates the projection so the next
	// lookup observes the new status.
	require.NoError(t, svc.Submit(ctx, id))
	projection, err := svc.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, projection.Status)
}
