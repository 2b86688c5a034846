package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fdweb/internal/models/lead_models"
	resp "fdweb/internal/models/response_models"
	"fdweb/pkg/utils"
)

// blockingEnrichment answers with the niche as market demand once release
// is closed or the context is cancelled.
type blockingEnrichment struct {
	release     chan struct{}
	mockupCalls atomic.Int32
}

func newBlockingEnrichment() *blockingEnrichment {
	return &blockingEnrichment{release: make(chan struct{})}
}

func (b *blockingEnrichment) wait(ctx context.Context) {
	select {
	case <-b.release:
	case <-ctx.Done():
	}
}

func (b *blockingEnrichment) AnalyzeMarket(ctx context.Context, niche, _, _ string) *resp.MarketAnalysis {
	b.wait(ctx)
	return &resp.MarketAnalysis{Demand: niche}
}

func (b *blockingEnrichment) GenerateMockupContent(ctx context.Context, businessName, _ string, _ lead_models.ServiceType, _ string) *lead_models.AIPageContent {
	b.mockupCalls.Add(1)
	b.wait(ctx)
	return &lead_models.AIPageContent{Title: businessName}
}

func (b *blockingEnrichment) RefineContent(_ context.Context, current lead_models.AIPageContent, _, _ string) *lead_models.AIPageContent {
	return &current
}

func taskLead(name, niche string) lead_models.DiagnosticRequest {
	lead := sampleLead("FD-1000", lead_models.ServiceSite)
	lead.UserName = name
	lead.Niche = niche
	return lead
}

func TestEnrichmentTasks_Ready(t *testing.T) {
	fake := newBlockingEnrichment()
	tasks := NewEnrichmentTasks(fake, time.Minute, newNopLogger())
	defer tasks.Close()

	started := tasks.Start("view-1", taskLead("Pizzaria Sol", "Pizzaria"))
	assert.Equal(t, resp.TaskLoading, started.Status)
	assert.NotEmpty(t, started.ID)

	got, err := tasks.Get("view-1")
	require.NoError(t, err)
	assert.Equal(t, resp.TaskLoading, got.Status)

	close(fake.release)

	require.Eventually(t, func() bool {
		got, err := tasks.Get("view-1")
		return err == nil && got.Status == resp.TaskReady
	}, time.Second, 5*time.Millisecond)

	got, err = tasks.Get("view-1")
	require.NoError(t, err)
	assert.Equal(t, "Pizzaria", got.Market.Demand)
	assert.Equal(t, "Pizzaria Sol", got.Mockup.Title)
	require.NotNil(t, got.FinishedAt)
	assert.Equal(t, started.ID, got.ID)
}

func TestEnrichmentTasks_Supersede(t *testing.T) {
	fake := newBlockingEnrichment()
	tasks := NewEnrichmentTasks(fake, time.Minute, newNopLogger())
	defer tasks.Close()

	first := tasks.Start("view-1", taskLead("Old", "old"))
	second := tasks.Start("view-1", taskLead("New", "new"))
	assert.NotEqual(t, first.ID, second.ID)

	close(fake.release)

	require.Eventually(t, func() bool {
		got, err := tasks.Get("view-1")
		return err == nil && got.Status == resp.TaskReady
	}, time.Second, 5*time.Millisecond)

	got, err := tasks.Get("view-1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, "new", got.Market.Demand)
	assert.Equal(t, "New", got.Mockup.Title)
}

func TestEnrichmentTasks_Cancel(t *testing.T) {
	fake := newBlockingEnrichment()
	tasks := NewEnrichmentTasks(fake, time.Minute, newNopLogger())

	tasks.Start("view-1", taskLead("Loja", "Moda"))
	require.NoError(t, tasks.Cancel("view-1"))

	_, err := tasks.Get("view-1")
	assert.True(t, errors.Is(err, utils.ErrTaskNotFound))
	assert.ErrorIs(t, tasks.Cancel("view-1"), utils.ErrTaskNotFound)

	// the cancelled worker must return without release being closed
	tasks.Close()

	_, err = tasks.Get("view-1")
	assert.ErrorIs(t, err, utils.ErrTaskNotFound)
}

func TestEnrichmentTasks_ReusesExistingContent(t *testing.T) {
	fake := newBlockingEnrichment()
	close(fake.release)
	tasks := NewEnrichmentTasks(fake, time.Minute, newNopLogger())
	defer tasks.Close()

	lead := taskLead("Academia Forte", "Academia")
	lead.AIContent = &lead_models.AIPageContent{Title: "Já gerado"}
	tasks.Start("view-2", lead)

	require.Eventually(t, func() bool {
		got, err := tasks.Get("view-2")
		return err == nil && got.Status == resp.TaskReady
	}, time.Second, 5*time.Millisecond)

	got, _ := tasks.Get("view-2")
	assert.Equal(t, "Já gerado", got.Mockup.Title)
	assert.Zero(t, fake.mockupCalls.Load())
}

func TestEnrichmentTasks_PrunesExpired(t *testing.T) {
	fake := newBlockingEnrichment()
	close(fake.release)
	tasks := NewEnrichmentTasks(fake, time.Minute, newNopLogger())
	defer tasks.Close()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tasks.now = func() time.Time { return now }

	tasks.Start("view-3", taskLead("Loja", "Moda"))
	require.Eventually(t, func() bool {
		got, err := tasks.Get("view-3")
		return err == nil && got.Status == resp.TaskReady
	}, time.Second, 5*time.Millisecond)

	tasks.mu.Lock()
	tasks.now = func() time.Time { return now.Add(2 * time.Minute) }
	tasks.mu.Unlock()

	_, err := tasks.Get("view-3")
	assert.ErrorIs(t, err, utils.ErrTaskNotFound)
}
