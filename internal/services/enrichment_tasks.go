package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fdweb/internal/models/lead_models"
	resp "fdweb/internal/models/response_models"
	"fdweb/pkg/utils"
)

const defaultTaskTTL = 30 * time.Minute

type EnrichmentTasksInterface interface {
	Start(viewID string, lead lead_models.DiagnosticRequest) resp.EnrichmentTask
	Get(viewID string) (*resp.EnrichmentTask, error)
	Cancel(viewID string) error
	Close()
}

type taskEntry struct {
	generation uint64
	cancel     context.CancelFunc
	task       resp.EnrichmentTask
}

// EnrichmentTasks runs the results page enrichment in the background, one
// task per view. A newer task for the same view supersedes the older one and
// the older results are never stored.
type EnrichmentTasks struct {
	enrichment EnrichmentServiceInterface
	ttl        time.Duration
	logger     *zap.Logger

	mu         sync.Mutex
	tasks      map[string]*taskEntry
	generation uint64

	base context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup
	now  func() time.Time
}

func NewEnrichmentTasks(enrichment EnrichmentServiceInterface, ttl time.Duration, logger *zap.Logger) *EnrichmentTasks {
	if ttl <= 0 {
		ttl = defaultTaskTTL
	}
	base, stop := context.WithCancel(context.Background())
	return &EnrichmentTasks{
		enrichment: enrichment,
		ttl:        ttl,
		logger:     logger,
		tasks:      make(map[string]*taskEntry),
		base:       base,
		stop:       stop,
		now:        time.Now,
	}
}

func (t *EnrichmentTasks) Start(viewID string, lead lead_models.DiagnosticRequest) resp.EnrichmentTask {
	t.mu.Lock()
	t.pruneLocked()

	if prev, ok := t.tasks[viewID]; ok {
		prev.cancel()
		t.logger.Debug("enrichment task superseded", zap.String("view_id", viewID), zap.String("task_id", prev.task.ID))
	}

	t.generation++
	ctx, cancel := context.WithCancel(t.base)
	entry := &taskEntry{
		generation: t.generation,
		cancel:     cancel,
		task: resp.EnrichmentTask{
			ID:        uuid.NewString(),
			ViewID:    viewID,
			Status:    resp.TaskLoading,
			StartedAt: t.now(),
		},
	}
	t.tasks[viewID] = entry
	snapshot := entry.task
	t.mu.Unlock()

	t.wg.Add(1)
	go t.run(ctx, viewID, entry.generation, lead)

	return snapshot
}

func (t *EnrichmentTasks) run(ctx context.Context, viewID string, generation uint64, lead lead_models.DiagnosticRequest) {
	defer t.wg.Done()

	var (
		market *resp.MarketAnalysis
		mockup *lead_models.AIPageContent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		market = t.enrichment.AnalyzeMarket(gctx, lead.Niche, lead.City, lead.State)
		return nil
	})
	g.Go(func() error {
		if lead.AIContent != nil {
			content := *lead.AIContent
			mockup = &content
			return nil
		}
		mockup = t.enrichment.GenerateMockupContent(gctx, lead.UserName, lead.Niche, lead.ServiceType, lead.City)
		return nil
	})
	_ = g.Wait()

	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.tasks[viewID]
	if !ok || entry.generation != generation || ctx.Err() != nil {
		return
	}
	finished := t.now()
	entry.task.Status = resp.TaskReady
	entry.task.Market = market
	entry.task.Mockup = mockup
	entry.task.FinishedAt = &finished
	entry.cancel()
}

func (t *EnrichmentTasks) Get(viewID string) (*resp.EnrichmentTask, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pruneLocked()

	entry, ok := t.tasks[viewID]
	if !ok {
		return nil, utils.ErrTaskNotFound
	}
	task := entry.task
	return &task, nil
}

// Cancel discards the task for viewID; a late result is dropped.
func (t *EnrichmentTasks) Cancel(viewID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.tasks[viewID]
	if !ok {
		return utils.ErrTaskNotFound
	}
	entry.cancel()
	delete(t.tasks, viewID)
	return nil
}

// Close cancels every task and waits for the workers to return.
func (t *EnrichmentTasks) Close() {
	t.stop()
	t.wg.Wait()

	t.mu.Lock()
	clear(t.tasks)
	t.mu.Unlock()
}

func (t *EnrichmentTasks) pruneLocked() {
	cutoff := t.now().Add(-t.ttl)
	for viewID, entry := range t.tasks {
		if entry.task.StartedAt.Before(cutoff) {
			entry.cancel()
			delete(t.tasks, viewID)
		}
	}
}
