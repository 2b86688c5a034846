package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fdweb/internal/models/lead_models"
	resp "fdweb/internal/models/response_models"
	mem "fdweb/pkg/memcache"
	"fdweb/pkg/utils"
)

const (
	draftKeyPrefix  = "draft:"
	defaultDraftTTL = 2 * time.Hour
	leadIDAttempts  = 5
)

type CollectorServiceInterface interface {
	Start(ctx context.Context) (*resp.QuizSessionResponse, error)
	Get(sessionID string) (*resp.QuizSessionResponse, error)
	UpdateProfile(sessionID string, in ProfileInput) (*resp.QuizSessionResponse, error)
	SelectPopulation(sessionID string, population int) (*resp.QuizSessionResponse, error)
	SelectService(sessionID string, t lead_models.ServiceType) (*resp.QuizSessionResponse, error)
	SelectBudget(sessionID string, budget int) (*resp.QuizSessionResponse, error)
	Next(sessionID string) (*resp.QuizSessionResponse, error)
	Back(sessionID string) (*resp.QuizSessionResponse, error)
	Finalize(ctx context.Context, sessionID string) (*resp.DiagnosticResultResponse, error)
}

// CollectorService keeps one QuizFlow per browser session in the draft store.
type CollectorService struct {
	drafts   mem.Store
	ttl      time.Duration
	ledger   LedgerServiceInterface
	results  ResultsServiceInterface
	notifier LeadNotifierInterface
	logger   *zap.Logger

	mu    sync.Mutex
	newID func() string
}

func NewCollectorService(
	drafts mem.Store,
	ttl time.Duration,
	ledger LedgerServiceInterface,
	results ResultsServiceInterface,
	notifier LeadNotifierInterface,
	logger *zap.Logger,
) *CollectorService {
	if ttl <= 0 {
		ttl = defaultDraftTTL
	}
	return &CollectorService{
		drafts:   drafts,
		ttl:      ttl,
		ledger:   ledger,
		results:  results,
		notifier: notifier,
		logger:   logger,
		newID:    randomLeadID,
	}
}

// randomLeadID draws "FD-" plus four digits.
func randomLeadID() string {
	return fmt.Sprintf("FD-%d", 1000+rand.IntN(9000))
}

func (s *CollectorService) Start(ctx context.Context) (*resp.QuizSessionResponse, error) {
	if _, err := s.ledger.RecordQuizStart(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	flow := NewQuizFlow()
	if err := s.save(id, flow); err != nil {
		return nil, err
	}
	s.logger.Debug("collector session started", zap.String("session_id", id))
	return sessionResponse(id, flow), nil
}

func (s *CollectorService) Get(sessionID string) (*resp.QuizSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionResponse(sessionID, flow), nil
}

func (s *CollectorService) UpdateProfile(sessionID string, in ProfileInput) (*resp.QuizSessionResponse, error) {
	return s.mutate(sessionID, func(q *QuizFlow) error { return q.SetProfile(in) })
}

func (s *CollectorService) SelectPopulation(sessionID string, population int) (*resp.QuizSessionResponse, error) {
	return s.mutate(sessionID, func(q *QuizFlow) error { return q.SelectPopulation(population) })
}

func (s *CollectorService) SelectService(sessionID string, t lead_models.ServiceType) (*resp.QuizSessionResponse, error) {
	return s.mutate(sessionID, func(q *QuizFlow) error { return q.SelectService(t) })
}

func (s *CollectorService) SelectBudget(sessionID string, budget int) (*resp.QuizSessionResponse, error) {
	return s.mutate(sessionID, func(q *QuizFlow) error { return q.SelectBudget(budget) })
}

func (s *CollectorService) Next(sessionID string) (*resp.QuizSessionResponse, error) {
	return s.mutate(sessionID, (*QuizFlow).Next)
}

func (s *CollectorService) Back(sessionID string) (*resp.QuizSessionResponse, error) {
	return s.mutate(sessionID, (*QuizFlow).Back)
}

// Finalize persists the lead and closes the session. If the ledger write
// fails the draft stays as it was, without an id.
func (s *CollectorService) Finalize(ctx context.Context, sessionID string) (*resp.DiagnosticResultResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	if err := flow.CheckFinalize(); err != nil {
		return nil, err
	}

	id, err := s.uniqueLeadID(ctx)
	if err != nil {
		return nil, err
	}
	lead, err := flow.Finalize(id)
	if err != nil {
		return nil, err
	}

	result, err := s.results.Build(lead)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.AppendLead(ctx, lead); err != nil {
		return nil, err
	}

	s.drafts.Delete(draftKeyPrefix + sessionID)
	s.logger.Info("diagnostic finalized",
		zap.String("lead_id", lead.ID),
		zap.String("service_type", string(lead.ServiceType)),
		zap.String("city", lead.City),
	)
	s.notifier.NotifyNewLead(result)
	return result, nil
}

func (s *CollectorService) uniqueLeadID(ctx context.Context) (string, error) {
	var id string
	for range leadIDAttempts {
		id = s.newID()
		taken, err := s.ledger.Contains(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	s.logger.Warn("lead id collision persisted", zap.String("lead_id", id))
	return id, nil
}

func (s *CollectorService) mutate(sessionID string, apply func(q *QuizFlow) error) (*resp.QuizSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	if err := apply(flow); err != nil {
		return nil, err
	}
	if err := s.save(sessionID, flow); err != nil {
		return nil, err
	}
	return sessionResponse(sessionID, flow), nil
}

func (s *CollectorService) load(sessionID string) (*QuizFlow, error) {
	raw, ok := s.drafts.Get(draftKeyPrefix + sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	var flow QuizFlow
	if err := json.Unmarshal([]byte(raw), &flow); err != nil {
		s.logger.Warn("discarding unreadable draft", zap.String("session_id", sessionID), zap.Error(err))
		s.drafts.Delete(draftKeyPrefix + sessionID)
		return nil, utils.ErrSessionNotFound
	}
	return &flow, nil
}

func (s *CollectorService) save(sessionID string, flow *QuizFlow) error {
	raw, err := json.Marshal(flow)
	if err != nil {
		return err
	}
	s.drafts.Set(draftKeyPrefix+sessionID, string(raw), s.ttl)
	return nil
}

func sessionResponse(id string, flow *QuizFlow) *resp.QuizSessionResponse {
	return &resp.QuizSessionResponse{
		SessionID:   id,
		CurrentStep: flow.Step,
		TotalSteps:  TotalSteps,
		Draft:       flow.Draft,
		CanGoBack:   flow.CanGoBack(),
		CanAdvance:  flow.CanAdvance(),
		CanFinalize: flow.CanFinalize(),
	}
}
