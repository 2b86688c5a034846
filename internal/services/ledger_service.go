package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"fdweb/internal/metrics"
	"fdweb/internal/models/lead_models"
	"fdweb/internal/repositories"
	"fdweb/pkg/utils"
)

// Slot names match the keys the browser build kept in localStorage.
const (
	LeadsSlot      = "fd_leads"
	ViewsSlot      = "fd_views"
	QuizStartsSlot = "fd_quiz_starts"
)

var errLeadsUnreadable = errors.New("leads slot is not a valid list")

type LedgerServiceInterface interface {
	Init(ctx context.Context) error
	RecordView(ctx context.Context) (int64, error)
	RecordQuizStart(ctx context.Context) (int64, error)
	AppendLead(ctx context.Context, lead lead_models.DiagnosticRequest) error
	ResetAll(ctx context.Context, confirm bool) error
	Snapshot(ctx context.Context) (lead_models.LedgerSnapshot, error)
	Contains(ctx context.Context, id string) (bool, error)
	Close() error
}

// LedgerService owns the three slots. Every write is read-modify-write under
// one mutex, so concurrent appends never lose a lead in this process.
type LedgerService struct {
	store  repositories.SlotStore
	logger *zap.Logger
	mu     sync.Mutex
}

func NewLedgerService(store repositories.SlotStore, logger *zap.Logger) *LedgerService {
	return &LedgerService{store: store, logger: logger}
}

// Init writes empty values for slots that were never written.
func (s *LedgerService) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	missing := map[string]string{}
	for key, empty := range map[string]string{LeadsSlot: "[]", ViewsSlot: "0", QuizStartsSlot: "0"} {
		_, found, err := s.store.Get(ctx, key)
		if err != nil {
			return storageErr(err)
		}
		if !found {
			missing[key] = empty
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if err := s.store.SetMany(ctx, missing); err != nil {
		return storageErr(err)
	}
	s.logger.Info("ledger slots initialized", zap.Int("slots", len(missing)))
	return nil
}

func (s *LedgerService) RecordView(ctx context.Context) (int64, error) {
	n, err := s.increment(ctx, ViewsSlot)
	if err != nil {
		return 0, err
	}
	metrics.PageViews.Inc()
	return n, nil
}

func (s *LedgerService) RecordQuizStart(ctx context.Context) (int64, error) {
	n, err := s.increment(ctx, QuizStartsSlot)
	if err != nil {
		return 0, err
	}
	metrics.QuizStarts.Inc()
	return n, nil
}

func (s *LedgerService) increment(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.readCounter(ctx, key)
	if err != nil {
		return 0, err
	}
	n++
	if err := s.store.Set(ctx, key, strconv.FormatInt(n, 10)); err != nil {
		return 0, storageErr(err)
	}
	return n, nil
}

// AppendLead adds a finalized lead to the end of the list.
func (s *LedgerService) AppendLead(ctx context.Context, lead lead_models.DiagnosticRequest) error {
	if lead.ID == "" || !lead.Complete() {
		return fmt.Errorf("%w: lead must have an id, name, city and state", utils.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	leads, err := s.loadLeads(ctx)
	if errors.Is(err, errLeadsUnreadable) {
		s.logger.Error("leads slot is unreadable, refusing to overwrite", zap.String("lead_id", lead.ID))
		return fmt.Errorf("%w: %v", utils.ErrStorageUnavailable, err)
	}
	if err != nil {
		return err
	}
	leads = append(leads, lead)

	raw, err := json.Marshal(leads)
	if err != nil {
		return fmt.Errorf("encode leads: %w", err)
	}
	if err := s.store.Set(ctx, LeadsSlot, string(raw)); err != nil {
		return storageErr(err)
	}

	metrics.DiagnosticsCompleted.WithLabelValues(string(lead.ServiceType)).Inc()
	s.logger.Info("lead recorded",
		zap.String("lead_id", lead.ID),
		zap.String("service_type", string(lead.ServiceType)),
		zap.Int("total_leads", len(leads)),
	)
	return nil
}

// ResetAll clears leads and counters in a single atomic write.
func (s *LedgerService) ResetAll(ctx context.Context, confirm bool) error {
	if !confirm {
		return utils.ErrResetNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.SetMany(ctx, map[string]string{
		LeadsSlot:      "[]",
		ViewsSlot:      "0",
		QuizStartsSlot: "0",
	})
	if err != nil {
		return storageErr(err)
	}
	s.logger.Warn("ledger reset")
	return nil
}

func (s *LedgerService) Snapshot(ctx context.Context) (lead_models.LedgerSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snap lead_models.LedgerSnapshot
	var err error
	if snap.Leads, err = s.readLeads(ctx); err != nil {
		return snap, err
	}
	if snap.Views, err = s.readCounter(ctx, ViewsSlot); err != nil {
		return snap, err
	}
	if snap.QuizStarts, err = s.readCounter(ctx, QuizStartsSlot); err != nil {
		return snap, err
	}
	return snap, nil
}

func (s *LedgerService) Contains(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	leads, err := s.readLeads(ctx)
	if err != nil {
		return false, err
	}
	for _, l := range leads {
		if l.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *LedgerService) Close() error {
	return s.store.Close()
}

// readCounter treats a missing or unparsable counter as zero.
func (s *LedgerService) readCounter(ctx context.Context, key string) (int64, error) {
	raw, found, err := s.store.Get(ctx, key)
	if err != nil {
		return 0, storageErr(err)
	}
	if !found {
		return 0, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 0 {
		s.logger.Warn("corrupted counter slot, treating as zero", zap.String("slot", key), zap.String("value", raw))
		return 0, nil
	}
	return n, nil
}

// readLeads treats a missing or unparsable list as empty.
func (s *LedgerService) readLeads(ctx context.Context) ([]lead_models.DiagnosticRequest, error) {
	leads, err := s.loadLeads(ctx)
	if errors.Is(err, errLeadsUnreadable) {
		s.logger.Warn("corrupted leads slot, treating as empty", zap.Error(err))
		return []lead_models.DiagnosticRequest{}, nil
	}
	return leads, err
}

// loadLeads reports an unparsable list as errLeadsUnreadable so writers never
// replace it.
func (s *LedgerService) loadLeads(ctx context.Context) ([]lead_models.DiagnosticRequest, error) {
	raw, found, err := s.store.Get(ctx, LeadsSlot)
	if err != nil {
		return nil, storageErr(err)
	}
	if !found || strings.TrimSpace(raw) == "" {
		return []lead_models.DiagnosticRequest{}, nil
	}
	var leads []lead_models.DiagnosticRequest
	if err := json.Unmarshal([]byte(raw), &leads); err != nil {
		return nil, fmt.Errorf("%w: %v", errLeadsUnreadable, err)
	}
	if leads == nil {
		leads = []lead_models.DiagnosticRequest{}
	}
	return leads, nil
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", utils.ErrStorageUnavailable, err)
}
