package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"fdweb/internal/models/lead_models"
	"fdweb/internal/repositories"
	mem "fdweb/pkg/memcache"
)

func newMemoryLedger(t *testing.T) *LedgerService {
	t.Helper()
	return NewLedgerService(repositories.NewMemorySlotStore(mem.NewMemStore()), zap.NewNop())
}

func newNopLogger() *zap.Logger {
	return zap.NewNop()
}

func sampleLead(id string, svc lead_models.ServiceType) lead_models.DiagnosticRequest {
	lead := lead_models.NewDraft()
	lead.ID = id
	lead.UserName = "Empresa " + id
	lead.Niche = "Restaurante"
	lead.City = "Florianópolis"
	lead.State = "SC"
	lead.ServiceType = svc
	return lead
}

// failingStore fails every call with err.
type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingStore) Set(context.Context, string, string) error { return f.err }
func (f failingStore) SetMany(context.Context, map[string]string) error { return f.err }
func (f failingStore) Close() error { return nil }

var errDown = errors.New("connection refused")

// stubStore is a plain map seeded with raw slot values.
type stubStore map[string]string

func (s stubStore) Get(_ context.Context, k string) (string, bool, error) {
	v, ok := s[k]
	return v, ok, nil
}

func (s stubStore) Set(_ context.Context, k, v string) error {
	s[k] = v
	return nil
}

func (s stubStore) SetMany(_ context.Context, values map[string]string) error {
	for k, v := range values {
		s[k] = v
	}
	return nil
}

func (s stubStore) Close() error { return nil }

func leadIDs(leads []lead_models.DiagnosticRequest) []string {
	out := make([]string, len(leads))
	for i, l := range leads {
		out[i] = l.ID
	}
	return out
}

func seqIDs(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s-%d", prefix, 1000+i)
	}
	return out
}
