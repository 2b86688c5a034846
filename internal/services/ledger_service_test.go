package services

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fdweb/internal/models/lead_models"
	"fdweb/internal/repositories"
	"fdweb/pkg/utils"
)

func TestLedgerStartsEmpty(t *testing.T) {
	ledger := newMemoryLedger(t)

	snap, err := ledger.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Leads)
	assert.Zero(t, snap.Views)
	assert.Zero(t, snap.QuizStarts)
}

func TestLedgerInitWritesMissingSlotsOnly(t *testing.T) {
	store := stubStore{ViewsSlot: "7"}
	ledger := NewLedgerService(store, zap.NewNop())

	require.NoError(t, ledger.Init(context.Background()))

	assert.Equal(t, "7", store[ViewsSlot])
	assert.Equal(t, "0", store[QuizStartsSlot])
	assert.Equal(t, "[]", store[LeadsSlot])
}

func TestLedgerCountersIncrement(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger(t)

	for i := 1; i <= 3; i++ {
		n, err := ledger.RecordView(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(i), n)
	}
	n, err := ledger.RecordQuizStart(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	snap, err := ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), snap.Views)
	assert.Equal(t, int64(1), snap.QuizStarts)
}

func TestLedgerAppendKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger(t)

	require.NoError(t, ledger.AppendLead(ctx, sampleLead("FD-1001", lead_models.ServiceSite)))
	require.NoError(t, ledger.AppendLead(ctx, sampleLead("FD-1002", lead_models.ServiceEcommerce)))
	require.NoError(t, ledger.AppendLead(ctx, sampleLead("FD-1003", lead_models.ServiceSystem)))

	snap, err := ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"FD-1001", "FD-1002", "FD-1003"}, leadIDs(snap.Leads))

	found, err := ledger.Contains(ctx, "FD-1002")
	require.NoError(t, err)
	assert.True(t, found)
	found, err = ledger.Contains(ctx, "FD-9999")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLedgerAppendRejectsIncompleteLead(t *testing.T) {
	ledger := newMemoryLedger(t)

	lead := sampleLead("", lead_models.ServiceSite)
	assert.ErrorIs(t, ledger.AppendLead(context.Background(), lead), utils.ErrInvalidInput)

	lead = sampleLead("FD-1000", lead_models.ServiceSite)
	lead.City = ""
	assert.ErrorIs(t, ledger.AppendLead(context.Background(), lead), utils.ErrInvalidInput)
}

func TestLedgerConcurrentAppendsAreNotLost(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger(t)
	ids := seqIDs("FD", 40)

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			assert.NoError(t, ledger.AppendLead(ctx, sampleLead(id, lead_models.ServiceSite)))
			_, err := ledger.RecordView(ctx)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	snap, err := ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Leads, len(ids))
	assert.ElementsMatch(t, ids, leadIDs(snap.Leads))
	assert.Equal(t, int64(len(ids)), snap.Views)
}

func TestLedgerResetRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger(t)
	require.NoError(t, ledger.AppendLead(ctx, sampleLead("FD-1001", lead_models.ServiceSite)))
	_, err := ledger.RecordView(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, ledger.ResetAll(ctx, false), utils.ErrResetNotConfirmed)
	snap, err := ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Leads, 1)

	require.NoError(t, ledger.ResetAll(ctx, true))
	snap, err = ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Leads)
	assert.Zero(t, snap.Views)
	assert.Zero(t, snap.QuizStarts)
}

func TestLedgerToleratesCorruptedSlots(t *testing.T) {
	ctx := context.Background()
	store := stubStore{
		LeadsSlot:      "{not json",
		ViewsSlot:      "abc",
		QuizStartsSlot: " 4 ",
	}
	ledger := NewLedgerService(store, zap.NewNop())

	snap, err := ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Leads)
	assert.Zero(t, snap.Views)
	assert.Equal(t, int64(4), snap.QuizStarts)

	n, err := ledger.RecordView(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestLedgerAppendNeverOverwritesUnreadableLeads(t *testing.T) {
	ctx := context.Background()
	damaged := `[{"id":"FD-1001","userName":"Empresa FD-1001","city":"Lages","state":"SC"},`
	store := stubStore{LeadsSlot: damaged}
	ledger := NewLedgerService(store, zap.NewNop())

	err := ledger.AppendLead(ctx, sampleLead("FD-1002", lead_models.ServiceSite))
	assert.ErrorIs(t, err, utils.ErrStorageUnavailable)
	assert.Equal(t, damaged, store[LeadsSlot])

	snap, err := ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Leads)

	require.NoError(t, ledger.ResetAll(ctx, true))
	require.NoError(t, ledger.AppendLead(ctx, sampleLead("FD-1002", lead_models.ServiceSite)))
	snap, err = ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"FD-1002"}, leadIDs(snap.Leads))
}

func TestLedgerSurfacesStorageErrors(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedgerService(failingStore{err: errDown}, zap.NewNop())

	_, err := ledger.RecordView(ctx)
	assert.ErrorIs(t, err, utils.ErrStorageUnavailable)
	assert.ErrorIs(t, ledger.AppendLead(ctx, sampleLead("FD-1001", lead_models.ServiceSite)), utils.ErrStorageUnavailable)
	assert.ErrorIs(t, ledger.ResetAll(ctx, true), utils.ErrStorageUnavailable)
	_, err = ledger.Snapshot(ctx)
	assert.ErrorIs(t, err, utils.ErrStorageUnavailable)
}

func TestLedgerOnRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	ctx := context.Background()
	store := repositories.NewRedisSlotStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "")
	ledger := NewLedgerService(store, zap.NewNop())
	require.NoError(t, ledger.Init(ctx))

	require.NoError(t, ledger.AppendLead(ctx, sampleLead("FD-2001", lead_models.ServiceSystem)))
	_, err = ledger.RecordQuizStart(ctx)
	require.NoError(t, err)

	raw, err := mr.Get(LeadsSlot)
	require.NoError(t, err)
	assert.Contains(t, raw, `"id":"FD-2001"`)
	assert.Contains(t, raw, `"serviceType":"system"`)

	require.NoError(t, ledger.ResetAll(ctx, true))
	raw, err = mr.Get(LeadsSlot)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)

	assert.NoError(t, ledger.Close())
}
