package audit_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/knoxlab/bindery/audit"
)

func TestMemory_RecordsInOrder(t *testing.T) {
	rec := audit.NewMemory()
	rec.Record(audit.Entry{UserID: 1, UserName: "Test User", Action: "profile.show"})
	rec.Record(audit.Entry{UserID: 0, UserName: "Anonymous", Action: "profile.show"})

	entries := rec.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].UserID)
	assert.Equal(t, "Anonymous", entries[1].UserName)
}

func TestMemory_EntriesReturnsCopy(t *testing.T) {
	rec := audit.NewMemory()
	rec.Record(audit.Entry{UserID: 1, UserName: "Test User"})

	entries := rec.Entries()
	entries[0].UserName = "mutated"

	assert.Equal(t, "Test User", rec.Entries()[0].UserName)
}

func TestMemory_Reset(t *testing.T) {
	rec := audit.NewMemory()
	rec.Record(audit.Entry{UserID: 1})
	rec.Reset()

	assert.Empty(t, rec.Entries())
}

func TestMemory_ConcurrentRecord(t *testing.T) {
	rec := audit.NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.Record(audit.Entry{Action: "concurrent"})
		}()
	}
	wg.Wait()

	assert.Len(t, rec.Entries(), 50)
}

func TestZap_RecordLogsFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	rec := audit.NewZap(zap.New(core))

	rec.Record(audit.Entry{
		Invocation: "inv-1",
		UserID:     7,
		UserName:   "Test User",
		Action:     "profile.show",
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "audit entry", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "inv-1", fields["invocation"])
	assert.Equal(t, int64(7), fields["userId"])
	assert.Equal(t, "Test User", fields["userName"])
	assert.Equal(t, "profile.show", fields["action"])
}
