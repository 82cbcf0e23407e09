package services

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epeers/tracker/internal/models"
)

func TestTrackTime_LogsFields(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	prev := log.GetLevel()
	log.SetLevel(log.DebugLevel)
	defer log.SetLevel(prev)

	ctx, _ := NewWarningContext(context.Background())
	done := TrackTime(ctx, "op.under.test")
	AddWarningf(ctx, models.WarnBasisStale, "stale")
	done()

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.DebugLevel, entry.Level)
	assert.Equal(t, "op.under.test", entry.Data["op"])
	assert.Equal(t, 1, entry.Data["warnings"])
	assert.Contains(t, entry.Data, "elapsed_ms")
}

func TestTrackTime_WithoutCollector(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	prev := log.GetLevel()
	log.SetLevel(log.DebugLevel)
	defer log.SetLevel(prev)

	TrackTime(context.Background(), "bare")()

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.NotContains(t, entry.Data, "warnings")
}
