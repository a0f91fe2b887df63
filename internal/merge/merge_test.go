package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	remedyerrors "github.com/randalmurphal/remedy/internal/errors"
	"github.com/randalmurphal/remedy/internal/events"
	"github.com/randalmurphal/remedy/internal/registry"
	"github.com/randalmurphal/remedy/internal/task"
)

func newEngine(t *testing.T) (*Engine, *registry.Registry, *events.MemoryPublisher) {
	t.Helper()
	reg, err := registry.New(registry.DefaultSeed())
	require.NoError(t, err)
	pub := events.NewMemoryPublisher()
	t.Cleanup(pub.Close)
	return New(reg, pub, "ai-agent"), reg, pub
}

func TestMergeConfirmationResolved(t *testing.T) {
	eng, reg, _ := newEngine(t)

	// Task 1 starts in-progress at 75%.
	updated, err := eng.MergeConfirmation(1, []byte(`{"status":"resolved","note":"numbers corrected"}`))
	require.NoError(t, err)

	assert.Equal(t, task.StatusCompleted, updated.Status)
	assert.Equal(t, 100, updated.Progress)
	assert.JSONEq(t, `{"status":"resolved","note":"numbers corrected"}`, string(updated.ConfirmationData))

	// Assignee is untouched by the manual path.
	assert.Equal(t, "operator-001", updated.Assignee)

	stored, err := reg.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, stored.Status)
}

func TestMergeConfirmationEscalated(t *testing.T) {
	eng, _, _ := newEngine(t)

	updated, err := eng.MergeConfirmation(1, []byte(`{"status":"escalated"}`))
	require.NoError(t, err)

	// Status and progress are unchanged; only the payload is stored.
	assert.Equal(t, task.StatusInProgress, updated.Status)
	assert.Equal(t, 75, updated.Progress)
	assert.JSONEq(t, `{"status":"escalated"}`, string(updated.ConfirmationData))
}

func TestMergeConfirmationMissingStatusField(t *testing.T) {
	eng, _, _ := newEngine(t)

	updated, err := eng.MergeConfirmation(3, []byte(`{"note":"needs legal review"}`))
	require.NoError(t, err)

	assert.Equal(t, task.StatusPending, updated.Status)
	assert.Equal(t, 0, updated.Progress)
	assert.NotEmpty(t, updated.ConfirmationData)
}

func TestMergeConfirmationEmptyPayloadStillStored(t *testing.T) {
	eng, reg, _ := newEngine(t)

	// Leave data in the slot first, then confirm with no payload.
	_, err := eng.MergeConfirmation(1, []byte(`{"status":"escalated","note":"stale"}`))
	require.NoError(t, err)

	updated, err := eng.MergeConfirmation(1, nil)
	require.NoError(t, err)

	// The slot always reflects the latest confirmation.
	assert.JSONEq(t, `{}`, string(updated.ConfirmationData))
	assert.Equal(t, task.StatusInProgress, updated.Status)
	assert.Equal(t, 75, updated.Progress)

	stored, err := reg.GetByID(1)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(stored.ConfirmationData))
}

func TestMergeAutomatedEmptyPayloadStillStored(t *testing.T) {
	eng, reg, _ := newEngine(t)

	_, err := eng.MergeAutomated(1, nil)
	require.NoError(t, err)

	stored, err := reg.GetByID(1)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(stored.AIResult))

	sum := task.ExtractSummary(stored.AIResult)
	assert.Equal(t, int64(0), sum.ResolvedCount)
	assert.Equal(t, float64(0), sum.AccuracyPct)
	assert.Equal(t, task.UnknownProcessingTime, sum.ProcessingTime)
}

func TestMergeConfirmationNotFound(t *testing.T) {
	eng, _, _ := newEngine(t)

	_, err := eng.MergeConfirmation(99, []byte(`{"status":"resolved"}`))
	assert.ErrorIs(t, err, remedyerrors.ErrTaskNotFound(99))
}

func TestMergeAutomated(t *testing.T) {
	eng, reg, _ := newEngine(t)

	updated, err := eng.MergeAutomated(1, []byte(`{"auto_resolved":1200,"accuracy":97}`))
	require.NoError(t, err)

	assert.Equal(t, task.StatusCompleted, updated.Status)
	assert.Equal(t, 100, updated.Progress)
	assert.Equal(t, "ai-agent", updated.Assignee)

	stored, err := reg.GetByID(1)
	require.NoError(t, err)
	summary := task.ExtractSummary(stored.AIResult)
	assert.Equal(t, int64(1200), summary.ResolvedCount)
	assert.Equal(t, float64(97), summary.AccuracyPct)
	assert.Equal(t, task.UnknownProcessingTime, summary.ProcessingTime)
}

func TestMergeAutomatedAlwaysCompletes(t *testing.T) {
	eng, _, _ := newEngine(t)

	// Even a payload with zero resolved records completes the task.
	updated, err := eng.MergeAutomated(3, []byte(`{"auto_resolved":0}`))
	require.NoError(t, err)

	assert.Equal(t, task.StatusCompleted, updated.Status)
	assert.Equal(t, 100, updated.Progress)
}

func TestMergeAutomatedNotFound(t *testing.T) {
	eng, _, _ := newEngine(t)

	_, err := eng.MergeAutomated(404, []byte(`{}`))
	assert.ErrorIs(t, err, remedyerrors.ErrTaskNotFound(404))
}

func TestRepeatedMergesOverwriteOwnSlot(t *testing.T) {
	eng, reg, _ := newEngine(t)

	_, err := eng.MergeAutomated(1, []byte(`{"auto_resolved":10}`))
	require.NoError(t, err)
	_, err = eng.MergeAutomated(1, []byte(`{"auto_resolved":20}`))
	require.NoError(t, err)

	// The manual slot is independent of the automated slot.
	_, err = eng.MergeConfirmation(1, []byte(`{"status":"resolved"}`))
	require.NoError(t, err)

	stored, err := reg.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, int64(20), task.ExtractSummary(stored.AIResult).ResolvedCount)
	assert.JSONEq(t, `{"status":"resolved"}`, string(stored.ConfirmationData))
}

func TestMergePublishesEvents(t *testing.T) {
	eng, _, pub := newEngine(t)

	ch := pub.Subscribe(events.GlobalTaskID)

	_, err := eng.MergeAutomated(1, []byte(`{"auto_resolved":5}`))
	require.NoError(t, err)

	ev := <-ch
	assert.Equal(t, events.EventMergeApplied, ev.Type)
	data, ok := ev.Data.(events.MergeData)
	require.True(t, ok)
	assert.Equal(t, "automated", data.Source)
	assert.Equal(t, 1, data.TaskID)

	ev = <-ch
	assert.Equal(t, events.EventTaskUpdated, ev.Type)
}
