package session

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alexanderramin/actlog/internal/domain"
	"github.com/alexanderramin/actlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const confirmQuestion = "You are about to change your schema, are you sure?"

func TestCycle_RecordsMinutes(t *testing.T) {
	h := opened(t, `{"options": {"default": 0, "exercise": 5}}`, []string{"2", "30"})

	require.NoError(t, h.s.Cycle(context.Background()))

	assert.Equal(t, `{"options":{"default":0,"exercise":35}}`, h.dataJSON(t))
	rec := h.s.LastRecord()
	require.NotNil(t, rec)
	assert.Equal(t, domain.Path{"options", "exercise"}, rec.Path)
	assert.Equal(t, 30, rec.Delta)
	assert.True(t, testutil.FixedNow.Equal(rec.Timestamp))
	assert.Contains(t, h.out.String(), "Recorded 30m under ROOT.options.exercise.")

	logged, err := h.history.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logged, 1)
	assert.Equal(t, rec.ID, logged[0].ID)
}

func TestCycle_EmptySelectionPicksFirstOption(t *testing.T) {
	h := opened(t, `{"options": {"default": 0, "exercise": 5}}`, []string{"", "10"})

	require.NoError(t, h.s.Cycle(context.Background()))
	assert.Equal(t, `{"options":{"default":10,"exercise":5}}`, h.dataJSON(t))
}

func TestCycle_NavigatesIntoBranch(t *testing.T) {
	h := opened(t, `{"options": {"default": 0, "run": {"run": 1, "trail": 2}}}`, []string{"2", "2", "5"})

	require.NoError(t, h.s.Cycle(context.Background()))
	assert.Equal(t, `{"options":{"default":0,"run":{"run":1,"trail":7}}}`, h.dataJSON(t))
	assert.Equal(t, domain.Path{"options", "run", "trail"}, h.s.LastRecord().Path)
	assert.Contains(t, h.out.String(), "ROOT.options.run")
}

func TestCycle_InvalidSelectionReprompts(t *testing.T) {
	h := opened(t, `{"options": {"default": 0}}`, []string{"9", "-1", "1", "3"})

	require.NoError(t, h.s.Cycle(context.Background()))
	assert.Equal(t, `{"options":{"default":3}}`, h.dataJSON(t))
	assert.Contains(t, h.out.String(), "9 is not a valid option")
	assert.Contains(t, h.out.String(), "-1 is not a valid option")
}

func TestCycle_NegativeAmountReprompts(t *testing.T) {
	h := opened(t, `{"options": {"default": 0}}`, []string{"1", "-5", "5"})

	require.NoError(t, h.s.Cycle(context.Background()))
	assert.Equal(t, `{"options":{"default":5}}`, h.dataJSON(t))
	assert.Contains(t, h.out.String(), "must not be negative")
}

func TestCycle_OversizedNumbersAreInvalidInput(t *testing.T) {
	huge := "99999999999999999999"
	h := opened(t, `{"options": {"default": 0}}`, []string{huge, "1", huge, "5"})

	require.NoError(t, h.s.Cycle(context.Background()))
	assert.Equal(t, `{"options":{"default":5}}`, h.dataJSON(t))
	assert.Zero(t, h.prompt.Remaining())
	assert.NotContains(t, h.prompt.Questions, confirmQuestion)
	assert.Contains(t, h.out.String(), huge+" is not a valid option")
	assert.Contains(t, h.out.String(), huge+" minutes is out of range")
}

func TestCycle_AddLeafThenRecord(t *testing.T) {
	h := opened(t, `{"options": {"default": 0}}`, []string{"exercise", "yes", "2", "30"})
	ctx := context.Background()

	require.NoError(t, h.s.Cycle(ctx))
	assert.Equal(t, `{"options":{"default":0,"exercise":30}}`, h.dataJSON(t))

	changes, err := h.history.ListChanges(ctx, 10)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, domain.ChangeAddLeaf, changes[0].Kind)
	assert.Equal(t, domain.Path{"options"}, changes[0].Path)
	assert.Equal(t, "exercise", changes[0].Name)
}

func TestCycle_AddLeafDeclined(t *testing.T) {
	h := opened(t, `{"options": {"default": 0}}`, []string{"exercise", "n", "1", "5"})

	require.NoError(t, h.s.Cycle(context.Background()))
	assert.Equal(t, `{"options":{"default":5}}`, h.dataJSON(t))
	assert.Contains(t, h.out.String(), "Schema left unchanged.")
}

func TestCycle_AddDuplicateIsRejectedWithoutConfirmation(t *testing.T) {
	h := opened(t, `{"options": {"default": 0}}`, []string{"default", "1", "2"})

	require.NoError(t, h.s.Cycle(context.Background()))
	assert.Equal(t, `{"options":{"default":2}}`, h.dataJSON(t))
	assert.NotContains(t, h.prompt.Questions, confirmQuestion)
	assert.Contains(t, h.out.String(), `option "default" already exists`)
}

func TestCycle_ExpandLeaf(t *testing.T) {
	h := opened(t, `{"options": {"default": 0, "run": 10}}`, []string{"2", "trail", "YES", "2", "7"})
	ctx := context.Background()

	rec := testutil.NewTestRecord("options.run", 10)
	require.NoError(t, h.history.Append(ctx, rec))

	require.NoError(t, h.s.Cycle(ctx))
	assert.Equal(t, `{"options":{"default":0,"run":{"run":10,"trail":7}}}`, h.dataJSON(t))
	assert.Equal(t, domain.Path{"options", "run", "trail"}, h.s.LastRecord().Path)

	logged, err := h.history.ListRecent(ctx, 10)
	require.NoError(t, err)
	paths := map[string]bool{}
	for _, e := range logged {
		paths[e.Path.String()] = true
	}
	assert.True(t, paths["options.run.run"], "earlier record follows the kept value")
	assert.True(t, paths["options.run.trail"])
	assert.False(t, paths["options.run"])
}

func TestCycle_ExpandProtectedLeafAsksNoConfirmation(t *testing.T) {
	h := opened(t, `{"options": {"default": 4, "run": 10}}`, []string{"1", "yoga", "4"})

	require.NoError(t, h.s.Cycle(context.Background()))
	assert.Equal(t, `{"options":{"default":8,"run":10}}`, h.dataJSON(t))
	assert.NotContains(t, h.prompt.Questions, confirmQuestion)
	assert.Contains(t, h.out.String(), "cannot expand the first option")
}

func TestCycle_ExpandDeclinedStaysOnLeaf(t *testing.T) {
	h := opened(t, `{"options": {"default": 0, "run": 10}}`, []string{"2", "trail", "no", "5"})

	require.NoError(t, h.s.Cycle(context.Background()))
	assert.Equal(t, `{"options":{"default":0,"run":15}}`, h.dataJSON(t))
}

func TestCycle_ReminderCapsElapsedTime(t *testing.T) {
	h := opened(t, `{"options": {"default": 0}}`, []string{"1", "5", "1", ""}, withReminder(10))
	ctx := context.Background()

	require.NoError(t, h.s.Cycle(ctx))
	h.clock.Advance(15 * time.Minute)
	require.NoError(t, h.s.Cycle(ctx))

	assert.Equal(t, `{"options":{"default":15}}`, h.dataJSON(t))
	assert.Equal(t, 10, h.s.LastRecord().Delta)
}

func TestCycle_ElapsedBelowCapTruncatesToMinutes(t *testing.T) {
	h := opened(t, `{"options": {"default": 0}}`, []string{"1", "0", "1", ""}, withReminder(10))
	ctx := context.Background()

	require.NoError(t, h.s.Cycle(ctx))
	h.clock.Advance(7*time.Minute + 30*time.Second)
	require.NoError(t, h.s.Cycle(ctx))

	assert.Equal(t, `{"options":{"default":7}}`, h.dataJSON(t))
}

func TestCycle_EmptyAmountWithoutReminder(t *testing.T) {
	h := opened(t, `{"options": {"default": 0}}`, []string{"1", "", "3"})

	require.NoError(t, h.s.Cycle(context.Background()))
	assert.Equal(t, `{"options":{"default":3}}`, h.dataJSON(t))
	assert.Contains(t, h.out.String(), "without a reminder interval")
}

func TestCycle_EmptyAmountWithoutLastRecord(t *testing.T) {
	h := opened(t, `{"options": {"default": 0}}`, []string{"1", "", "3"}, withReminder(10))

	require.NoError(t, h.s.Cycle(context.Background()))
	assert.Equal(t, `{"options":{"default":3}}`, h.dataJSON(t))
	assert.Contains(t, h.out.String(), "no last record")
}

func TestCycle_HelpAndPrintKeepState(t *testing.T) {
	h := opened(t, `{"options": {"default": 90}}`, []string{"h", "PRINT", "1", "help", "2"})

	require.NoError(t, h.s.Cycle(context.Background()))
	assert.Equal(t, `{"options":{"default":92}}`, h.dataJSON(t))

	out := h.out.String()
	assert.Contains(t, out, "Undo your last recording.")
	assert.Contains(t, out, "Σ 1h 30m")
}

func TestCycle_EndOfInput(t *testing.T) {
	h := opened(t, `{"options": {"default": 0}}`, []string{"1"})

	err := h.s.Cycle(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestCycle_ObserverSeesRecord(t *testing.T) {
	h := opened(t, `{"options": {"default": 0}}`, []string{"1", "12"})
	obs := &recordingObserver{}
	h.s.observer = obs

	require.NoError(t, h.s.Cycle(context.Background()))
	require.Len(t, obs.events, 1)
	assert.Equal(t, "record", obs.events[0].Name)
	assert.Equal(t, 12, obs.events[0].Fields["minutes"])
	assert.True(t, obs.events[0].Success)
}
