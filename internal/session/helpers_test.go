package session

import (
	"bytes"
	"context"
	"testing"

	"github.com/alexanderramin/actlog/internal/config"
	"github.com/alexanderramin/actlog/internal/repository"
	"github.com/alexanderramin/actlog/internal/service"
	"github.com/alexanderramin/actlog/internal/testutil"
	"github.com/alexanderramin/actlog/internal/tree"
	"github.com/stretchr/testify/require"
)

type harness struct {
	s       *Session
	prompt  *testutil.ScriptedPrompter
	clock   *testutil.FakeClock
	schema  *testutil.MemTreeRepo
	data    *testutil.MemTreeRepo
	history service.HistoryService
	out     *bytes.Buffer
}

type harnessOpt func(*config.Config)

func withReminder(minutes int) harnessOpt {
	return func(c *config.Config) { c.ReminderMinutes = minutes }
}

// newHarness builds a session over in-memory trees and an in-memory SQLite
// history. An empty source leaves that file absent.
func newHarness(t *testing.T, schemaSrc, dataSrc string, answers []string, opts ...harnessOpt) *harness {
	t.Helper()
	cfg := config.DefaultConfig(t.TempDir())
	cfg.ReminderMinutes = 0
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &harness{
		prompt: testutil.NewScriptedPrompter(answers...),
		clock:  testutil.NewFakeClock(testutil.FixedNow),
		schema: &testutil.MemTreeRepo{},
		data:   &testutil.MemTreeRepo{},
		out:    &bytes.Buffer{},
	}
	h.prompt.Aliases = cfg.Aliases
	if schemaSrc != "" {
		h.schema.Root = testutil.MustTree(t, schemaSrc)
	}
	if dataSrc != "" {
		h.data.Root = testutil.MustTree(t, dataSrc)
	}

	database := testutil.NewTestDB(t)
	h.history = service.NewHistoryService(
		repository.NewSQLiteRecordRepo(database),
		repository.NewSQLiteChangeRepo(database),
		testutil.NewTestUoW(database),
	)

	h.s = New(Deps{
		Config:   cfg,
		Prompter: h.prompt,
		Out:      h.out,
		Clock:    h.clock,
		Schema:   h.schema,
		Data:     h.data,
		History:  h.history,
	})
	return h
}

// opened is newHarness over congruent trees derived from dataSrc, opened
// and ready for cycles.
func opened(t *testing.T, dataSrc string, answers []string, opts ...harnessOpt) *harness {
	t.Helper()
	schema := tree.DeriveSchema(testutil.MustTree(t, dataSrc))
	schemaSrc, err := tree.Marshal(schema, tree.StyleSchema)
	require.NoError(t, err)

	h := newHarness(t, string(schemaSrc), dataSrc, answers, opts...)
	require.NoError(t, h.s.Open(context.Background()))
	return h
}

func (h *harness) dataJSON(t *testing.T) string {
	t.Helper()
	return testutil.TreeJSON(t, h.s.Data())
}
