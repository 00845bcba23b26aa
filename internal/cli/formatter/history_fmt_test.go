package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/actlog/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatHistory(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	undone := now.Add(-time.Minute)
	entries := []*domain.HistoryEntry{
		{Record: domain.Record{ID: "11111111-aaaa", Path: domain.Path{"options", "run"}, Delta: 30, Timestamp: now.Add(-5 * time.Minute)}},
		{Record: domain.Record{ID: "22222222-bbbb", Path: domain.Path{"options", "swim"}, Delta: 10, Timestamp: now.Add(-2 * time.Hour)}, UndoneAt: &undone},
	}

	got := stripANSI(FormatHistory(entries, "ROOT", now))
	assert.Contains(t, got, "CATEGORY")
	assert.Contains(t, got, "11111111")
	assert.NotContains(t, got, "aaaa")
	assert.Contains(t, got, "ROOT.options.run")
	assert.Contains(t, got, "5m ago")
	assert.Contains(t, got, "undone 1m ago")
}

func TestFormatHistory_Empty(t *testing.T) {
	assert.Contains(t, FormatHistory(nil, "ROOT", time.Now()), "No records yet.")
}

func TestFormatChanges(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	changes := []*domain.ChangeEvent{
		{Kind: domain.ChangeExpandLeaf, Path: domain.Path{"options", "run"}, Name: "trail", At: now},
		{Kind: domain.ChangeAddLeaf, Path: domain.Path{"options"}, Name: "run", At: now.Add(-time.Hour)},
	}
	got := stripANSI(FormatChanges(changes, "ROOT", now))
	assert.Contains(t, got, "split off trail")
	assert.Contains(t, got, "added run")
	assert.Contains(t, got, "ROOT.options.run")
}

func TestFormatCheck(t *testing.T) {
	assert.Contains(t, stripANSI(FormatCheck("ROOT", nil, nil)), "schema and data agree")

	got := stripANSI(FormatCheck("ROOT",
		[]domain.Path{{"options", "swim"}},
		[]domain.Path{{"options", "bike"}}))
	assert.Contains(t, got, "schema and data differ")
	assert.Contains(t, got, "ONLY IN DATA")
	assert.Contains(t, got, "ROOT.options.swim")
	assert.Contains(t, got, "ONLY IN SCHEMA")
	assert.Contains(t, got, "ROOT.options.bike")
}

func TestFormatTotal(t *testing.T) {
	got := stripANSI(FormatTotal("ROOT.options.run", 30, 120))
	assert.Contains(t, got, "ROOT.options.run  30m")
	assert.Contains(t, got, " 25%")
}
