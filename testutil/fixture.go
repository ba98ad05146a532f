// Package testutil provides task factories, a fixed clock, a shared fixture
// collection and assertion helpers for tests across the module.
package testutil

import (
	"context"
	_ "embed"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/arthur-debert/nanotodo/nanotodo"
	"github.com/arthur-debert/nanotodo/nanotodo/storage"
	"github.com/arthur-debert/nanotodo/types"
)

//go:embed testdata/universe.json
var universeJSON []byte

// FixtureNow is the instant the fixture is evaluated at: 2025-01-05 12:00 UTC.
// At that time BuyGroceries and CodeReview are overdue.
var FixtureNow = time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)

// UniverseData provides typed access to the fixture tasks
type UniverseData struct {
	BuyGroceries types.Task // active, overdue at FixtureNow
	ReadBook     types.Task // completed and modified after creation
	TeamMeeting  types.Task // active, due in February
	CodeReview   types.Task // active, lower-case text, overdue
	LegacyNote   types.Task // active, no due date
	UnicodeTask  types.Task // completed, Japanese text

	// All tasks in fixture order
	All []types.Task
	// ByID maps ids to tasks
	ByID map[string]types.Task
}

type fixtureTask struct {
	Name string `json:"name"`
	types.Task
}

type fixtureData struct {
	Tasks []fixtureTask `json:"tasks"`
}

// Universe decodes the fixture without creating a collection
func Universe(t testing.TB) *UniverseData {
	t.Helper()

	var fixture fixtureData
	if err := json.Unmarshal(universeJSON, &fixture); err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	u := &UniverseData{ByID: make(map[string]types.Task)}
	named := map[string]*types.Task{
		"BuyGroceries": &u.BuyGroceries,
		"ReadBook":     &u.ReadBook,
		"TeamMeeting":  &u.TeamMeeting,
		"CodeReview":   &u.CodeReview,
		"LegacyNote":   &u.LegacyNote,
		"UnicodeTask":  &u.UnicodeTask,
	}
	for _, ft := range fixture.Tasks {
		if dst, ok := named[ft.Name]; ok {
			*dst = ft.Task
		} else {
			t.Fatalf("fixture task %q has no field", ft.Name)
		}
		u.All = append(u.All, ft.Task)
		u.ByID[ft.ID] = ft.Task
	}
	return u
}

// LoadUniverse returns a collection over a memory backend seeded with the
// fixture, with its clock stopped at FixtureNow
func LoadUniverse(t testing.TB, opts ...nanotodo.Option) (*nanotodo.Collection, *storage.MemoryKV, *UniverseData) {
	t.Helper()

	universe := Universe(t)
	kv := storage.NewMemoryKV()
	bridge := storage.NewBridge(kv, storage.WithLogger(DiscardLogger()))
	if err := bridge.Save(context.Background(), universe.All); err != nil {
		t.Fatalf("failed to seed fixture: %v", err)
	}

	opts = append([]nanotodo.Option{
		nanotodo.WithClock(func() time.Time { return FixtureNow }),
		nanotodo.WithLogger(DiscardLogger()),
	}, opts...)
	c, err := nanotodo.Open(context.Background(), bridge, opts...)
	if err != nil {
		t.Fatalf("failed to open collection: %v", err)
	}
	t.Cleanup(func() { _ = bridge.Close() })
	return c, kv, universe
}

// DiscardLogger returns a logger that drops everything
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
