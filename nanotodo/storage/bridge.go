package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/arthur-debert/nanotodo/nanotodo/migration"
	"github.com/arthur-debert/nanotodo/types"
)

// Bridge loads and saves a task collection through a KV backend.
type Bridge struct {
	kv     KV
	key    string
	logger *slog.Logger
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithKey stores the collection under a key other than DefaultKey.
func WithKey(key string) BridgeOption {
	return func(b *Bridge) {
		if key != "" {
			b.key = key
		}
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBridge wraps kv.
func NewBridge(kv KV, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		kv:     kv,
		key:    DefaultKey,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Key returns the key the collection lives under.
func (b *Bridge) Key() string {
	return b.key
}

// Load reads the stored collection. An absent key, data that is not JSON,
// JSON that is not an array, or an array holding a null record all yield an
// empty collection; those cases
// are logged but not returned. Backend failures are returned. Records from
// older schema versions are normalized on the way in.
func (b *Bridge) Load(ctx context.Context) ([]types.Task, error) {
	tasks, _, err := b.LoadWithResult(ctx)
	return tasks, err
}

// LoadWithResult is Load that also reports what normalization did. The
// result is nil when there was nothing to normalize.
func (b *Bridge) LoadWithResult(ctx context.Context) ([]types.Task, *migration.Result, error) {
	raw, ok, err := b.kv.Get(ctx, b.key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %q: %w", b.key, err)
	}
	if !ok {
		return []types.Task{}, nil, nil
	}

	var decoded []*migration.LegacyTask
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		b.logger.Warn("stored tasks are unreadable, starting empty", "key", b.key, "error", err)
		return []types.Task{}, nil, nil
	}
	// JSON null decodes to a nil slice without error
	if decoded == nil {
		b.logger.Warn("stored tasks are not an array, starting empty", "key", b.key)
		return []types.Task{}, nil, nil
	}
	records := make([]migration.LegacyTask, 0, len(decoded))
	for i, rec := range decoded {
		if rec == nil {
			b.logger.Warn("stored tasks contain a null record, starting empty", "key", b.key, "index", i)
			return []types.Task{}, nil, nil
		}
		records = append(records, *rec)
	}

	tasks, result := migration.NormalizeLegacy(records)
	for _, msg := range result.Warnings() {
		b.logger.Warn(msg.Text, "key", b.key)
	}
	if result.Changed() {
		b.logger.Info("normalized legacy tasks",
			"key", b.key,
			"modified", result.Stats.ModifiedTasks,
			"total", result.Stats.TotalTasks)
	}
	return tasks, result, nil
}

// Save serializes the whole collection and writes it under the key.
func (b *Bridge) Save(ctx context.Context, tasks []types.Task) error {
	if tasks == nil {
		tasks = []types.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}
	if err := b.kv.Set(ctx, b.key, string(data)); err != nil {
		return fmt.Errorf("failed to write %q: %w", b.key, err)
	}
	return nil
}

// Close closes the underlying backend.
func (b *Bridge) Close() error {
	return b.kv.Close()
}
