package testenv

import (
	"context"
	"log/slog"
	"sync"
)

type recordStore struct {
	mu      sync.Mutex
	records []slog.Record
}

// Recorder — slog.Handler, который сохраняет записи в памяти и ничего не выводит.
type Recorder struct {
	store *recordStore
	attrs []slog.Attr
}

// NewRecorder создает пустой recorder.
func NewRecorder() *Recorder {
	return &Recorder{store: &recordStore{}}
}

func (r *Recorder) Enabled(context.Context, slog.Level) bool {
	return true
}

func (r *Recorder) Handle(_ context.Context, record slog.Record) error {
	record = record.Clone()
	if len(r.attrs) > 0 {
		record.AddAttrs(r.attrs...)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.records = append(r.store.records, record)

	return nil
}

func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(r.attrs)+len(attrs))
	merged = append(merged, r.attrs...)
	merged = append(merged, attrs...)

	return &Recorder{store: r.store, attrs: merged}
}

// WithGroup не вкладывает атрибуты: группы в тестах не нужны.
func (r *Recorder) WithGroup(string) slog.Handler {
	return r
}

// Records возвращает копию сохраненных записей.
func (r *Recorder) Records() []slog.Record {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]slog.Record, len(r.store.records))
	copy(out, r.store.records)
	return out
}

// Messages возвращает сообщения сохраненных записей по порядку.
func (r *Recorder) Messages() []string {
	records := r.Records()
	out := make([]string, 0, len(records))
	for _, record := range records {
		out = append(out, record.Message)
	}
	return out
}

// Attr ищет атрибут по ключу в записи.
func Attr(record slog.Record, key string) (slog.Value, bool) {
	var (
		value slog.Value
		found bool
	)

	record.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			value = a.Value
			found = true
			return false
		}
		return true
	})

	return value, found
}

// Reset очищает сохраненные записи.
func (r *Recorder) Reset() {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.records = nil
}
