package prompt

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/fedutinova/careerchat/internal/common"
	"github.com/gabriel-vasile/mimetype"
)

const maxTemplateBytes = 256 << 10

// Data is what a chat prompt template can reference.
type Data struct {
	Jobs    string // job records serialized as compact JSON
	Message string // user text, inserted verbatim
}

// Template caches the parsed prompt and refreshes it from its source once
// the reload interval has passed. A failed refresh keeps the previous
// template.
type Template struct {
	source   Source
	interval time.Duration
	now      func() time.Time

	reloadMu sync.Mutex

	mu       sync.RWMutex
	tmpl     *template.Template
	loadedAt time.Time
}

// NewTemplate performs the initial load; an error here should stop startup.
// A zero interval disables reloading.
func NewTemplate(ctx context.Context, source Source, interval time.Duration) (*Template, error) {
	t := &Template{
		source:   source,
		interval: interval,
		now:      time.Now,
	}
	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Template) Source() string {
	return t.source.Name()
}

func (t *Template) Reload(ctx context.Context) error {
	parsed, err := t.fetch(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.tmpl = parsed
	t.loadedAt = t.now()
	t.mu.Unlock()

	slog.Info("prompt template loaded", "source", t.source.Name())
	return nil
}

// Check fetches and parses the template without swapping it in.
func (t *Template) Check(ctx context.Context) error {
	_, err := t.fetch(ctx)
	return err
}

func (t *Template) Render(ctx context.Context, data Data) (string, error) {
	t.maybeReload(ctx)

	t.mu.RLock()
	tmpl := t.tmpl
	t.mu.RUnlock()

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}

func (t *Template) fetch(ctx context.Context) (*template.Template, error) {
	data, err := t.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load prompt from %s: %w", t.source.Name(), err)
	}
	return Parse(t.source.Name(), data)
}

func (t *Template) stale() bool {
	if t.interval <= 0 {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.now().Sub(t.loadedAt) >= t.interval
}

func (t *Template) maybeReload(ctx context.Context) {
	if !t.stale() {
		return
	}
	// another request is already refreshing; use what we have
	if !t.reloadMu.TryLock() {
		return
	}
	defer t.reloadMu.Unlock()

	if !t.stale() {
		return
	}
	if err := t.Reload(ctx); err != nil {
		slog.Warn("prompt reload failed, keeping previous template",
			"source", t.source.Name(),
			"error", err)
		// wait a full interval before the next attempt
		t.mu.Lock()
		t.loadedAt = t.now()
		t.mu.Unlock()
	}
}

// Parse validates template text: it must be non-empty text, parse, and only
// reference fields of Data.
func Parse(name string, data []byte) (*template.Template, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", common.ErrPromptInvalid, name)
	}
	if len(data) > maxTemplateBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", common.ErrPromptInvalid, name, maxTemplateBytes)
	}
	if mtype := mimetype.Detect(data); !isText(mtype) {
		return nil, fmt.Errorf("%w: %s is %s, not text", common.ErrPromptInvalid, name, mtype.String())
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPromptInvalid, err)
	}
	if err := tmpl.Execute(io.Discard, Data{}); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPromptInvalid, err)
	}
	return tmpl, nil
}

func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
