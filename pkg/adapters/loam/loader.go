package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/loam"
	"github.com/mitchellh/mapstructure"
	"github.com/surveyflow/surveyflow/pkg/domain"
)

// DefaultStartID is the document used as entry when no question sets start: true.
const DefaultStartID = "start"

// Loader adapts a Loam repository of question documents to ports.GraphLoader.
// Each document is one question: frontmatter holds the question fields and
// the body holds the display text for its title.
type Loader struct {
	Repo *loam.TypedRepository[QuestionMetadata]

	mu     sync.RWMutex
	labels map[string]string
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[QuestionMetadata]) *Loader {
	return &Loader{
		Repo:   repo,
		labels: map[string]string{},
	}
}

// Open initializes a read-only, strict Loam repository at dir and wraps it.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numbers as json.Number across markdown and JSON documents.
	// The loader never writes, so the repository is opened read-only.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[QuestionMetadata](repo)), nil
}

// LoadGraph reads every document and builds the graph. Questions are ordered by id.
// List only yields ids; each document is then fetched with Get for its
// frontmatter and body.
func (l *Loader) LoadGraph(ctx context.Context) (*domain.Graph, error) {
	listed, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	docs := make([]*loam.DocumentModel[QuestionMetadata], 0, len(listed))
	for _, entry := range listed {
		doc, err := l.Repo.Get(ctx, entry.ID)
		if err != nil {
			return nil, fmt.Errorf("loam get failed for %s: %w", entry.ID, err)
		}
		docs = append(docs, doc)
	}

	seen := make(map[string]string, len(docs))
	questions := make([]domain.Question, 0, len(docs))
	labels := make(map[string]string)
	startID := ""

	for _, doc := range docs {
		meta := doc.Data

		rawID := meta.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		q, err := toQuestion(id, meta)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", doc.ID, err)
		}
		questions = append(questions, q)

		for k, v := range meta.Labels {
			labels[k] = v
		}
		if body := strings.TrimSpace(doc.Content); body != "" {
			labels[q.Title] = body
		}

		if meta.Start {
			if startID != "" && startID != id {
				return nil, fmt.Errorf("multiple start questions: '%s' and '%s'", startID, id)
			}
			startID = id
		}
	}

	if startID == "" {
		startID = DefaultStartID
	}

	sort.SliceStable(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })

	g, err := domain.NewGraph(startID, questions...)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.labels = labels
	l.mu.Unlock()

	return g, nil
}

// Labels returns display text collected by the last LoadGraph.
func (l *Loader) Labels() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string]string, len(l.labels))
	for k, v := range l.labels {
		out[k] = v
	}
	return out
}

func toQuestion(id string, meta QuestionMetadata) (domain.Question, error) {
	kind := domain.Kind(meta.Kind)
	if meta.Kind == "" {
		kind = domain.KindFree
	}
	if !kind.Valid() {
		return domain.Question{}, fmt.Errorf("unsupported kind %q", meta.Kind)
	}

	q := domain.Question{
		ID:                  id,
		Kind:                kind,
		Title:               meta.Title,
		Required:            meta.Required == nil || *meta.Required,
		NextID:              meta.NextID,
		SingleLine:          meta.SingleLine == nil || *meta.SingleLine,
		InputType:           domain.InputType(meta.InputType),
		YesKey:              meta.YesKey,
		NoKey:               meta.NoKey,
		YesLabel:            meta.YesLabel,
		NoLabel:             meta.NoLabel,
		NextIDIfYes:         meta.NextIDIfYes,
		NextIDIfNo:          meta.NextIDIfNo,
		NextIDByKey:         meta.NextIDByKey,
		SubflowStartIDByKey: meta.SubflowStartIDByKey,
		Priority:            meta.Priority,
		FallbackNextID:      meta.FallbackNextID,
	}
	if q.Title == "" {
		q.Title = id
	}
	if q.InputType == "" && kind == domain.KindFree {
		q.InputType = domain.InputText
	}

	opts, err := decodeOptions(meta.Options)
	if err != nil {
		return domain.Question{}, err
	}
	q.Options = opts

	if q.MaxDurationSec, err = toInt(meta.MaxDurationSec); err != nil {
		return domain.Question{}, fmt.Errorf("max_duration_sec: %w", err)
	}
	if q.MaxCount, err = toInt(meta.MaxCount); err != nil {
		return domain.Question{}, fmt.Errorf("max_count: %w", err)
	}
	return q, nil
}

func decodeOptions(raw []any) ([]domain.Option, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	opts := make([]domain.Option, 0, len(raw))
	for i, item := range raw {
		switch v := item.(type) {
		case string:
			opts = append(opts, domain.Option{Key: v, Label: v})
		case map[string]any:
			var opt domain.Option
			if err := mapstructure.Decode(v, &opt); err != nil {
				return nil, fmt.Errorf("options[%d]: %w", i, err)
			}
			if opt.Key == "" {
				return nil, fmt.Errorf("options[%d]: missing key", i)
			}
			if opt.Label == "" {
				opt.Label = opt.Key
			}
			opts = append(opts, opt)
		default:
			return nil, fmt.Errorf("options[%d]: expected string or object, got %T", i, item)
		}
	}
	return opts, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
