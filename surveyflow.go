package surveyflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/surveyflow/surveyflow/internal/logging"
	"github.com/surveyflow/surveyflow/internal/runtime"
	loamAdapter "github.com/surveyflow/surveyflow/pkg/adapters/loam"
	"github.com/surveyflow/surveyflow/pkg/adapters/memory"
	"github.com/surveyflow/surveyflow/pkg/adapters/surveyfile"
	"github.com/surveyflow/surveyflow/pkg/domain"
	"github.com/surveyflow/surveyflow/pkg/persistence/middleware"
	"github.com/surveyflow/surveyflow/pkg/ports"
	"github.com/surveyflow/surveyflow/pkg/session"
)

// SummaryItem is one visited question with its recorded answer.
type SummaryItem = runtime.SummaryItem

// Survey is the high-level entry point of the library. It binds one graph
// to a session store and runs every operation as a single locked
// load, mutate, save turn.
type Survey struct {
	mu     sync.RWMutex
	engine *runtime.Engine
	labels map[string]string

	loader      ports.GraphLoader
	store       ports.StateStore
	middlewares []middleware.Middleware
	locker      ports.DistributedLocker
	manager     *session.Manager
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	Name        string
}

// Option defines a functional option for configuring a Survey.
type Option func(*Survey)

// WithLoader injects a custom GraphLoader, bypassing source detection.
func WithLoader(l ports.GraphLoader) Option {
	return func(s *Survey) {
		s.loader = l
	}
}

// WithGraph uses an already built graph and its display labels.
func WithGraph(g *domain.Graph, labels map[string]string) Option {
	return WithLoader(memory.NewFromGraph(g, labels))
}

// WithStore sets the session store. Defaults to an in-memory store.
func WithStore(store ports.StateStore) Option {
	return func(s *Survey) {
		s.store = store
	}
}

// WithMiddleware wraps the store, first listed outermost.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(s *Survey) {
		s.middlewares = append(s.middlewares, mws...)
	}
}

// WithPIIMasking masks answers whose question id matches any pattern before
// they reach the store. Answers to choice questions are kept, since they
// only hold option keys. It is a middleware and follows WithMiddleware ordering.
func WithPIIMasking(patterns ...string) Option {
	return func(s *Survey) {
		s.middlewares = append(s.middlewares,
			middleware.NewPIIMiddleware(patterns, middleware.WithKindLookup(s.kindOf)))
	}
}

// WithLocker adds a distributed lock around every session turn.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(s *Survey) {
		s.locker = locker
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Survey) {
		s.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Survey) {
		s.logger = logger
	}
}

// New loads a survey. source is a directory of markdown questions or a
// .yaml/.json survey file; it may be empty when WithLoader or WithGraph is given.
func New(source string, opts ...Option) (*Survey, error) {
	s := &Survey{}
	for _, opt := range opts {
		opt(s)
	}

	if s.loader == nil {
		if source == "" {
			return nil, fmt.Errorf("source is required when no custom loader is provided")
		}
		loader, err := openSource(source)
		if err != nil {
			return nil, err
		}
		s.loader = loader
	}
	if source != "" {
		s.Name = filepath.Base(source)
	}

	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.Name != "" {
		s.logger = s.logger.With("survey", s.Name)
	}

	if s.store == nil {
		s.store = memory.NewStore()
	}
	store := middleware.Chain(s.store, s.middlewares...)

	managerOpts := []session.Option{session.WithLogger(s.logger)}
	if s.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(s.locker))
	}
	s.manager = session.NewManager(store, managerOpts...)

	if err := s.Reload(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func openSource(source string) (ports.GraphLoader, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("invalid source: %w", err)
	}
	if info.IsDir() {
		loader, err := loamAdapter.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize loam: %w", err)
		}
		return loader, nil
	}
	return surveyfile.New(source), nil
}

// Reload reads the graph again from the loader. Sessions in flight keep
// their state; ids that vanished from the graph end the flow when reached.
func (s *Survey) Reload(ctx context.Context) error {
	g, err := s.loader.LoadGraph(ctx)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}
	var labels map[string]string
	if src, ok := s.loader.(ports.LabelSource); ok {
		labels = src.Labels()
	}

	engine := runtime.NewEngine(g,
		runtime.WithLifecycleHooks(s.hooks),
		runtime.WithLogger(s.logger),
	)

	s.mu.Lock()
	s.engine = engine
	s.labels = labels
	s.mu.Unlock()

	s.logger.Debug("graph loaded", "start", g.StartID(), "questions", g.Len())
	return nil
}

// Watch returns a channel that signals when the underlying graph changes.
// Returns error if the loader does not support watching.
func (s *Survey) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := s.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

func (s *Survey) current() *runtime.Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

func (s *Survey) kindOf(questionID string) (domain.Kind, bool) {
	engine := s.current()
	if engine == nil {
		return "", false
	}
	q, ok := engine.Graph().Lookup(questionID)
	return q.Kind, ok
}

// Graph returns the current graph.
func (s *Survey) Graph() *domain.Graph {
	return s.current().Graph()
}

// Label resolves a display reference, falling back to the reference itself.
func (s *Survey) Label(ref string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ports.ResolveLabel(s.labels, ref)
}

// Labels returns a copy of the label catalog.
func (s *Survey) Labels() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.labels))
	for k, v := range s.labels {
		out[k] = v
	}
	return out
}

// Sessions returns the session manager.
func (s *Survey) Sessions() *session.Manager {
	return s.manager
}

// Status is a read model of one session.
type Status struct {
	SessionID string               `json:"session_id"`
	State     domain.SessionStatus `json:"status"`
	// Current is nil once the flow has ended.
	Current   *domain.Question  `json:"current,omitempty"`
	Answers   map[string]string `json:"answers"`
	Visited   []string          `json:"visited"`
	Queue     []string          `json:"queue"`
	CanResume bool              `json:"can_resume"`
	// Complete is true when every visited question holds a valid answer.
	Complete  bool      `json:"complete"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Survey) status(engine *runtime.Engine, sess *domain.Session) *Status {
	st := domain.RestoreFlowState(sess.State)
	out := &Status{
		SessionID: sess.ID,
		State:     sess.Status,
		Answers:   st.Answers(),
		Visited:   st.Visited(),
		Queue:     st.Pending(),
		CanResume: st.CanResume(),
		Complete:  engine.Complete(st),
		UpdatedAt: sess.UpdatedAt,
	}
	if q, ok := engine.Graph().Lookup(sess.CurrentID); ok {
		out.Current = &q
	}
	return out
}

// turn runs fn on the session's flow state inside one locked update.
func (s *Survey) turn(ctx context.Context, sessionID string, fn func(*runtime.Engine, *domain.Session, *domain.FlowState) error) (*Status, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id: %w", domain.ErrEmptyID)
	}
	engine := s.current()
	sess, err := s.manager.Update(ctx, sessionID, func(sess *domain.Session) error {
		st := domain.RestoreFlowState(sess.State)
		if err := fn(engine, sess, st); err != nil {
			return err
		}
		sess.State = st.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.status(engine, sess), nil
}

// Start opens a session at the graph start. An empty sessionID gets a
// generated one. Starting an existing session returns it unchanged.
func (s *Survey) Start(ctx context.Context, sessionID string) (*Status, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	engine := s.current()
	sess, created, err := s.manager.LoadOrStart(ctx, sessionID, engine.Graph().StartID())
	if err != nil {
		return nil, err
	}
	if !created {
		return s.status(engine, sess), nil
	}

	s.logger.Info("session started", "session_id", sessionID)
	return s.turn(ctx, sessionID, func(e *runtime.Engine, sess *domain.Session, st *domain.FlowState) error {
		if len(st.Visited()) == 0 {
			sess.CurrentID = e.Start(st)
		}
		return nil
	})
}

// Answer records answer for questionID and moves the session forward.
// An empty questionID answers the current question.
func (s *Survey) Answer(ctx context.Context, sessionID, questionID, answer string) (*Status, error) {
	return s.turn(ctx, sessionID, func(e *runtime.Engine, sess *domain.Session, st *domain.FlowState) error {
		if sess.Status == domain.StatusCompleted {
			return domain.ErrFlowComplete
		}
		if questionID == "" {
			questionID = sess.CurrentID
		}
		if questionID != sess.CurrentID {
			return fmt.Errorf("%w: got '%s', showing '%s'", domain.ErrNotCurrentQuestion, questionID, sess.CurrentID)
		}

		next, done, err := e.Navigate(st, questionID, answer)
		if err != nil {
			return err
		}
		if done {
			sess.CurrentID = ""
			sess.Status = domain.StatusCompleted
			s.logger.Info("session completed", "session_id", sessionID)
			return nil
		}
		sess.CurrentID = next
		return nil
	})
}

// Resume moves the session to the first visited question still lacking an
// answer. Sessions without any answer, or completed with every answer
// valid, are left where they are.
func (s *Survey) Resume(ctx context.Context, sessionID string) (*Status, error) {
	return s.turn(ctx, sessionID, func(e *runtime.Engine, sess *domain.Session, st *domain.FlowState) error {
		if !st.CanResume() {
			return nil
		}
		if sess.Status == domain.StatusCompleted && e.Complete(st) {
			return nil
		}
		sess.CurrentID = e.Resume(st)
		sess.Status = domain.StatusActive
		return nil
	})
}

// Reset clears every answer and puts the session back at the start.
func (s *Survey) Reset(ctx context.Context, sessionID string) (*Status, error) {
	return s.turn(ctx, sessionID, func(e *runtime.Engine, sess *domain.Session, st *domain.FlowState) error {
		st.Reset()
		sess.CurrentID = e.Start(st)
		sess.Status = domain.StatusActive
		return nil
	})
}

// Back moves to the previously shown question. From a completed session it
// reopens the last question. At the start it does nothing.
func (s *Survey) Back(ctx context.Context, sessionID string) (*Status, error) {
	return s.turn(ctx, sessionID, func(e *runtime.Engine, sess *domain.Session, st *domain.FlowState) error {
		if sess.Status == domain.StatusCompleted {
			if last, ok := st.LastVisited(); ok {
				sess.CurrentID = last
				sess.Status = domain.StatusActive
			}
			return nil
		}
		if prev, ok := e.Previous(st, sess.CurrentID); ok {
			sess.CurrentID = prev
		}
		return nil
	})
}

// Status loads the session without changing it.
func (s *Survey) Status(ctx context.Context, sessionID string) (*Status, error) {
	sess, err := s.manager.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.status(s.current(), sess), nil
}

// Summary lists the distinct visited questions with their answers.
func (s *Survey) Summary(ctx context.Context, sessionID string) ([]SummaryItem, error) {
	sess, err := s.manager.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.current().Summary(domain.RestoreFlowState(sess.State)), nil
}

// Delete removes a session.
func (s *Survey) Delete(ctx context.Context, sessionID string) error {
	return s.manager.Delete(ctx, sessionID)
}

// List returns the stored session ids.
func (s *Survey) List(ctx context.Context) ([]string, error) {
	return s.manager.List(ctx)
}

// IsNotFound reports whether err means the session does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrSessionNotFound)
}
