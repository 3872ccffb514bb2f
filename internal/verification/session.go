package verification

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/shenikar/gym_presence/internal/models"
	"github.com/sirupsen/logrus"
)

type State int

const (
	StateIdle State = iota
	StateLocating
	StateVerifying
	StateCompleted
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLocating:
		return "locating"
	case StateVerifying:
		return "verifying"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal - Completed или Failed
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

func (s State) active() bool {
	return s == StateLocating || s == StateVerifying
}

const (
	defaultProgressInterval = 250 * time.Millisecond
	progressStep            = 10
	locatingProgressCap     = 50
	verifyingProgress       = 60
	verifyingProgressCap    = 90
)

// Outcome - терминальный результат одного запуска сессии
type Outcome struct {
	State      State
	Coordinate models.Coordinate
	// Result есть у Completed и у отказов проверки; у ошибок геолокации его нет
	Result *models.VerificationResult
	// Err - *Error для Failed
	Err error
}

// Event доставляется слушателю при каждом переходе и шаге прогресса
type Event struct {
	State    State
	Progress int
	Outcome  *Outcome
}

type Listener func(Event)

type SessionConfig struct {
	Gym     models.GymLocation
	History []models.Coordinate
	Options AcquireOptions
	// ProgressInterval - период тика прогресса; по умолчанию 250ms
	ProgressInterval time.Duration
	Listener         Listener
	Logger           *logrus.Logger
}

type run struct {
	gen      uint64
	cancel   context.CancelFunc
	results  chan Outcome
	finished bool
}

// Session - конечный автомат Idle -> Locating -> Verifying -> Completed|Failed.
// Каждый Start увеличивает номер поколения; события устаревших запусков отбрасываются.
// После возврата из Cancel или нового Start слушатель больше не вызывается для прежнего запуска.
type Session struct {
	sampler  Sampler
	verifier *Verifier
	cfg      SessionConfig
	log      *logrus.Entry

	// deliverMu упорядочивает доставку событий слушателю
	deliverMu sync.Mutex

	mu         sync.Mutex
	state      State
	progress   int
	generation uint64
	delivering bool
	current    *run
}

func NewSession(sampler Sampler, verifier *Verifier, cfg SessionConfig) *Session {
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = defaultProgressInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Session{
		sampler:  sampler,
		verifier: verifier,
		cfg:      cfg,
		log: logger.WithFields(logrus.Fields{
			"component": "verification_session",
			"gym_id":    cfg.Gym.ID,
		}),
		state: StateIdle,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Start запускает новую попытку. Незавершенная предыдущая попытка отменяется.
// Канал получает ровно один Outcome при достижении терминального состояния
// или закрывается пустым, если попытку отменили или заменили новой.
func (s *Session) Start(ctx context.Context) <-chan Outcome {
	s.mu.Lock()
	if s.current != nil && !s.current.finished {
		s.log.WithField("generation", s.current.gen).Debug("Superseding in-flight verification")
		s.abortLocked()
	}
	s.generation++
	runCtx, cancel := context.WithCancel(ctx)
	r := &run{
		gen:     s.generation,
		cancel:  cancel,
		results: make(chan Outcome, 1),
	}
	s.current = r
	s.state = StateLocating
	s.progress = 0
	busy := s.delivering
	s.mu.Unlock()

	if !busy {
		s.waitDelivery()
	}

	go s.execute(runCtx, r)
	return r.results
}

// Cancel допустим из Locating и Verifying; в остальных состояниях ничего не делает
func (s *Session) Cancel() {
	s.mu.Lock()
	if !s.state.active() || s.current == nil || s.current.finished {
		s.mu.Unlock()
		return
	}
	s.log.WithField("generation", s.current.gen).Debug("Verification cancelled")
	s.abortLocked()
	s.generation++
	s.state = StateCancelled
	busy := s.delivering
	s.mu.Unlock()

	if !busy {
		s.waitDelivery()
	}
}

// abandon гасит запуск, чей родительский контекст отменили без вызова Cancel
func (s *Session) abandon(r *run) {
	s.mu.Lock()
	if s.current != r || r.finished {
		s.mu.Unlock()
		return
	}
	s.abortLocked()
	s.generation++
	s.state = StateCancelled
	busy := s.delivering
	s.mu.Unlock()

	if !busy {
		s.waitDelivery()
	}
}

// abortLocked останавливает текущий запуск: отменяет запрос к сэмплеру и закрывает канал результата
func (s *Session) abortLocked() {
	r := s.current
	r.finished = true
	r.cancel()
	close(r.results)
}

// waitDelivery дожидается окончания доставки, начатой до смены поколения
func (s *Session) waitDelivery() {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
}

type acquired struct {
	coord models.Coordinate
	err   error
}

func (s *Session) execute(ctx context.Context, r *run) {
	defer r.cancel()
	log := s.log.WithField("generation", r.gen)

	stopProgress := s.startProgress(ctx, r)
	defer stopProgress()

	defer func() {
		if rec := recover(); rec != nil {
			log.WithField("panic", rec).Error("Unexpected error during verification")
			stopProgress()
			s.finish(r, failed(nil, &Error{
				Kind:    ErrInternal,
				Message: "verification failed unexpectedly",
				Cause:   fmt.Errorf("panic: %v", rec),
			}))
		}
	}()

	s.deliver(r, func() (Event, bool) {
		return Event{State: StateLocating, Progress: s.progress}, true
	})

	log.Debug("Acquiring location")
	coord, err := s.acquire(ctx)
	if ctx.Err() != nil {
		log.Debug("Location request aborted")
		s.abandon(r)
		return
	}
	if err != nil {
		verr := classifySamplerError(err)
		log.WithError(err).Info("Location acquisition failed")
		stopProgress()
		s.finish(r, failed(nil, verr))
		return
	}

	moved := s.deliver(r, func() (Event, bool) {
		if r.finished {
			return Event{}, false
		}
		s.state = StateVerifying
		s.progress = max(s.progress, verifyingProgress)
		return Event{State: StateVerifying, Progress: s.progress}, true
	})
	if !moved {
		return
	}

	outcome := s.verify(coord)
	entry := log.WithField("state", outcome.State)
	if outcome.Result != nil {
		entry = entry.WithFields(logrus.Fields{
			"distance": outcome.Result.DistanceMeters,
			"risk":     outcome.Result.SpoofingRisk,
		})
	}
	entry.Debug("Verification finished")
	stopProgress()
	s.finish(r, outcome)
}

// acquire ограничивает ожидание сэмплера таймаутом, даже если сэмплер игнорирует ctx
func (s *Session) acquire(ctx context.Context) (models.Coordinate, error) {
	acqCtx := ctx
	if s.cfg.Options.Timeout > 0 {
		var cancel context.CancelFunc
		acqCtx, cancel = context.WithTimeout(ctx, s.cfg.Options.Timeout)
		defer cancel()
	}

	ch := make(chan acquired, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				ch <- acquired{err: fmt.Errorf("sampler panic: %v: %w", rec, ErrInternal)}
			}
		}()
		coord, err := s.sampler.Acquire(acqCtx, s.cfg.Options)
		ch <- acquired{coord: coord, err: err}
	}()

	select {
	case a := <-ch:
		if a.err != nil && errors.Is(a.err, context.DeadlineExceeded) {
			return models.Coordinate{}, fmt.Errorf("%w: %w", ErrTimeout, a.err)
		}
		return a.coord, a.err
	case <-acqCtx.Done():
		if ctx.Err() != nil {
			return models.Coordinate{}, ctx.Err()
		}
		return models.Coordinate{}, fmt.Errorf("no position within %s: %w", s.cfg.Options.Timeout, ErrTimeout)
	}
}

func (s *Session) verify(coord models.Coordinate) (out Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			out = failed(&coord, &Error{
				Kind:    ErrInternal,
				Message: "verification failed unexpectedly",
				Cause:   fmt.Errorf("panic: %v", rec),
			})
		}
	}()

	v := s.verifier.Verify(coord, s.cfg.Gym, s.cfg.History)
	result := v.Result
	if v.Succeeded() {
		return Outcome{State: StateCompleted, Coordinate: coord, Result: &result}
	}

	policy := s.verifier.Policy()
	var verr *Error
	switch {
	case v.Risk.Level == models.RiskHigh:
		verr = &Error{
			Kind:    ErrHighSpoofingRisk,
			Message: "location sample looks spoofed",
			Result:  &result,
			Reasons: v.Risk.Reasons,
		}
	case result.DistanceMeters > policy.MaxDistanceMeters:
		verr = &Error{
			Kind: ErrOutOfRange,
			Message: fmt.Sprintf("%.0fm from the gym, at most %.0fm allowed",
				result.DistanceMeters, policy.MaxDistanceMeters),
			Result:  &result,
			Reasons: v.Risk.Reasons,
		}
	default:
		verr = &Error{
			Kind: ErrOutOfRange,
			Message: fmt.Sprintf("location accuracy %.0fm is worse than required %.0fm",
				coord.AccuracyMeters, policy.MaxAccuracyMeters),
			Result:  &result,
			Reasons: v.Risk.Reasons,
		}
	}
	return Outcome{State: StateFailed, Coordinate: coord, Result: &result, Err: verr}
}

func failed(coord *models.Coordinate, err *Error) Outcome {
	out := Outcome{State: StateFailed, Result: err.Result, Err: err}
	if coord != nil {
		out.Coordinate = *coord
	}
	return out
}

// finish переводит запуск в терминальное состояние ровно один раз
func (s *Session) finish(r *run, outcome Outcome) {
	var owned bool
	s.deliver(r, func() (Event, bool) {
		if r.finished {
			return Event{}, false
		}
		r.finished = true
		owned = true
		s.state = outcome.State
		s.progress = 100
		return Event{State: outcome.State, Progress: 100, Outcome: &outcome}, true
	})
	if owned {
		r.results <- outcome
		close(r.results)
	}
}

// startProgress тикает прогрессом, пока запуск не завершен; возвращаемая функция идемпотентна
func (s *Session) startProgress(ctx context.Context, r *run) func() {
	ticker := time.NewTicker(s.cfg.ProgressInterval)
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				s.deliver(r, func() (Event, bool) {
					if r.finished {
						return Event{}, false
					}
					limit := locatingProgressCap
					if s.state == StateVerifying {
						limit = verifyingProgressCap
					}
					next := min(s.progress+progressStep, limit)
					if next <= s.progress {
						return Event{}, false
					}
					s.progress = next
					return Event{State: s.state, Progress: next}, true
				})
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}

// deliver применяет mutate и вызывает слушателя, только если запуск актуален.
// Изменение состояния и доставка идут под deliverMu, поэтому слушатель видит события в порядке изменений.
func (s *Session) deliver(r *run, mutate func() (Event, bool)) bool {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.Lock()
	if r.gen != s.generation {
		s.mu.Unlock()
		return false
	}
	ev, ok := mutate()
	if !ok {
		s.mu.Unlock()
		return false
	}
	listener := s.cfg.Listener
	s.delivering = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.delivering = false
		s.mu.Unlock()
	}()
	if listener != nil {
		s.notify(listener, ev)
	}
	return true
}

func (s *Session) notify(listener Listener, ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.WithField("panic", rec).Error("Session listener panicked")
		}
	}()
	listener(ev)
}
