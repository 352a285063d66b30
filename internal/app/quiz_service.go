package app

import (
	"context"
	"sync"
	"time"

	"daily-quiz-service/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BankRepository loads question banks (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Save(ctx context.Context, session Session) error
	Get(ctx context.Context, sessionID string) (Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// Session is one player's playthrough.
type Session struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"playerId"`
	BankID    string    `json:"bankId"`
	State     State     `json:"state"`
	StartedAt time.Time `json:"startedAt"`
}

// Option customizes a QuizService.
type Option func(*QuizService)

// WithShuffler replaces the randomness used for sampling and option order.
func WithShuffler(s Shuffler) Option {
	return func(q *QuizService) {
		q.shuffle = s
	}
}

// WithPerTier sets how many questions each tier contributes.
func WithPerTier(n int) Option {
	return func(q *QuizService) {
		q.perTier = n
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(q *QuizService) {
		if logger != nil {
			q.log = logger
		}
	}
}

// WithClock is used for deterministic timestamps in tests.
func WithClock(now func() time.Time) Option {
	return func(q *QuizService) {
		q.now = now
	}
}

// WithIDGenerator replaces uuid-based session ids.
func WithIDGenerator(newID func() string) Option {
	return func(q *QuizService) {
		q.newID = newID
	}
}

// WithSessionTTL sets how long a player's session may sit idle before the service
// forgets the player and deletes the session. Zero disables the sweep.
func WithSessionTTL(ttl time.Duration) Option {
	return func(q *QuizService) {
		q.idleTTL = ttl
	}
}

// DefaultSessionTTL matches the default session.ttl config value.
const DefaultSessionTTL = time.Hour

// QuizService contains the core quiz use cases.
type QuizService struct {
	banks    BankRepository
	sessions SessionRepository
	builder  Builder
	machine  Machine
	shuffle  Shuffler
	perTier  int
	log      *zap.Logger
	now      func() time.Time
	newID    func() string
	idleTTL  time.Duration

	// locks serializes transitions per session and starts per player.
	locks keyedMutex

	// mu guards the fields below. It is never held across repository calls.
	mu        sync.Mutex
	tickets   uint64
	players   map[string]playerSlot
	lastSweep time.Time
}

// playerSlot tracks the newest start claimed for a player and the session it owns.
type playerSlot struct {
	ticket        uint64
	sessionTicket uint64
	sessionID     string
	touched       time.Time
}

// pending reports whether a start is in flight for the player.
func (p playerSlot) pending() bool { return p.ticket != p.sessionTicket }

func NewQuizService(banks BankRepository, sessions SessionRepository, opts ...Option) *QuizService {
	s := &QuizService{
		banks:    banks,
		sessions: sessions,
		shuffle:  DefaultShuffler,
		perTier:  DefaultPerTier,
		log:      zap.NewNop(),
		now:      time.Now,
		newID:    uuid.NewString,
		idleTTL:  DefaultSessionTTL,
		players:  make(map[string]playerSlot),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.builder = NewBuilder(s.shuffle, s.perTier)
	s.machine = NewMachine(s.shuffle)
	return s
}

// Start loads the bank and begins a fresh session for the player, discarding the
// player's previous one. When the same player starts again before this load
// completes, the later request wins and this one returns domain.ErrSuperseded.
func (s *QuizService) Start(ctx context.Context, playerID, bankID string) (Session, error) {
	ticket, expired := s.claim(playerID)
	s.dropSessions(ctx, expired)

	bank, err := s.banks.GetBank(ctx, bankID)
	if err != nil {
		s.release(playerID, ticket)
		s.log.Warn("bank load failed",
			zap.String("bank_id", bankID),
			zap.String("player_id", playerID),
			zap.Error(err),
		)
		return Session{}, err
	}

	questions := s.builder.Build(bank)
	session := Session{
		ID:        s.newID(),
		PlayerID:  playerID,
		BankID:    bankID,
		State:     s.machine.Start(questions),
		StartedAt: s.now(),
	}

	unlock := s.locks.Lock("player:" + playerID)
	defer unlock()

	previous, current := s.owned(playerID, ticket)
	if !current {
		s.log.Debug("discarding superseded session start", zap.String("player_id", playerID))
		return Session{}, domain.ErrSuperseded
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		s.release(playerID, ticket)
		return Session{}, err
	}
	if previous != "" {
		s.dropSessions(ctx, []string{previous})
	}

	s.mu.Lock()
	slot := s.players[playerID]
	slot.sessionTicket = ticket
	slot.sessionID = session.ID
	slot.touched = s.now()
	s.players[playerID] = slot
	s.mu.Unlock()

	s.log.Info("session started",
		zap.String("session_id", session.ID),
		zap.String("player_id", playerID),
		zap.String("bank_id", bankID),
		zap.Int("questions", session.State.Total()),
	)
	return session, nil
}

// Get returns the stored session.
func (s *QuizService) Get(ctx context.Context, sessionID string) (Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	s.touch(session)
	return session, nil
}

// Submit records an answer for the current question. Repeat submissions are ignored.
func (s *QuizService) Submit(ctx context.Context, sessionID, option string) (Session, error) {
	return s.update(ctx, sessionID, func(state State) (State, error) {
		if state.Phase == PhaseAwaiting {
			if q, ok := state.Current(); ok && !q.HasOption(option) {
				return state, domain.ErrOptionNotFound
			}
		}
		return s.machine.Reduce(state, Submit{Option: option}), nil
	})
}

// Advance moves to the next question, or ends the session after the last one.
func (s *QuizService) Advance(ctx context.Context, sessionID string) (Session, error) {
	return s.update(ctx, sessionID, func(state State) (State, error) {
		if state.Phase == PhaseAwaiting {
			return state, domain.ErrAnswerRequired
		}
		return s.machine.Reduce(state, Advance{}), nil
	})
}

// Result returns the final (score, total) of an ended session.
func (s *QuizService) Result(ctx context.Context, sessionID string) (domain.Result, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Result{}, err
	}
	if !session.State.Ended() {
		return domain.Result{}, domain.ErrSessionInProgress
	}
	return session.State.Result(), nil
}

// claim records a new start for playerID and returns its ticket, plus the sessions
// of players idle longer than the session TTL.
func (s *QuizService) claim(playerID string) (uint64, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets++
	slot := s.players[playerID]
	slot.ticket = s.tickets
	s.players[playerID] = slot
	return slot.ticket, s.sweep()
}

// sweep forgets idle players. Callers hold mu.
func (s *QuizService) sweep() []string {
	if s.idleTTL <= 0 {
		return nil
	}
	now := s.now()
	if now.Sub(s.lastSweep) < s.idleTTL/4 {
		return nil
	}
	s.lastSweep = now

	var expired []string
	for playerID, slot := range s.players {
		if slot.pending() || now.Sub(slot.touched) <= s.idleTTL {
			continue
		}
		delete(s.players, playerID)
		expired = append(expired, slot.sessionID)
	}
	return expired
}

// release undoes a claim whose start failed, unless a newer start took over.
func (s *QuizService) release(playerID string, ticket uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.players[playerID]
	if !ok || slot.ticket != ticket {
		return
	}
	if slot.sessionID == "" {
		delete(s.players, playerID)
		return
	}
	slot.ticket = slot.sessionTicket
	s.players[playerID] = slot
}

// owned returns the player's current session id and whether ticket is still the newest start.
func (s *QuizService) owned(playerID string, ticket uint64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot := s.players[playerID]
	return slot.sessionID, slot.ticket == ticket
}

func (s *QuizService) touch(session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.players[session.PlayerID]
	if ok && slot.sessionID == session.ID {
		slot.touched = s.now()
		s.players[session.PlayerID] = slot
	}
}

func (s *QuizService) dropSessions(ctx context.Context, sessionIDs []string) {
	for _, id := range sessionIDs {
		unlock := s.locks.Lock("session:" + id)
		if err := s.sessions.Delete(ctx, id); err != nil {
			s.log.Warn("failed to drop session", zap.String("session_id", id), zap.Error(err))
		}
		unlock()
	}
}

func (s *QuizService) update(ctx context.Context, sessionID string, fn func(State) (State, error)) (Session, error) {
	unlock := s.locks.Lock("session:" + sessionID)
	defer unlock()

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	s.touch(session)
	next, err := fn(session.State)
	if err != nil {
		return session, err
	}
	if next.Phase == session.State.Phase && next.Index == session.State.Index {
		return session, nil
	}
	session.State = next
	if err := s.sessions.Save(ctx, session); err != nil {
		return Session{}, err
	}
	if next.Ended() {
		s.log.Info("session ended",
			zap.String("session_id", session.ID),
			zap.Int("score", next.Score),
			zap.Int("total", next.Total()),
		)
	}
	return session, nil
}
