package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"sync"
	"time"

	"voterlink/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// memStore implements domain.Store in memory. Transactions are serialised and
// roll back by restoring a snapshot.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	pending  map[string]domain.PendingAuthorization
	ballots  map[string]domain.Ballot
	messages map[string]domain.ProcessedMessage
	abuse    map[string]domain.AbuseCounter
	grants   map[string]domain.AuthorizationGrant
}

func newMemStore() *memStore {
	return &memStore{
		pending:  make(map[string]domain.PendingAuthorization),
		ballots:  make(map[string]domain.Ballot),
		messages: make(map[string]domain.ProcessedMessage),
		abuse:    make(map[string]domain.AbuseCounter),
		grants:   make(map[string]domain.AuthorizationGrant),
	}
}

func (s *memStore) Repos() domain.Repositories {
	return domain.Repositories{
		Pending:  &memPendingRepo{s},
		Ballots:  &memBallotRepo{s},
		Messages: &memMessageRepo{s},
		Abuse:    &memAbuseRepo{s},
		Grants:   &memGrantRepo{s},
	}
}

func (s *memStore) WithTx(ctx context.Context, fn func(r domain.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	pending, ballots, messages := maps.Clone(s.pending), maps.Clone(s.ballots), maps.Clone(s.messages)
	abuse, grants := maps.Clone(s.abuse), maps.Clone(s.grants)
	s.mu.Unlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.pending, s.ballots, s.messages, s.abuse, s.grants = pending, ballots, messages, abuse, grants
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) ballotCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ballots)
}

func (s *memStore) messageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func (s *memStore) pendingToken(phone string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[phone]
	return p.Token, ok
}

func (s *memStore) grantCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.grants)
}

func (s *memStore) grantUsed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.grants[id]
	return ok && g.Used()
}

type memPendingRepo struct{ s *memStore }

func (r *memPendingRepo) Upsert(_ context.Context, phone, token string, issuedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.pending[phone]
	if !ok {
		p = domain.PendingAuthorization{ID: "p-" + phone, PhoneNumber: phone}
	}
	p.Token, p.IssuedAt = token, issuedAt
	r.s.pending[phone] = p
	return nil
}

func (r *memPendingRepo) GetByPhone(_ context.Context, phone string) (*domain.PendingAuthorization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.pending[phone]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *memPendingRepo) GetByPhoneAndToken(ctx context.Context, phone, token string) (*domain.PendingAuthorization, error) {
	p, err := r.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if p.Token != token {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *memPendingRepo) DeleteByPhone(_ context.Context, phone string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.pending, phone)
	return nil
}

type memBallotRepo struct{ s *memStore }

func (r *memBallotRepo) Create(_ context.Context, b *domain.Ballot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.ballots[b.PhoneNumber]; ok {
		return fmt.Errorf("ballot for %s: %w", b.PhoneNumber, domain.ErrDuplicateVote)
	}
	r.s.ballots[b.PhoneNumber] = *b
	return nil
}

func (r *memBallotRepo) ExistsForPhone(_ context.Context, phone string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.ballots[phone]
	return ok, nil
}

type memMessageRepo struct{ s *memStore }

func (r *memMessageRepo) Record(_ context.Context, m *domain.ProcessedMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.messages[m.MessageID]; ok {
		return domain.ErrDuplicateMessage
	}
	r.s.messages[m.MessageID] = *m
	return nil
}

func (r *memMessageRepo) Exists(_ context.Context, messageID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.messages[messageID]
	return ok, nil
}

type memAbuseRepo struct{ s *memStore }

func (r *memAbuseRepo) GetByPhone(_ context.Context, phone string) (*domain.AbuseCounter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.abuse[phone]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *memAbuseRepo) RecordAttempt(_ context.Context, phone string, threshold int) (*domain.AbuseCounter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.abuse[phone]
	if !ok {
		c = domain.AbuseCounter{ID: "a-" + phone, PhoneNumber: phone}
	}
	c.Attempts++
	c.Blocked = c.Blocked || c.Attempts >= threshold
	r.s.abuse[phone] = c
	return &c, nil
}

type memGrantRepo struct{ s *memStore }

func (r *memGrantRepo) Upsert(_ context.Context, g *domain.AuthorizationGrant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, existing := range r.s.grants {
		if existing.PhoneNumber == g.PhoneNumber {
			delete(r.s.grants, id)
		}
	}
	r.s.grants[g.ID] = *g
	return nil
}

func (r *memGrantRepo) GetActive(_ context.Context, id string, now time.Time) (*domain.AuthorizationGrant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.grants[id]
	if !ok || !g.ExpiresAt.After(now) {
		return nil, domain.ErrNotFound
	}
	return &g, nil
}

func (r *memGrantRepo) MarkUsed(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.grants[id]
	if !ok || g.Used() {
		return domain.ErrDuplicateVote
	}
	g.UsedAt = &at
	r.s.grants[id] = g
	return nil
}

// fakeTokens implements domain.LinkTokenService with predictable tokens.
type fakeTokens struct {
	mu       sync.Mutex
	seq      int
	issued   map[string]string
	errFor   map[string]error
	issueErr error
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{issued: make(map[string]string), errFor: make(map[string]error)}
}

func (f *fakeTokens) Issue(phone string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.issueErr != nil {
		return "", f.issueErr
	}
	f.seq++
	tok := fmt.Sprintf("tok-%d", f.seq)
	f.issued[tok] = phone
	return tok, nil
}

func (f *fakeTokens) Validate(token string, _ time.Duration) (*domain.LinkClaims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errFor[token]; ok {
		return nil, err
	}
	phone, ok := f.issued[token]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.LinkClaims{PhoneNumber: phone, Domain: "https://votar.example.org"}, nil
}

type sentMessage struct {
	kind string
	to   string
	data any
}

// fakeNotifier implements domain.NotificationService and records every call.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (f *fakeNotifier) record(kind, to string, data any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{kind: kind, to: to, data: data})
	return f.err
}

func (f *fakeNotifier) SendVotingLink(_ context.Context, d *domain.VotingLinkMessageData) error {
	return f.record(TemplateVotingLink, d.PhoneNumber, d)
}

func (f *fakeNotifier) SendAbuseWarning(_ context.Context, d *domain.AbuseWarningMessageData) error {
	return f.record(TemplateAbuseWarning, d.PhoneNumber, d)
}

func (f *fakeNotifier) SendLockoutNotice(_ context.Context, phone string) error {
	return f.record(TemplateLockedOut, phone, nil)
}

func (f *fakeNotifier) SendLinkRejected(_ context.Context, phone string) error {
	return f.record(TemplateLinkRejected, phone, nil)
}

func (f *fakeNotifier) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

// fakeAlerts implements domain.AlertService.
type fakeAlerts struct {
	mu   sync.Mutex
	sent []*domain.NumberBlockedEmailData
}

func (f *fakeAlerts) SendNumberBlocked(_ context.Context, d *domain.NumberBlockedEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, d)
	return nil
}

var errSendFailed = errors.New("provider unavailable")
