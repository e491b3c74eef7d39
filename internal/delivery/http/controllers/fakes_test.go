package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"voterlink/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeWebhookService implements domain.WebhookService.
type fakeWebhookService struct {
	lastBody []byte
	outcome  domain.WebhookOutcome
	err      error
}

func (f *fakeWebhookService) HandleInbound(_ context.Context, raw []byte) (domain.WebhookOutcome, error) {
	f.lastBody = raw
	return f.outcome, f.err
}

// fakeBallotService implements domain.BallotService.
type fakeBallotService struct {
	visitGrant *domain.AuthorizationGrant
	visitErr   error
	lastToken  string

	submitBallot *domain.Ballot
	submitErr    error
	lastGrantID  string
	lastForm     *domain.BallotForm
	lastIP       string
}

func (f *fakeBallotService) VisitLink(_ context.Context, token string) (*domain.AuthorizationGrant, error) {
	f.lastToken = token
	if f.visitErr != nil {
		return nil, f.visitErr
	}
	return f.visitGrant, nil
}

func (f *fakeBallotService) Submit(_ context.Context, grantID string, form *domain.BallotForm, ip string) (*domain.Ballot, error) {
	f.lastGrantID, f.lastForm, f.lastIP = grantID, form, ip
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.submitBallot, nil
}

// fakeRegistrationService implements domain.RegistrationService.
type fakeRegistrationService struct {
	phone       string
	err         error
	lastCountry string
	lastNumber  string
}

func (f *fakeRegistrationService) Register(_ context.Context, countryCode, number string) (string, error) {
	f.lastCountry, f.lastNumber = countryCode, number
	if f.err != nil {
		return "", f.err
	}
	return f.phone, nil
}

// fakePages implements domain.PageRenderer, writing "page:<name>".
type fakePages struct {
	err      error
	lastData any
}

func (f *fakePages) Render(w io.Writer, page string, data any) error {
	if f.err != nil {
		return f.err
	}
	f.lastData = data
	_, err := fmt.Fprintf(w, "page:%s", page)
	return err
}

// fakeLookup implements domain.ReferenceLookup.
type fakeLookup struct {
	precincts  []domain.Precinct
	candidates map[string][]domain.Candidate
	reloadErr  error
	reloads    int
}

func (f *fakeLookup) Precincts() []domain.Precinct { return f.precincts }

func (f *fakeLookup) CandidatesFor(id string) []domain.Candidate {
	if c, ok := f.candidates[id]; ok {
		return c
	}
	return []domain.Candidate{}
}

func (f *fakeLookup) Reload(context.Context) error {
	f.reloads++
	return f.reloadErr
}

func (f *fakeLookup) LoadError() error { return f.reloadErr }

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

var errBoom = errors.New("boom")

func testGrant() *domain.AuthorizationGrant {
	return &domain.AuthorizationGrant{
		ID:          "grant-1",
		PhoneNumber: "+59170000001",
		ExpiresAt:   time.Now().Add(30 * time.Minute),
	}
}
