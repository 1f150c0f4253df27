package checkout

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horoskooppi/checkout-manager/internal/capacity"
	"github.com/horoskooppi/checkout-manager/internal/dependency"
	"github.com/horoskooppi/checkout-manager/internal/entity"
	gerr "github.com/horoskooppi/checkout-manager/internal/errors"
)

// fakeRepo is an in-memory Repository for exercising funnel semantics
// without a database.
type fakeRepo struct {
	sessions map[string]*entity.CheckoutSession
	waitlist map[string]entity.WaitlistEntry
	mails    []entity.SendEmailRequest
	seq      int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		sessions: make(map[string]*entity.CheckoutSession),
		waitlist: make(map[string]entity.WaitlistEntry),
	}
}

func (f *fakeRepo) Checkout() dependency.Checkout   { return f }
func (f *fakeRepo) Waitlist() dependency.Waitlist   { return f }
func (f *fakeRepo) Analytics() dependency.Analytics { return f }
func (f *fakeRepo) Mail() dependency.Mail           { return f }

func (f *fakeRepo) Tx(ctx context.Context, fn func(context.Context, dependency.Repository) error) error {
	return fn(ctx, f)
}
func (f *fakeRepo) TxBegin(ctx context.Context) (dependency.Repository, error) { return f, nil }
func (f *fakeRepo) TxCommit(ctx context.Context) error                         { return nil }
func (f *fakeRepo) TxRollback(ctx context.Context) error                       { return nil }
func (f *fakeRepo) Now() time.Time                                             { return time.Now() }
func (f *fakeRepo) InTx() bool                                                 { return false }
func (f *fakeRepo) Close()                                                     {}
func (f *fakeRepo) Ping(ctx context.Context) error                             { return nil }
func (f *fakeRepo) IsErrUniqueViolation(err error) bool                        { return false }
func (f *fakeRepo) IsErrorRepeat(err error) bool                               { return false }
func (f *fakeRepo) DB() dependency.DB                                          { return nil }

func (f *fakeRepo) CreateSession(ctx context.Context, plan entity.PlanName) (*entity.CheckoutSession, error) {
	f.seq++
	now := time.Now()
	cs := &entity.CheckoutSession{
		ID:                 f.seq,
		SessionID:          fmt.Sprintf("session-%d", f.seq),
		SelectedPlan:       plan,
		PredictionLanguage: "en",
		CurrentStep:        entity.StepEmail,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	f.sessions[cs.SessionID] = cs
	return cloneSession(cs), nil
}

func (f *fakeRepo) GetSessionByID(ctx context.Context, sessionID string) (*entity.CheckoutSession, error) {
	cs, ok := f.sessions[sessionID]
	if !ok {
		return nil, gerr.ErrSessionNotFound
	}
	return cloneSession(cs), nil
}

func (f *fakeRepo) ApplyStep(ctx context.Context, sessionID string, step entity.StepName, fields entity.StepFields) (*entity.CheckoutSession, error) {
	cs, ok := f.sessions[sessionID]
	if !ok {
		return nil, gerr.ErrSessionNotFound
	}
	if err := cs.ApplyStep(step, fields, time.Now()); err != nil {
		return nil, err
	}
	return cloneSession(cs), nil
}

func (f *fakeRepo) SetPaymentInitiated(ctx context.Context, sessionID string) error {
	cs, ok := f.sessions[sessionID]
	if !ok {
		return gerr.ErrSessionNotFound
	}
	cs.PaymentInitiated = true
	return nil
}

func (f *fakeRepo) SetPaymentCompleted(ctx context.Context, sessionID string) error {
	cs, ok := f.sessions[sessionID]
	if !ok {
		return gerr.ErrSessionNotFound
	}
	cs.PaymentCompleted = true
	return nil
}

func (f *fakeRepo) Join(ctx context.Context, sessionID, email string, plan entity.PlanName) (bool, error) {
	if _, ok := f.waitlist[email]; ok {
		return true, nil
	}
	f.waitlist[email] = entity.WaitlistEntry{
		Id:           len(f.waitlist) + 1,
		SessionID:    sessionID,
		Email:        email,
		SelectedPlan: plan,
		CreatedAt:    time.Now(),
	}
	return false, nil
}

func (f *fakeRepo) Count(ctx context.Context) (int, error) {
	return len(f.waitlist), nil
}

func (f *fakeRepo) ListEntries(ctx context.Context) ([]entity.WaitlistEntry, error) {
	entries := make([]entity.WaitlistEntry, 0, len(f.waitlist))
	for _, e := range f.waitlist {
		entries = append(entries, e)
	}
	return entries, nil
}

func (f *fakeRepo) GetFunnelSnapshot(ctx context.Context) (*entity.FunnelSnapshot, error) {
	fs := &entity.FunnelSnapshot{}
	for _, cs := range f.sessions {
		fs.TotalStarted++
		if cs.StepEmailCompleted {
			fs.StepEmailCompleted++
		}
		if cs.StepPhoneCompleted {
			fs.StepPhoneCompleted++
		}
		if cs.StepAddressCompleted {
			fs.StepAddressCompleted++
		}
		if cs.StepBirthdateCompleted {
			fs.StepBirthdateCompleted++
		}
		if cs.PaymentInitiated {
			fs.PaymentInitiated++
		}
		if cs.PaymentCompleted {
			fs.PaymentCompleted++
		}
	}
	return fs, nil
}

func (f *fakeRepo) AddMail(ctx context.Context, ser *entity.SendEmailRequest) (int, error) {
	f.mails = append(f.mails, *ser)
	return len(f.mails), nil
}

func (f *fakeRepo) GetAllUnsent(ctx context.Context, withError bool) ([]entity.SendEmailRequest, error) {
	return nil, nil
}
func (f *fakeRepo) UpdateSent(ctx context.Context, id int) error              { return nil }
func (f *fakeRepo) AddError(ctx context.Context, id int, errMsg string) error { return nil }

func cloneSession(cs *entity.CheckoutSession) *entity.CheckoutSession {
	c := *cs
	return &c
}

type fakeMailer struct {
	confirmations []string
}

func (m *fakeMailer) SendWaitlistConfirmation(ctx context.Context, rep dependency.Repository, to string, plan entity.PlanName) error {
	m.confirmations = append(m.confirmations, to)
	return nil
}
func (m *fakeMailer) Start(ctx context.Context) error { return nil }
func (m *fakeMailer) Stop() error                     { return nil }

type fakePayment struct {
	demo bool
}

func (p *fakePayment) CreateCheckoutSession(ctx context.Context, session *entity.CheckoutSession) (string, error) {
	return "https://pay.example/cs_" + session.SessionID, nil
}
func (p *fakePayment) IsDemo() bool { return p.demo }

func completeAllSteps(t *testing.T, s *Server, sessionID string) {
	t.Helper()
	ctx := context.Background()

	_, err := s.SubmitStep(ctx, sessionID, entity.StepEmail, entity.StepFields{Email: "ada@example.com"})
	require.NoError(t, err)
	_, err = s.SubmitStep(ctx, sessionID, entity.StepPhone, entity.StepFields{Phone: "+358401234567"})
	require.NoError(t, err)
	_, err = s.SubmitStep(ctx, sessionID, entity.StepAddress, entity.StepFields{
		AddressLine1: "Mannerheimintie 1",
		City:         "Helsinki",
		PostalCode:   "00100",
		Country:      "Finland",
	})
	require.NoError(t, err)
	_, err = s.SubmitStep(ctx, sessionID, entity.StepBirthdate, entity.StepFields{
		BirthDate: "1990-07-30",
		BirthCity: "Tampere",
	})
	require.NoError(t, err)
}

func TestFunnel_SpotsAvailable(t *testing.T) {
	repo := newFakeRepo()
	gate := capacity.New(&capacity.Config{})
	s := New(repo, gate, &fakeMailer{}, &fakePayment{})

	ctx := context.Background()

	started, err := s.StartCheckout(ctx, entity.PlanCosmic)
	require.NoError(t, err)
	assert.Equal(t, "email", started.CurrentStep)
	assert.Empty(t, started.NextStep)

	completeAllSteps(t, s, started.SessionID)

	progress, err := s.GetProgress(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "complete", progress.CurrentStep)
	assert.Equal(t, "payment", progress.NextStep)
	assert.Equal(t, "fi", progress.PredictionLanguage)
	assert.Equal(t, "leo", progress.ZodiacSign)

	payment, err := s.CreatePayment(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/cs_"+started.SessionID, payment.RedirectURL)
	assert.False(t, payment.Demo)

	progress, err = s.GetProgress(ctx, started.SessionID)
	require.NoError(t, err)
	assert.True(t, progress.PaymentInitiated)

	progress, err = s.CompletePayment(ctx, started.SessionID)
	require.NoError(t, err)
	assert.True(t, progress.PaymentCompleted)
}

func TestFunnel_SpotsFull(t *testing.T) {
	repo := newFakeRepo()
	gate := capacity.New(&capacity.Config{SpotsFull: true})
	mailer := &fakeMailer{}
	s := New(repo, gate, mailer, &fakePayment{})

	ctx := context.Background()

	started, err := s.StartCheckout(ctx, entity.PlanCelestial)
	require.NoError(t, err)
	completeAllSteps(t, s, started.SessionID)

	progress, err := s.GetProgress(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "waitlist", progress.NextStep)

	_, err = s.CreatePayment(ctx, started.SessionID)
	assert.ErrorIs(t, err, gerr.ErrCapacityFull)

	first, err := s.JoinWaitlist(ctx, started.SessionID, "ada@example.com")
	require.NoError(t, err)

	// repeated join returns the exact same response
	second, err := s.JoinWaitlist(ctx, started.SessionID, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// only the first join queues a confirmation
	assert.Equal(t, []string{"ada@example.com"}, mailer.confirmations)

	count, err := s.WaitlistCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count.Count)

	status, err := s.CapacityStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.SpotsAvailable)
	assert.Equal(t, 1, status.WaitlistCount)
}

func TestJoinWaitlist_StaleSession(t *testing.T) {
	repo := newFakeRepo()
	gate := capacity.New(&capacity.Config{SpotsFull: true})
	s := New(repo, gate, nil, &fakePayment{})

	resp, err := s.JoinWaitlist(context.Background(), "gone-session", "luna@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)

	entry := repo.waitlist["luna@example.com"]
	assert.Equal(t, entity.PlanUnknown, entry.SelectedPlan)
}

func TestJoinWaitlist_InvalidEmail(t *testing.T) {
	repo := newFakeRepo()
	gate := capacity.New(&capacity.Config{SpotsFull: true})
	s := New(repo, gate, nil, &fakePayment{})

	_, err := s.JoinWaitlist(context.Background(), "gone-session", "not-an-email")
	require.Error(t, err)
	assert.Empty(t, repo.waitlist)
}

func TestSubmitStep_Errors(t *testing.T) {
	repo := newFakeRepo()
	gate := capacity.New(&capacity.Config{})
	s := New(repo, gate, nil, &fakePayment{})

	ctx := context.Background()

	_, err := s.SubmitStep(ctx, "missing", entity.StepEmail, entity.StepFields{Email: "a@b.co"})
	assert.ErrorIs(t, err, gerr.ErrSessionNotFound)

	started, err := s.StartCheckout(ctx, entity.PlanStarlight)
	require.NoError(t, err)

	_, err = s.SubmitStep(ctx, started.SessionID, entity.StepBirthdate, entity.StepFields{BirthDate: "1990-01-01"})
	assert.ErrorIs(t, err, gerr.ErrStepOutOfOrder)
}

func TestCreatePayment_IncompleteSteps(t *testing.T) {
	repo := newFakeRepo()
	gate := capacity.New(&capacity.Config{})
	s := New(repo, gate, nil, &fakePayment{})

	ctx := context.Background()

	started, err := s.StartCheckout(ctx, entity.PlanLifetime)
	require.NoError(t, err)

	_, err = s.CreatePayment(ctx, started.SessionID)
	assert.ErrorIs(t, err, gerr.ErrStepsIncomplete)
}

func TestPublicAnalytics(t *testing.T) {
	repo := newFakeRepo()
	gate := capacity.New(&capacity.Config{})
	s := New(repo, gate, nil, &fakePayment{})

	ctx := context.Background()

	_, err := s.StartCheckout(ctx, entity.PlanCosmic)
	require.NoError(t, err)
	started, err := s.StartCheckout(ctx, entity.PlanCosmic)
	require.NoError(t, err)
	completeAllSteps(t, s, started.SessionID)

	resp, err := s.PublicAnalytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalStarted)
	assert.Equal(t, 1, resp.StepBirthdateCompleted)
	assert.Equal(t, 50.0, resp.ConversionRate)
}
