package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"weddingrsvp/internal/domain"
)

type mockGuestRepository struct {
	exact        *domain.Guest
	partial      *domain.Guest
	insertErr    error
	inserted     []*domain.Guest
	partialCalls int
	findErr      error
}

func (m *mockGuestRepository) InitSchema(ctx context.Context) error { return nil }

func (m *mockGuestRepository) FindExact(ctx context.Context, nombreKey, apellidosKey string) (*domain.Guest, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.exact != nil {
		return m.exact, nil
	}
	return nil, domain.ErrGuestNotFound
}

func (m *mockGuestRepository) FindPartialLastName(ctx context.Context, nombreKey, lastFirstToken, fullApellidosKey string) (*domain.Guest, error) {
	m.partialCalls++
	if m.partial != nil {
		return m.partial, nil
	}
	return nil, domain.ErrGuestNotFound
}

func (m *mockGuestRepository) Insert(ctx context.Context, guest *domain.Guest) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	guest.ID = int64(len(m.inserted) + 1)
	m.inserted = append(m.inserted, guest)
	return nil
}

func (m *mockGuestRepository) ListAll(ctx context.Context) ([]*domain.Guest, error) {
	return m.inserted, nil
}

type mockSheetSyncer struct {
	result bool
	calls  int
}

func (m *mockSheetSyncer) Sync(ctx context.Context, guest *domain.Guest) bool {
	m.calls++
	return m.result
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestGuestService_Create_Success(t *testing.T) {
	repo := &mockGuestRepository{}
	syncer := &mockSheetSyncer{result: true}
	svc := NewGuestService(repo, syncer, nil, "", testLogger())

	guest := domain.NewGuest("Juan", "Pérez", "si", "no", 2, 1, "si", "", "")
	created, synced, err := svc.Create(context.Background(), guest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !synced {
		t.Fatal("expected synced to be true")
	}
	if created.ID == 0 {
		t.Fatal("expected repository to assign an ID")
	}
	if syncer.calls != 1 {
		t.Fatalf("expected 1 sheet sync call, got %d", syncer.calls)
	}
}

func TestGuestService_Create_SheetSyncFailureDoesNotFail(t *testing.T) {
	repo := &mockGuestRepository{}
	syncer := &mockSheetSyncer{result: false}
	svc := NewGuestService(repo, syncer, nil, "", testLogger())

	guest := domain.NewGuest("Juan", "Pérez", "si", "no", 0, 0, "no", "", "")
	_, synced, err := svc.Create(context.Background(), guest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if synced {
		t.Fatal("expected synced to be false")
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected guest to be inserted, got %d inserts", len(repo.inserted))
	}
}

func TestGuestService_Create_ExactDuplicate(t *testing.T) {
	existing := domain.NewGuest("Juan", "Pérez", "si", "no", 0, 0, "no", "", "")
	repo := &mockGuestRepository{exact: existing}
	syncer := &mockSheetSyncer{result: true}
	svc := NewGuestService(repo, syncer, nil, "", testLogger())

	guest := domain.NewGuest("JUAN", "PÉREZ", "si", "no", 0, 0, "no", "", "")
	_, _, err := svc.Create(context.Background(), guest)

	var dup *domain.DuplicateGuestError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateGuestError, got %v", err)
	}
	if dup.Partial {
		t.Fatal("expected exact-tier duplicate")
	}
	if dup.Message != MsgExactDuplicate {
		t.Fatalf("unexpected message: %q", dup.Message)
	}
	if syncer.calls != 0 {
		t.Fatal("sheet sync must not run for a rejected submission")
	}
}

func TestGuestService_Create_PartialDuplicate(t *testing.T) {
	existing := domain.NewGuest("Juan", "García López", "si", "no", 0, 0, "no", "", "")
	repo := &mockGuestRepository{partial: existing}
	svc := NewGuestService(repo, &mockSheetSyncer{}, nil, "", testLogger())

	guest := domain.NewGuest("Juan", "García", "si", "no", 0, 0, "no", "", "")
	_, _, err := svc.Create(context.Background(), guest)

	var dup *domain.DuplicateGuestError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateGuestError, got %v", err)
	}
	if !dup.Partial {
		t.Fatal("expected partial-tier duplicate")
	}
	if !strings.Contains(dup.Message, "Juan García López") {
		t.Fatalf("message should name the existing guest, got %q", dup.Message)
	}
}

func TestGuestService_Create_EmptyLastNamesSkipsPartialTier(t *testing.T) {
	repo := &mockGuestRepository{}
	svc := NewGuestService(repo, &mockSheetSyncer{}, nil, "", testLogger())

	// Whitespace-only apellidos normalizes to zero tokens.
	guest := domain.NewGuest("Juan", "   ", "si", "no", 0, 0, "no", "", "")
	_, _, err := svc.Create(context.Background(), guest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.partialCalls != 0 {
		t.Fatalf("partial tier must be skipped, got %d calls", repo.partialCalls)
	}
}

func TestGuestService_Create_ConstraintRaceMapsToDuplicate(t *testing.T) {
	repo := &mockGuestRepository{insertErr: domain.ErrDuplicateGuest}
	svc := NewGuestService(repo, &mockSheetSyncer{}, nil, "", testLogger())

	guest := domain.NewGuest("Juan", "Pérez", "si", "no", 0, 0, "no", "", "")
	_, _, err := svc.Create(context.Background(), guest)

	var dup *domain.DuplicateGuestError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateGuestError, got %v", err)
	}
	if !errors.Is(err, domain.ErrDuplicateGuest) {
		t.Fatal("expected errors.Is to match ErrDuplicateGuest")
	}
	if dup.Message != MsgExactDuplicate {
		t.Fatalf("race duplicates must use the exact-match message, got %q", dup.Message)
	}
}

func TestGuestService_Create_FindError(t *testing.T) {
	repo := &mockGuestRepository{findErr: errors.New("connection refused")}
	svc := NewGuestService(repo, &mockSheetSyncer{}, nil, "", testLogger())

	guest := domain.NewGuest("Juan", "Pérez", "si", "no", 0, 0, "no", "", "")
	_, _, err := svc.Create(context.Background(), guest)
	if err == nil {
		t.Fatal("expected error")
	}
	var dup *domain.DuplicateGuestError
	if errors.As(err, &dup) {
		t.Fatal("storage errors must not be reported as duplicates")
	}
}

// fakeGuestRepo implements the same matching predicate as the SQL queries so
// the surname scenarios from real submissions can be exercised end to end.
type fakeGuestRepo struct {
	guests []*domain.Guest
}

func (f *fakeGuestRepo) InitSchema(ctx context.Context) error { return nil }

func (f *fakeGuestRepo) FindExact(ctx context.Context, nombreKey, apellidosKey string) (*domain.Guest, error) {
	for _, g := range f.guests {
		if g.NombreKey == nombreKey && g.ApellidosKey == apellidosKey {
			return g, nil
		}
	}
	return nil, domain.ErrGuestNotFound
}

func (f *fakeGuestRepo) FindPartialLastName(ctx context.Context, nombreKey, lastFirstToken, fullApellidosKey string) (*domain.Guest, error) {
	for _, g := range f.guests {
		if g.NombreKey != nombreKey {
			continue
		}
		if g.ApellidosKey == lastFirstToken ||
			strings.HasPrefix(g.ApellidosKey, fullApellidosKey+" ") ||
			strings.HasPrefix(fullApellidosKey, g.ApellidosKey+" ") {
			return g, nil
		}
	}
	return nil, domain.ErrGuestNotFound
}

func (f *fakeGuestRepo) Insert(ctx context.Context, guest *domain.Guest) error {
	for _, g := range f.guests {
		if g.NombreKey == guest.NombreKey && g.ApellidosKey == guest.ApellidosKey {
			return domain.ErrDuplicateGuest
		}
	}
	guest.ID = int64(len(f.guests) + 1)
	f.guests = append(f.guests, guest)
	return nil
}

func (f *fakeGuestRepo) ListAll(ctx context.Context) ([]*domain.Guest, error) {
	return f.guests, nil
}

func TestGuestService_SurnameScenarios(t *testing.T) {
	tests := []struct {
		name       string
		first      [2]string // nombre, apellidos
		second     [2]string
		wantReject bool
	}{
		{
			name:       "single surname collides with its two-part superset",
			first:      [2]string{"Juan", "García López"},
			second:     [2]string{"Juan", "García"},
			wantReject: true,
		},
		{
			name:       "two-part superset collides with existing single surname",
			first:      [2]string{"Juan", "García"},
			second:     [2]string{"Juan", "García López"},
			wantReject: true,
		},
		{
			name:       "shared first token with differing second token does not collide",
			first:      [2]string{"Juan", "Pérez Test"},
			second:     [2]string{"Juan", "Pérez García"},
			wantReject: false,
		},
		{
			name:       "different first name never collides",
			first:      [2]string{"Juan", "García"},
			second:     [2]string{"Pedro", "García"},
			wantReject: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewGuestService(&fakeGuestRepo{}, &mockSheetSyncer{result: true}, nil, "", testLogger())

			first := domain.NewGuest(tt.first[0], tt.first[1], "si", "no", 0, 0, "no", "", "")
			if _, _, err := svc.Create(context.Background(), first); err != nil {
				t.Fatalf("first submission must succeed: %v", err)
			}

			second := domain.NewGuest(tt.second[0], tt.second[1], "si", "no", 0, 0, "no", "", "")
			_, _, err := svc.Create(context.Background(), second)
			if tt.wantReject {
				var dup *domain.DuplicateGuestError
				if !errors.As(err, &dup) {
					t.Fatalf("expected duplicate rejection, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("second submission must succeed: %v", err)
			}
		})
	}
}

type mockMailer struct {
	sent []string
	err  error
}

func (m *mockMailer) Send(to, subject, html, text string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func TestGuestService_Create_NotifiesOrganizers(t *testing.T) {
	repo := &mockGuestRepository{}
	mailer := &mockMailer{}
	svc := NewGuestService(repo, &mockSheetSyncer{result: true}, mailer, "novios@example.com", testLogger())

	guest := domain.NewGuest("Juan", "Pérez", "si", "no", 0, 0, "no", "", "")
	if _, _, err := svc.Create(context.Background(), guest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "novios@example.com" {
		t.Fatalf("expected one notification to the organizers, got %v", mailer.sent)
	}
}

func TestGuestService_Create_MailerFailureDoesNotFail(t *testing.T) {
	repo := &mockGuestRepository{}
	mailer := &mockMailer{err: errors.New("ses unavailable")}
	svc := NewGuestService(repo, &mockSheetSyncer{result: true}, mailer, "novios@example.com", testLogger())

	guest := domain.NewGuest("Juan", "Pérez", "si", "no", 0, 0, "no", "", "")
	if _, _, err := svc.Create(context.Background(), guest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
