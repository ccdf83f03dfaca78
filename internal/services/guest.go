package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"weddingrsvp/internal/domain"
)

// User-facing rejection messages. The partial-match message names the
// existing registration so the submitter can tell whether it is really them.
const (
	MsgExactDuplicate   = "Este nombre ya ha sido registrado. Si necesitas actualizar tu confirmación, por favor contacta con los novios."
	msgPartialDuplicate = `Posible duplicado detectado. Ya existe un registro similar: "%s". Si eres una persona diferente o necesitas actualizar tu confirmación, por favor contacta con los novios.`
)

type guestService struct {
	repo          domain.GuestRepository
	sheets        domain.SheetSyncer
	mailer        domain.Mailer
	notifyAddress string
	logger        *slog.Logger
}

// NewGuestService creates a GuestService. mailer may be nil (or notifyAddress
// empty) to disable organizer notifications.
func NewGuestService(repo domain.GuestRepository, sheets domain.SheetSyncer, mailer domain.Mailer, notifyAddress string, logger *slog.Logger) domain.GuestService {
	return &guestService{
		repo:          repo,
		sheets:        sheets,
		mailer:        mailer,
		notifyAddress: notifyAddress,
		logger:        logger,
	}
}

func (s *guestService) Create(ctx context.Context, guest *domain.Guest) (*domain.Guest, bool, error) {
	if dup, err := s.findDuplicate(ctx, guest); err != nil {
		return nil, false, err
	} else if dup != nil {
		return nil, false, dup
	}

	if err := s.repo.Insert(ctx, guest); err != nil {
		if errors.Is(err, domain.ErrDuplicateGuest) {
			// Lost a race against a concurrent submission of the same
			// identity; report it exactly like a pre-check hit.
			return nil, false, &domain.DuplicateGuestError{Message: MsgExactDuplicate}
		}
		return nil, false, fmt.Errorf("insert guest: %w", err)
	}

	synced := s.sheets.Sync(ctx, guest)
	s.notifyOrganizers(ctx, guest)
	return guest, synced, nil
}

// findDuplicate runs both match tiers in order; the first hit wins.
func (s *guestService) findDuplicate(ctx context.Context, guest *domain.Guest) (*domain.DuplicateGuestError, error) {
	existing, err := s.repo.FindExact(ctx, guest.NombreKey, guest.ApellidosKey)
	if err == nil {
		return &domain.DuplicateGuestError{Existing: existing, Message: MsgExactDuplicate}, nil
	}
	if !errors.Is(err, domain.ErrGuestNotFound) {
		return nil, fmt.Errorf("find exact match: %w", err)
	}

	// Partial tier only applies when the last names contain at least one
	// token after normalization.
	tokens := strings.Fields(guest.ApellidosKey)
	if len(tokens) == 0 {
		return nil, nil
	}
	existing, err = s.repo.FindPartialLastName(ctx, guest.NombreKey, tokens[0], guest.ApellidosKey)
	if err == nil {
		return &domain.DuplicateGuestError{
			Existing: existing,
			Partial:  true,
			Message:  fmt.Sprintf(msgPartialDuplicate, existing.FullName()),
		}, nil
	}
	if !errors.Is(err, domain.ErrGuestNotFound) {
		return nil, fmt.Errorf("find partial match: %w", err)
	}
	return nil, nil
}

// notifyOrganizers emails the organizers about a new RSVP. Best effort: a
// failure is logged and never affects the submission.
func (s *guestService) notifyOrganizers(ctx context.Context, guest *domain.Guest) {
	if s.mailer == nil || s.notifyAddress == "" {
		return
	}
	subject := fmt.Sprintf("Nueva confirmación: %s", guest.FullName())
	text := fmt.Sprintf(
		"Nueva confirmación recibida.\n\nNombre: %s\nAsistencia: %s\nAcompañado: %s\nAdultos: %d\nNiños: %d\nAutobús: %s\nAlergias: %s\nComentarios: %s\n",
		guest.FullName(), guest.Asistencia, guest.Acompanado,
		guest.Adultos, guest.Ninos, guest.Autobus, guest.Alergias, guest.Comentarios,
	)
	if err := s.mailer.Send(s.notifyAddress, subject, "", text); err != nil {
		s.logger.WarnContext(ctx, "organizer notification failed", "guest_id", guest.ID, "err", err)
	}
}

func (s *guestService) List(ctx context.Context) ([]*domain.Guest, error) {
	guests, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return guests, nil
}
