package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for guest operations.
var (
	ErrGuestNotFound = errors.New("guest not found")
	// ErrDuplicateGuest is returned by the repository when an insert hits the
	// unique constraint on the normalized name pair. The pre-insert duplicate
	// check makes this rare, but two concurrent submissions of the same
	// identity can still race past it; the constraint is the final arbiter.
	ErrDuplicateGuest = errors.New("guest already registered")
)

// Guest represents one RSVP submission: a confirmed or declined attendee
// together with their party composition.
// swagger:model Guest
type Guest struct {
	ID           int64     `json:"id"`
	Nombre       string    `json:"nombre"`
	Apellidos    string    `json:"apellidos"`
	NombreKey    string    `json:"nombre_normalized"`
	ApellidosKey string    `json:"apellidos_normalized"`
	Asistencia   string    `json:"asistencia"`
	Acompanado   string    `json:"acompanado"`
	Adultos      int       `json:"adultos"`
	Ninos        int       `json:"ninos"`
	Autobus      string    `json:"autobus"`
	Alergias     string    `json:"alergias"`
	Comentarios  string    `json:"comentarios"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName returns the display name as submitted ("Nombre Apellidos").
func (g *Guest) FullName() string {
	return g.Nombre + " " + g.Apellidos
}

// NewGuest builds a Guest from trimmed display names, deriving the normalized
// comparison keys. ID and timestamps are set by the repository on insert.
func NewGuest(nombre, apellidos, asistencia, acompanado string, adultos, ninos int, autobus, alergias, comentarios string) *Guest {
	return &Guest{
		Nombre:       nombre,
		Apellidos:    apellidos,
		NombreKey:    NormalizeName(nombre),
		ApellidosKey: NormalizeName(apellidos),
		Asistencia:   asistencia,
		Acompanado:   acompanado,
		Adultos:      adultos,
		Ninos:        ninos,
		Autobus:      autobus,
		Alergias:     alergias,
		Comentarios:  comentarios,
	}
}

// DuplicateGuestError is returned by the service when an incoming identity
// matches an existing guest, either exactly or through the partial last-name
// rule. Message carries the user-facing Spanish rejection text.
type DuplicateGuestError struct {
	Existing *Guest // nil when the duplicate was only caught by the storage constraint
	Partial  bool
	Message  string
}

func (e *DuplicateGuestError) Error() string {
	if e.Existing != nil {
		return fmt.Sprintf("duplicate guest (partial=%v): %s", e.Partial, e.Existing.FullName())
	}
	return "duplicate guest"
}

func (e *DuplicateGuestError) Is(target error) bool {
	return target == ErrDuplicateGuest
}

// GuestRepository defines storage operations for guests.
type GuestRepository interface {
	// InitSchema idempotently ensures the guests table and its unique
	// constraint on (nombre_normalized, apellidos_normalized) exist.
	InitSchema(ctx context.Context) error
	// FindExact returns the guest whose normalized keys equal both inputs,
	// or ErrGuestNotFound.
	FindExact(ctx context.Context, nombreKey, apellidosKey string) (*Guest, error)
	// FindPartialLastName returns a guest with the same normalized first name
	// whose stored last-names key equals lastFirstToken, starts with
	// lastFirstToken plus a space, or is a space-bounded prefix of
	// fullApellidosKey. Returns ErrGuestNotFound when no such row exists.
	FindPartialLastName(ctx context.Context, nombreKey, lastFirstToken, fullApellidosKey string) (*Guest, error)
	// Insert persists a new guest, assigning ID and timestamps. Returns
	// ErrDuplicateGuest on a unique-constraint violation.
	Insert(ctx context.Context, guest *Guest) error
	// ListAll returns all guests ordered by created_at descending.
	ListAll(ctx context.Context) ([]*Guest, error)
}

// SheetSyncer replicates a stored guest to the external tracking spreadsheet.
// Best effort: implementations report failure through the boolean only and
// never through an error.
type SheetSyncer interface {
	Sync(ctx context.Context, guest *Guest) bool
}

// Mailer defines the contract for sending notification emails.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// GuestService defines the RSVP intake operations.
type GuestService interface {
	// Create runs duplicate detection, persists the guest, and forwards it to
	// the spreadsheet. synced reports the forwarder outcome; it never affects
	// the error. A detected duplicate is returned as *DuplicateGuestError.
	Create(ctx context.Context, guest *Guest) (created *Guest, synced bool, err error)
	List(ctx context.Context) ([]*Guest, error)
}
