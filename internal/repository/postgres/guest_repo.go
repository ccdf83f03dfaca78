package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"weddingrsvp/internal/domain"
)

const createGuestsTable = `
	CREATE TABLE IF NOT EXISTS guests (
		id SERIAL PRIMARY KEY,
		nombre VARCHAR(255) NOT NULL,
		apellidos VARCHAR(255) NOT NULL,
		nombre_normalized VARCHAR(255) NOT NULL,
		apellidos_normalized VARCHAR(255) NOT NULL,
		asistencia VARCHAR(50) NOT NULL,
		acompanado VARCHAR(10) NOT NULL,
		adultos INTEGER DEFAULT 0,
		ninos INTEGER DEFAULT 0,
		autobus VARCHAR(50),
		alergias TEXT,
		comentarios TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(nombre_normalized, apellidos_normalized)
	)
`

const guestColumns = `id, nombre, apellidos, nombre_normalized, apellidos_normalized,
		asistencia, acompanado, adultos, ninos, autobus, alergias, comentarios,
		created_at, updated_at`

type guestRepository struct {
	DB *sql.DB
}

// NewGuestRepository creates a GuestRepository backed by PostgreSQL.
func NewGuestRepository(db *sql.DB) domain.GuestRepository {
	return &guestRepository{DB: db}
}

func (r *guestRepository) InitSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, createGuestsTable); err != nil {
		return fmt.Errorf("create guests table: %w", err)
	}
	return nil
}

func (r *guestRepository) FindExact(ctx context.Context, nombreKey, apellidosKey string) (*domain.Guest, error) {
	query := `
		SELECT ` + guestColumns + `
		FROM guests
		WHERE nombre_normalized = $1 AND apellidos_normalized = $2
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, nombreKey, apellidosKey))
}

// FindPartialLastName implements the multi-part surname rule: a stored row
// matches when its last-names key equals the incoming first surname token, or
// when one of the two keys is a space-bounded prefix of the other ("garcia"
// matches "garcia lopez" in either direction, while "perez test" and
// "perez garcia" stay distinct).
func (r *guestRepository) FindPartialLastName(ctx context.Context, nombreKey, lastFirstToken, fullApellidosKey string) (*domain.Guest, error) {
	query := `
		SELECT ` + guestColumns + `
		FROM guests
		WHERE nombre_normalized = $1
		AND (apellidos_normalized = $2
		     OR apellidos_normalized LIKE $3
		     OR $4 LIKE apellidos_normalized || ' %')
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, nombreKey, lastFirstToken, fullApellidosKey+" %", fullApellidosKey))
}

func (r *guestRepository) Insert(ctx context.Context, guest *domain.Guest) error {
	query := `
		INSERT INTO guests (nombre, apellidos, nombre_normalized, apellidos_normalized,
			asistencia, acompanado, adultos, ninos, autobus, alergias, comentarios)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		guest.Nombre, guest.Apellidos, guest.NombreKey, guest.ApellidosKey,
		guest.Asistencia, guest.Acompanado, guest.Adultos, guest.Ninos,
		guest.Autobus, guest.Alergias, guest.Comentarios,
	).Scan(&guest.ID, &guest.CreatedAt, &guest.UpdatedAt)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrDuplicateGuest
		}
		return err
	}
	return nil
}

func (r *guestRepository) ListAll(ctx context.Context) ([]*domain.Guest, error) {
	query := `
		SELECT ` + guestColumns + `
		FROM guests
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guests []*domain.Guest
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if guests == nil {
		guests = []*domain.Guest{}
	}
	return guests, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanGuest(s scanner) (*domain.Guest, error) {
	g := &domain.Guest{}
	var autobus, alergias, comentarios sql.NullString
	err := s.Scan(
		&g.ID, &g.Nombre, &g.Apellidos, &g.NombreKey, &g.ApellidosKey,
		&g.Asistencia, &g.Acompanado, &g.Adultos, &g.Ninos,
		&autobus, &alergias, &comentarios,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	g.Autobus = autobus.String
	g.Alergias = alergias.String
	g.Comentarios = comentarios.String
	return g, nil
}

func (r *guestRepository) scanOne(row *sql.Row) (*domain.Guest, error) {
	g, err := scanGuest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGuestNotFound
		}
		return nil, err
	}
	return g, nil
}
