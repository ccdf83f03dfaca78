package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"weddingrsvp/internal/delivery/http/helpers"
	"weddingrsvp/internal/delivery/http/middleware"
	"weddingrsvp/internal/domain"
)

// User-facing Spanish messages for the RSVP endpoints.
const (
	MsgConfirmationReceived = "¡Confirmación recibida con éxito!"
	MsgErrCreateGuest       = "Error al procesar la confirmación. Por favor, inténtalo de nuevo."
	MsgErrListGuests        = "Error al obtener los invitados"
)

type GuestController struct {
	Logger  *slog.Logger
	Service domain.GuestService
}

func NewGuestController(logger *slog.Logger, svc domain.GuestService) *GuestController {
	return &GuestController{
		Logger:  logger,
		Service: svc,
	}
}

// flexInt decodes from either a JSON number or a numeric string, because the
// RSVP form submits counts as strings while API clients send numbers.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid integer %q", s)
	}
	*f = flexInt(v)
	return nil
}

// CreateGuestRequest is the request body for POST /api/guests, accepted as
// JSON or form-encoded data.
type CreateGuestRequest struct {
	Nombre      string  `json:"nombre"`
	Apellidos   string  `json:"apellidos"`
	Asistencia  string  `json:"asistencia"`
	Acompanado  string  `json:"acompanado"`
	Adultos     flexInt `json:"adultos"`
	Ninos       flexInt `json:"ninos"`
	Autobus     string  `json:"autobus"`
	Alergias    string  `json:"alergias"`
	Comentarios string  `json:"comentarios"`
}

// requiredFields are validated in this order so the reported field is stable.
var requiredFields = []string{"nombre", "apellidos", "asistencia", "acompanado"}

func (req *CreateGuestRequest) fieldValue(name string) string {
	switch name {
	case "nombre":
		return req.Nombre
	case "apellidos":
		return req.Apellidos
	case "asistencia":
		return req.Asistencia
	case "acompanado":
		return req.Acompanado
	}
	return ""
}

// Validate returns the first missing required field, or "" when valid.
func (req *CreateGuestRequest) Validate() string {
	for _, field := range requiredFields {
		if strings.TrimSpace(req.fieldValue(field)) == "" {
			return field
		}
	}
	return ""
}

// decodeCreateGuestRequest reads the submission from a JSON body or, for the
// plain HTML form, from form-encoded data.
func decodeCreateGuestRequest(r *http.Request) (*CreateGuestRequest, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		req := &CreateGuestRequest{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			return nil, fmt.Errorf("decode json body: %w", err)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form body: %w", err)
	}
	req := &CreateGuestRequest{
		Nombre:      r.PostFormValue("nombre"),
		Apellidos:   r.PostFormValue("apellidos"),
		Asistencia:  r.PostFormValue("asistencia"),
		Acompanado:  r.PostFormValue("acompanado"),
		Autobus:     r.PostFormValue("autobus"),
		Alergias:    r.PostFormValue("alergias"),
		Comentarios: r.PostFormValue("comentarios"),
	}
	req.Adultos = flexInt(formInt(r, "adultos"))
	req.Ninos = flexInt(formInt(r, "ninos"))
	return req, nil
}

func formInt(r *http.Request, field string) int {
	v, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue(field)))
	if err != nil {
		return 0
	}
	return v
}

// CreatedGuest is the stored-guest summary in the creation response.
type CreatedGuest struct {
	ID        int64     `json:"id"`
	Nombre    string    `json:"nombre"`
	Apellidos string    `json:"apellidos"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateGuestResponse is the success body for POST /api/guests (201).
type CreateGuestResponse struct {
	Success        bool         `json:"success"`
	Message        string       `json:"message"`
	Guest          CreatedGuest `json:"guest"`
	SyncedToSheets bool         `json:"synced_to_sheets"`
}

// CreateGuest godoc
// @Summary Submit an RSVP
// @Description Registers a guest's attendance confirmation. Rejects duplicate registrations of the same person, including registrations that use a subset or superset of a multi-part surname. The stored guest is forwarded to the tracking spreadsheet best-effort; synced_to_sheets reports the outcome without affecting the result.
// @Tags guests
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param body body controllers.CreateGuestRequest true "Guest submission"
// @Success 201 {object} controllers.CreateGuestResponse
// @Failure 400 {object} helpers.ErrorResponse "Missing required field"
// @Failure 409 {object} helpers.ErrorResponse "Duplicate registration"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/guests [post]
func (c *GuestController) CreateGuest(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestIDFromContext(r.Context())

	req, err := decodeCreateGuestRequest(r)
	if err != nil {
		c.Logger.WarnContext(r.Context(), "unreadable guest submission", "request_id", requestID, "err", err)
		helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if field := req.Validate(); field != "" {
		c.Logger.WarnContext(r.Context(), "validation failed", "request_id", requestID, "field", field)
		helpers.WriteJSONError(w, http.StatusBadRequest, "Missing required field: "+field)
		return
	}
	if req.Adultos < 0 || req.Ninos < 0 {
		c.Logger.WarnContext(r.Context(), "validation failed", "request_id", requestID, "field", "adultos/ninos")
		helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid value for adultos/ninos")
		return
	}

	autobus := req.Autobus
	if autobus == "" {
		autobus = "no"
	}
	guest := domain.NewGuest(
		strings.TrimSpace(req.Nombre),
		strings.TrimSpace(req.Apellidos),
		req.Asistencia,
		req.Acompanado,
		int(req.Adultos),
		int(req.Ninos),
		autobus,
		req.Alergias,
		req.Comentarios,
	)

	c.Logger.InfoContext(r.Context(), "guest submission",
		"request_id", requestID,
		"guest", guest.FullName(),
		"normalized", guest.NombreKey+" "+guest.ApellidosKey,
		"asistencia", guest.Asistencia,
	)

	created, synced, err := c.Service.Create(r.Context(), guest)
	if err != nil {
		var dup *domain.DuplicateGuestError
		if errors.As(err, &dup) {
			c.Logger.WarnContext(r.Context(), "duplicate detected",
				"request_id", requestID, "guest", guest.FullName(), "partial", dup.Partial)
			helpers.WriteJSONError(w, http.StatusConflict, dup.Message)
			return
		}
		c.Logger.ErrorContext(r.Context(), "create guest failed", "request_id", requestID, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, MsgErrCreateGuest)
		return
	}

	c.Logger.InfoContext(r.Context(), "guest registered",
		"request_id", requestID, "guest_id", created.ID, "synced_to_sheets", synced)

	helpers.WriteJSON(w, http.StatusCreated, CreateGuestResponse{
		Success: true,
		Message: MsgConfirmationReceived,
		Guest: CreatedGuest{
			ID:        created.ID,
			Nombre:    created.Nombre,
			Apellidos: created.Apellidos,
			CreatedAt: created.CreatedAt,
		},
		SyncedToSheets: synced,
	})
}

// ListGuestsResponse is the success body for GET /api/guests (200).
type ListGuestsResponse struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Guests  []*domain.Guest `json:"guests"`
}

// ListGuests godoc
// @Summary List all registered guests
// @Description Returns every stored guest, most recent first. Intended for the organizers.
// @Tags guests
// @Produce json
// @Success 200 {object} controllers.ListGuestsResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/guests [get]
func (c *GuestController) ListGuests(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestIDFromContext(r.Context())

	guests, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "list guests failed", "request_id", requestID, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, MsgErrListGuests)
		return
	}

	c.Logger.InfoContext(r.Context(), "guests listed", "request_id", requestID, "count", len(guests))
	helpers.WriteJSON(w, http.StatusOK, ListGuestsResponse{
		Success: true,
		Count:   len(guests),
		Guests:  guests,
	})
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (c *GuestController) Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
