// Package sheets forwards stored guests to the wedding tracking spreadsheet
// through a Google Apps Script webhook.
package sheets

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weddingrsvp/internal/domain"
)

// DefaultTimeout bounds the webhook call so a slow Apps Script deployment
// cannot hold the RSVP response hostage.
const DefaultTimeout = 10 * time.Second

type client struct {
	httpClient *http.Client
	scriptURL  string
	logger     *slog.Logger
}

// NewClient returns a SheetSyncer posting to the given Apps Script URL.
// An empty scriptURL disables syncing: every Sync reports false.
// httpClient may be nil; a client with DefaultTimeout is used then.
func NewClient(httpClient *http.Client, scriptURL string, logger *slog.Logger) domain.SheetSyncer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &client{httpClient: httpClient, scriptURL: scriptURL, logger: logger}
}

// Sync posts the guest as form-encoded data, the same shape the frontend used
// to send directly. It never returns an error: the guest is already durably
// stored, so any failure here is logged and reported as false.
func (c *client) Sync(ctx context.Context, guest *domain.Guest) bool {
	if c.scriptURL == "" {
		c.logger.WarnContext(ctx, "apps script url not configured, skipping sheets sync")
		return false
	}

	params := url.Values{
		"nombre":      {guest.FullName()},
		"asistencia":  {guest.Asistencia},
		"acompanado":  {guest.Acompanado},
		"adultos":     {strconv.Itoa(guest.Adultos)},
		"ninos":       {strconv.Itoa(guest.Ninos)},
		"autobus":     {guest.Autobus},
		"alergias":    {guest.Alergias},
		"comentarios": {guest.Comentarios},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.scriptURL, strings.NewReader(params.Encode()))
	if err != nil {
		c.logger.ErrorContext(ctx, "sheets sync request build failed", "err", err)
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "sheets sync failed", "guest", guest.FullName(), "err", err)
		return false
	}
	defer resp.Body.Close()

	// Drain a little of the body for the log line; Apps Script replies with
	// a short status payload.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
	if resp.StatusCode != http.StatusOK {
		c.logger.ErrorContext(ctx, "sheets sync rejected",
			"guest", guest.FullName(), "status", resp.StatusCode, "body", string(body))
		return false
	}
	c.logger.InfoContext(ctx, "synced to sheets", "guest", guest.FullName(), "status", resp.StatusCode)
	return true
}
