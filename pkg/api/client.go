// Package api is the HTTP client for the MES server endpoints the hub
// consumes: user preferences, bulk delete and server-side export. The
// hub works fully offline; every call here is best-effort and callers
// translate failures into local fallbacks or toasts, never hard errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// csrfHeader carries the write token the server requires on mutating
// requests, mirroring the cookie-sourced token of the web client.
const csrfHeader = "X-CSRFToken"

// Client talks to one MES server.
type Client struct {
	baseURL   string
	csrfToken string
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (used by tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithCSRFToken sets the token sent on mutating requests.
func WithCSRFToken(token string) Option {
	return func(c *Client) { c.csrfToken = token }
}

// New creates a client for the given base URL, e.g.
// "https://mes.example.com". An empty base URL yields a client whose
// calls all report "no data"; the hub then runs local-only.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available reports whether a server is configured at all.
func (c *Client) Available() bool { return c.baseURL != "" }

// columnsResponse is the wire shape of the table-columns preference.
type columnsResponse struct {
	Columns []string `json:"columns"`
}

// FetchColumns retrieves the saved visible-column keys for a view.
// Any non-2xx status, transport error or empty payload reads as "no
// remote preference" (found=false), never as a failure the UI must show.
func (c *Client) FetchColumns(ctx context.Context, view string) ([]string, bool, error) {
	if !c.Available() {
		return nil, false, nil
	}

	u := fmt.Sprintf("%s/api/user-preferences/table-columns/?view=%s", c.baseURL, url.QueryEscape(view))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false, nil
	}

	var payload columnsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false, nil
	}
	return payload.Columns, len(payload.Columns) > 0, nil
}

// SaveColumns writes the visible-column keys for a view. Non-2xx maps
// to an error so the caller can fall back to its "saved locally" path;
// there are no retries.
func (c *Client) SaveColumns(ctx context.Context, view string, columns []string) error {
	if !c.Available() {
		return fmt.Errorf("no server configured")
	}

	body, err := json.Marshal(map[string]any{"view": view, "columns": columns})
	if err != nil {
		return err
	}

	u := c.baseURL + "/api/user-preferences/table-columns/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.csrfToken != "" {
		req.Header.Set(csrfHeader, c.csrfToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("preference save rejected: %s", resp.Status)
	}
	return nil
}

// BulkDelete asks the server to delete the given records from a table.
// The caller is responsible for confirmation and for reloading data on
// success; nothing is removed optimistically on the client.
func (c *Client) BulkDelete(ctx context.Context, tableName string, ids []string) error {
	if !c.Available() {
		return fmt.Errorf("no server configured")
	}
	if len(ids) == 0 {
		return fmt.Errorf("no records selected")
	}

	body, err := json.Marshal(map[string]any{"table": tableName, "ids": ids})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/bulk-delete/", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.csrfToken != "" {
		req.Header.Set(csrfHeader, c.csrfToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("bulk delete failed: %s", resp.Status)
	}
	return nil
}

// ExportURL builds the server-side export URL for a table. ids may be
// empty for a full export.
func (c *Client) ExportURL(tableName, format string, ids []string) string {
	if !c.Available() {
		return ""
	}
	v := url.Values{}
	v.Set("table", tableName)
	v.Set("format", format)
	if len(ids) > 0 {
		v.Set("ids", strings.Join(ids, ","))
	}
	return c.baseURL + "/api/export/?" + v.Encode()
}

// OpenInBrowser opens a URL in the system browser, fire-and-open: no
// response contract is enforced.
func OpenInBrowser(u string) error {
	if u == "" {
		return fmt.Errorf("empty URL")
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", u).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", u).Start()
	default:
		if _, err := exec.LookPath("xdg-open"); err != nil {
			return fmt.Errorf("no browser opener available")
		}
		return exec.Command("xdg-open", u).Start()
	}
}
