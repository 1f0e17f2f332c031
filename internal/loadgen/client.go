package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/skillswap/internal/domain/action"
	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/types"
)

// Page sizes stay within the service's maximum page size.
const (
	rosterPageSize = 100
	noticePageSize = 100
)

type outcome int

const (
	outcomeAccepted outcome = iota
	outcomeDuplicate
	outcomeBackpressure
	outcomeFailed
)

// client wraps http.Client with the service routes the generator needs.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{http: &http.Client{Timeout: timeout}, baseURL: baseURL}
}

func (c *client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var r io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

func (c *client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// health checks that the service is up and accepting actions.
func (c *client) health(ctx context.Context) error {
	if err := c.getJSON(ctx, "/readyz", nil); err != nil {
		return fmt.Errorf("%w: %v", ErrUnhealthy, err)
	}
	return nil
}

// roster pages through /users until every user has been read.
func (c *client) roster(ctx context.Context) ([]model.UserProfile, error) {
	var users []model.UserProfile
	for {
		var page types.SearchResult
		path := "/users?limit=" + strconv.Itoa(rosterPageSize) + "&offset=" + strconv.Itoa(len(users))
		if err := c.getJSON(ctx, path, &page); err != nil {
			return nil, err
		}
		users = append(users, page.Users...)
		if len(page.Users) == 0 || len(users) >= page.TotalCount {
			return users, nil
		}
	}
}

func (c *client) submit(ctx context.Context, p payload) (outcome, error) {
	resp, err := c.do(ctx, http.MethodPost, "/actions", p)
	if err != nil {
		return outcomeFailed, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusAccepted:
		return outcomeAccepted, nil
	case http.StatusOK:
		return outcomeDuplicate, nil
	case http.StatusTooManyRequests:
		return outcomeBackpressure, nil
	default:
		return outcomeFailed, fmt.Errorf("POST /actions %s: status %d", p.ID, resp.StatusCode)
	}
}

// notices pages through every live notice of userID, newest first. Notices
// delivered while paging shift later pages, so a notice may be read twice;
// callers match by action ID.
func (c *client) notices(ctx context.Context, userID string) ([]action.Notice, error) {
	var all []action.Notice
	for {
		var body struct {
			Notices []action.Notice `json:"notices"`
		}
		path := "/notices?user_id=" + url.QueryEscape(userID) +
			"&limit=" + strconv.Itoa(noticePageSize) + "&offset=" + strconv.Itoa(len(all))
		if err := c.getJSON(ctx, path, &body); err != nil {
			return nil, err
		}
		all = append(all, body.Notices...)
		if len(body.Notices) < noticePageSize {
			return all, nil
		}
	}
}
