package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/studyprep/content-service/internal/models"
)

// Resource kinds the dashboard manages on the remote content API.
const (
	KindQuiz      = "quizzes"
	KindPastPaper = "past-papers"
)

// ProxyResources is the closed set of resource collections the pass-through
// endpoints forward unchanged.
var ProxyResources = []string{
	"courses", "subjects", "topics", "exam-sets", "past-papers", "quizzes", "questions",
}

// SaveResponse is the persistence envelope returned by the remote API.
type SaveResponse struct {
	Success bool              `json:"success"`
	Data    *SaveResponseData `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
}

type SaveResponseData struct {
	QuestionsDataURL string `json:"questions_data_url"`
	UpdatedAt        string `json:"updated_at,omitempty"`
}

// ProxyResult carries a forwarded response back to the caller verbatim.
type ProxyResult struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Client talks to the remote content API. Calls are never retried: a failed
// save or load is terminal for that user action and is repeated only by the
// user repeating the dashboard action.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetQuestions fetches the questions document for a quiz or past paper. The
// body shape varies by source and age of the record; it is returned as parsed
// JSON for the normalizer to reconcile.
func (c *Client) GetQuestions(ctx context.Context, kind, id string) (any, error) {
	endpoint := fmt.Sprintf("%s/%s/%s/questions", c.baseURL, kind, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions for %s %s: %w", kind, id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote API returned status %d for %s %s", resp.StatusCode, kind, id)
	}

	var doc any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode questions document: %w", err)
	}
	return doc, nil
}

// SaveQuestions replaces the questions document for a quiz or past paper
// wholesale with the given section array. There is no partial update.
func (c *Client) SaveQuestions(ctx context.Context, kind, id string, sections []models.Section) (*SaveResponse, error) {
	payload, err := json.Marshal(sections)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sections: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s/questions", c.baseURL, kind, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to save questions for %s %s: %w", kind, id, err)
	}
	defer resp.Body.Close()

	var saveResp SaveResponse
	if err := json.NewDecoder(resp.Body).Decode(&saveResp); err != nil {
		return nil, fmt.Errorf("failed to decode save response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !saveResp.Success {
		msg := saveResp.Error
		if msg == "" {
			msg = fmt.Sprintf("remote API returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("save rejected for %s %s: %s", kind, id, msg)
	}

	return &saveResp, nil
}

// Proxy forwards one dashboard CRUD request to the remote API unchanged and
// relays the response verbatim.
func (c *Client) Proxy(ctx context.Context, method, path string, query url.Values, body io.Reader) (*ProxyResult, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote API request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read remote API response: %w", err)
	}

	return &ProxyResult{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
