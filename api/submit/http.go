package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"PickEm/api/bracket"
)

const SubmitPath = "/api/v1/submit-picks"

// HTTPTransport posts submissions to a running PickEm API.
type HTTPTransport struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func (t *HTTPTransport) client() *http.Client {
	if t.Client != nil {
		return t.Client
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (t *HTTPTransport) Submit(ctx context.Context, sub bracket.Submission) (Response, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return Response{}, fmt.Errorf("encode submission: %w", err)
	}

	url := strings.TrimRight(t.BaseURL, "/") + SubmitPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.Token != "" {
		req.Header.Set("Authorization", "Bearer "+t.Token)
	}

	res, err := t.client().Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("submit picks: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return Response{}, fmt.Errorf("submit picks: status %d: %w", res.StatusCode, err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		out.Success = false
	}
	return out, nil
}
