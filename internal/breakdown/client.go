/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package breakdown wraps the remote phonetic-breakdown service. A client
// retains at most one result; overlapping requests are allowed but only the
// most recently issued one may publish its response. Older in-flight responses
// are discarded by generation, so the retained result is always last-write-wins.
package breakdown

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	applog "phonemepal/internal/log"
)

// Result is the service response: the phoneme sequence and a prose
// explanation. It is replaced wholesale on each successful request.
type Result struct {
	Phonemes    []string `json:"phonemes"`
	Explanation string   `json:"explanation"`
}

var (
	// ErrEmptyWord rejects requests whose word trims to empty.
	ErrEmptyWord = errors.New("breakdown: empty word")
	// ErrUnavailable reports a failed request (network, timeout, bad
	// response). The retained result is left unset; the user may retry.
	ErrUnavailable = errors.New("breakdown: service unavailable")
	// ErrSuperseded reports that a newer request was issued while this one
	// was in flight; its response was discarded.
	ErrSuperseded = errors.New("breakdown: superseded by a newer request")
)

// Client is a thin request/response wrapper with a single-flight retention
// policy. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger

	mu     sync.Mutex
	gen    uint64
	result *Result
}

// NewClient creates a breakdown client. baseURL may carry a trailing slash.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     applog.WithComponent("breakdown"),
	}
}

// Request asks the service to break down word. It blocks until the response
// arrives; callers wanting the event-loop style run it in a goroutine and read
// Result afterwards. Issuing a request clears the retained result; a response
// arriving after a newer request was issued returns ErrSuperseded and leaves
// the newer state alone.
func (c *Client) Request(ctx context.Context, word string) (*Result, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, ErrEmptyWord
	}

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.result = nil
	c.mu.Unlock()

	res, err := c.post(ctx, word)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil, ErrSuperseded
	}
	if err != nil {
		c.log.Warn("breakdown failed", slog.String("word", word), slog.Any("err", err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	c.result = res
	return res, nil
}

// Result returns the retained result, or nil when none is set.
func (c *Client) Result() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Reset clears the retained result and invalidates every in-flight request.
// Wired to sequence changes so stale breakdowns never outlive a switch.
func (c *Client) Reset() {
	c.mu.Lock()
	c.gen++
	c.result = nil
	c.mu.Unlock()
}

func (c *Client) post(ctx context.Context, word string) (*Result, error) {
	body, err := json.Marshal(map[string]string{"word": word})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/breakdown", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("server: %s", resp.Status)
	}

	var res Result
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&res); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(res.Phonemes) == 0 {
		return nil, errors.New("response carries no phonemes")
	}
	return &res, nil
}
