package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"gesturegame/shared"
)

// Type aliases for shared wire types
type Gesture = shared.Gesture
type GestureReply = shared.GestureReply

// ErrStatus wraps any non-200 reply from the recognizer.
var ErrStatus = errors.New("unexpected status")

// GestureClient polls the recognizer's HTTP endpoint.
type GestureClient struct {
	BaseURL string
	HTTP    *http.Client
	log     *zap.Logger
}

func NewGestureClient(baseURL string, log *zap.Logger) *GestureClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &GestureClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		// No timeout: a stuck request only delays its own tick.
		HTTP: &http.Client{},
		log:  log,
	}
}

// Fetch asks for the latest gesture. The label is returned as sent; it is up
// to the game to decide what an unknown label means.
func (c *GestureClient) Fetch(ctx context.Context) (Gesture, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+shared.PathGetGesture, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("get gesture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get gesture: %w %d", ErrStatus, resp.StatusCode)
	}

	var rep GestureReply
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		return "", fmt.Errorf("decode gesture: %w", err)
	}
	if rep.Gesture == nil {
		return "", fmt.Errorf("decode gesture: missing gesture field")
	}
	g := Gesture(*rep.Gesture)
	c.log.Debug("gesture polled", zap.String("gesture", string(g)))
	return g, nil
}
