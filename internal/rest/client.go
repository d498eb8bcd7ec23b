// Package rest implements the collaborator interfaces the engine consumes:
// history pages, the conversation list, and notification reads against the
// SkillSwap REST API.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/mohammadHusnain/skillswap-realtime/internal/auth"
	"github.com/mohammadHusnain/skillswap-realtime/internal/models"
)

type Config struct {
	BaseURL         string
	Timeout         time.Duration
	RetryMaxElapsed time.Duration
}

type Client struct {
	base    string
	http    *http.Client
	tokens  auth.TokenProvider
	breaker *gobreaker.CircuitBreaker
	conf    Config
	log     *zap.SugaredLogger
}

func NewClient(conf Config, tokens auth.TokenProvider, log *zap.SugaredLogger) *Client {
	tr := &http.Transport{
		DialContext:     (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		MaxIdleConns:    10,
		IdleConnTimeout: 90 * time.Second,
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "skillswap-api",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
	})
	return &Client{
		base:    strings.TrimRight(conf.BaseURL, "/"),
		http:    &http.Client{Transport: tr, Timeout: conf.Timeout},
		tokens:  tokens,
		breaker: cb,
		conf:    conf,
		log:     log,
	}
}

// Messages returns the initial ordered message page for a conversation.
func (c *Client) Messages(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	var out struct {
		Messages []models.Message `json:"messages"`
	}
	path := "/api/messages/conversations/" + url.PathEscape(conversationID) + "/messages/?limit=" + strconv.Itoa(limit)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// Conversations returns the user's conversation summaries.
func (c *Client) Conversations(ctx context.Context) ([]models.Conversation, error) {
	var out struct {
		Conversations []models.Conversation `json:"conversations"`
	}
	if err := c.getJSON(ctx, "/api/messages/conversations/", &out); err != nil {
		return nil, err
	}
	return out.Conversations, nil
}

// Notifications returns stored notifications, optionally unread only.
func (c *Client) Notifications(ctx context.Context, unreadOnly bool, limit int) ([]models.Notification, error) {
	var out struct {
		Notifications []models.Notification `json:"notifications"`
	}
	path := fmt.Sprintf("/api/notifications/?unread_only=%t&limit=%d", unreadOnly, limit)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Notifications, nil
}

// MarkNotificationRead flips one notification to read server-side.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.doRetry(ctx, http.MethodPost, "/api/notifications/"+url.PathEscape(id)+"/read/", nil)
}

// MarkAllNotificationsRead flips every stored notification to read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.doRetry(ctx, http.MethodPost, "/api/notifications/mark-all-read/", nil)
}

// DeleteNotification removes one notification server-side.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.doRetry(ctx, http.MethodDelete, "/api/notifications/"+url.PathEscape(id)+"/", nil)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.doRetry(ctx, http.MethodGet, path, out)
}

// doRetry runs the request with exponential backoff behind the circuit
// breaker. 5xx and transport errors retry; 4xx and an open breaker fail
// immediately.
func (c *Client) doRetry(ctx context.Context, method, path string, out any) error {
	op := func() error {
		_, err := c.breaker.Execute(func() (any, error) {
			return nil, c.do(ctx, method, path, out)
		})
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return backoff.Permanent(err)
		}
		return err
	}
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.conf.RetryMaxElapsed
	return backoff.Retry(op, backoff.WithContext(b, ctx))
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	tok, err := c.tokens.Token()
	if err != nil {
		return backoff.Permanent(err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, nil)
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("api %s %s: %s", method, path, resp.Status)
	}
	if resp.StatusCode >= 400 {
		return backoff.Permanent(fmt.Errorf("api %s %s: %s", method, path, resp.Status))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
