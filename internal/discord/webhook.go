package discord

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"tftcomps/internal/report"
	"tftcomps/internal/results"

	json "github.com/goccy/go-json"
)

const (
	// Embed colors
	colorGold = 15844367 // 0xF1C40F - winner on top
	colorGrey = 9807270  // 0x95A5A6 - empty match

	defaultWebhookTimeout = 10 * time.Second

	// Max retries for rate limiting
	maxRetries = 3

	// Discord rejects embeds with more than 25 fields
	maxEmbedFields = 25
)

// WebhookPayload represents a Discord webhook message
type WebhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Embed represents a Discord embed
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

// EmbedField represents a field in a Discord embed
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// EmbedFooter represents the footer of a Discord embed
type EmbedFooter struct {
	Text string `json:"text"`
}

// NewMatchReportPayload summarises a finished match, one field per participant in placement order
func NewMatchReportPayload(player, matchID string, o *results.Ordered) WebhookPayload {
	embed := Embed{
		Title:       "📊 Latest match for " + player,
		Description: "Match `" + matchID + "`",
		Color:       colorGold,
		Footer: &EmbedFooter{
			Text: strconv.Itoa(o.Len()) + " participants",
		},
	}
	if o.Len() == 0 {
		embed.Color = colorGrey
	}

	for name, rec := range o.All() {
		if len(embed.Fields) == maxEmbedFields {
			break
		}
		embed.Fields = append(embed.Fields, EmbedField{
			Name:   fmt.Sprintf("#%d %s", rec.Placement, name),
			Value:  fmt.Sprintf("Stage %s, alive %s", report.FormatStage(rec.LastRound), report.FormatDuration(rec.TimeEliminated)),
			Inline: true,
		})
	}

	return WebhookPayload{Embeds: []Embed{embed}}
}

// WebhookClient sends notifications to Discord webhooks
type WebhookClient struct {
	webhookURL string
	httpClient *http.Client
	retryWait  time.Duration
}

// NewWebhookClient creates a new WebhookClient
func NewWebhookClient(webhookURL string) *WebhookClient {
	return &WebhookClient{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: defaultWebhookTimeout,
		},
		retryWait: time.Second,
	}
}

// SendMatchReport posts the summary of a finished match
func (c *WebhookClient) SendMatchReport(ctx context.Context, player, matchID string, o *results.Ordered) error {
	payload := NewMatchReportPayload(player, matchID, o)
	return c.sendPayload(ctx, payload)
}

// sendPayload sends a webhook payload with retry on rate limiting
func (c *WebhookClient) sendPayload(ctx context.Context, payload WebhookPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		resp.Body.Close()

		// Discord returns 204 No Content
		if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK {
			return nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			waitDuration := c.retryWait
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				if seconds, err := strconv.ParseFloat(retryAfter, 64); err == nil {
					waitDuration = time.Duration(seconds * float64(time.Second))
				}
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(waitDuration):
				continue
			}
		}

		return fmt.Errorf("webhook request failed with status %d", resp.StatusCode)
	}

	return fmt.Errorf("webhook request failed after %d retries", maxRetries)
}
