// Package notify delivers the run summary to a recipient once the report
// artifacts exist. Delivery is best effort: a failure is logged and reported
// to the caller as false, never as a fatal error.
package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/user-analytics/pkg/api"
	"github.com/Sternrassler/user-analytics/pkg/logging"
)

// Report carries everything the notification needs about a finished run.
type Report struct {
	Recipient    string
	ArtifactPath string
	ReportName   string
	UserCount    int
	AvgChars     float64
}

// Notifier sends a run summary to a recipient.
type Notifier interface {
	Send(ctx context.Context, r Report) bool
}

// emailPayload is the wire shape of the send-email endpoint.
type emailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailNotifier posts the summary to the API's send-email endpoint.
type EmailNotifier struct {
	client *api.Client
	logger zerolog.Logger
}

// NewEmailNotifier creates an EmailNotifier on top of an API client.
func NewEmailNotifier(client *api.Client) *EmailNotifier {
	return &EmailNotifier{
		client: client,
		logger: logging.NewLogger("notifier"),
	}
}

// Send delivers the report summary. Returns false on any failure.
func (n *EmailNotifier) Send(ctx context.Context, r Report) bool {
	payload := emailPayload{
		To:      r.Recipient,
		Subject: fmt.Sprintf("Post Analytics Report - %s", r.ReportName),
		Body: fmt.Sprintf(
			"Report generated at: %s\nUsers analyzed: %d\nAverage characters per post: %.2f",
			r.ArtifactPath, r.UserCount, r.AvgChars,
		),
	}

	n.logger.Info().
		Str("recipient", r.Recipient).
		Str("report", r.ReportName).
		Msg("Sending report notification")

	if _, err := n.client.Post(ctx, "send-email", payload); err != nil {
		n.logger.Error().
			Err(err).
			Str("recipient", r.Recipient).
			Msg("Notification delivery failed")
		return false
	}

	n.logger.Info().
		Str("recipient", r.Recipient).
		Str("artifact", r.ArtifactPath).
		Msg("Notification sent")

	return true
}
