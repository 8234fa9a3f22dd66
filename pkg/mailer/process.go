package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mailtpl "github.com/oksasatya/go-ddd-task-manager/pkg/mailer/templates"
)

// ErrPermanent marks a job that will never succeed and must not be requeued.
var ErrPermanent = errors.New("permanent email job failure")

// Process decodes one queued job, renders its template if any, and sends it.
// Errors wrapping ErrPermanent should be dropped; others may be retried.
func Process(ctx context.Context, s Sender, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrPermanent, err)
	}
	if job.To == "" {
		return fmt.Errorf("%w: missing recipient", ErrPermanent)
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		var err error
		subject, text, html, err = mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: render %s: %v", ErrPermanent, job.Template, err)
		}
	}
	if err := s.Send(ctx, job.To, subject, text, html); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}
