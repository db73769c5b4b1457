package contact

import (
	"context"
	"sync"

	"geotrack-backend/internal/common/config"
	"geotrack-backend/internal/common/logger"
	"geotrack-backend/internal/common/mail"
	"geotrack-backend/internal/common/metrics"
)

// Dispatcher sends the internal notification and the client
// acknowledgment for a persisted submission. Both channels run
// concurrently and neither can fail the request: the submission is
// already durable by the time Dispatch is called.
type Dispatcher struct {
	mailer     mail.Mailer
	logger     logger.Logger
	from       string
	internalTo string
}

func NewDispatcher(mailer mail.Mailer, cfg config.MailConfig, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		mailer:     mailer,
		logger:     log,
		from:       cfg.From,
		internalTo: cfg.To,
	}
}

type channelSend struct {
	channel   Channel
	recipient string
	message   *mail.Message
}

// Dispatch attempts both channels and returns one outcome per attempted
// channel. An unconfigured operations mailbox skips the internal channel;
// a syntactically invalid submitter email skips the client channel. Both
// skips are silent: the first is a deployment concern, the second cannot
// happen when the strict intake rule set is active.
func (d *Dispatcher) Dispatch(ctx context.Context, rec *SubmissionRecord, labels Labels) []NotificationOutcome {
	sends := make([]channelSend, 0, 2)

	if d.internalTo != "" {
		n := ComposeInternal(rec, labels)
		sends = append(sends, channelSend{
			channel:   ChannelInternal,
			recipient: d.internalTo,
			message: &mail.Message{
				From:    d.from,
				To:      d.internalTo,
				ReplyTo: rec.Correo,
				Subject: n.Subject,
				Text:    n.Text,
				HTML:    n.HTML,
			},
		})
	} else {
		d.logger.Debug("Internal notification skipped: no operations mailbox configured", nil)
	}

	if mail.IsValidEmail(rec.Correo) {
		n := ComposeClient(rec, labels)
		sends = append(sends, channelSend{
			channel:   ChannelClient,
			recipient: rec.Correo,
			message: &mail.Message{
				From:    d.from,
				To:      rec.Correo,
				Subject: n.Subject,
				Text:    n.Text,
				HTML:    n.HTML,
			},
		})
	} else {
		d.logger.Debug("Client acknowledgment skipped: submitter email not valid", map[string]interface{}{
			"correo": rec.Correo,
		})
	}

	outcomes := make([]NotificationOutcome, len(sends))

	var wg sync.WaitGroup
	for i, send := range sends {
		wg.Add(1)
		go func(i int, send channelSend) {
			defer wg.Done()

			outcome := NotificationOutcome{
				Channel:   send.channel,
				Recipient: send.recipient,
			}

			if err := d.mailer.Send(ctx, send.message); err != nil {
				outcome.Error = err.Error()
				metrics.NotificationsSent.WithLabelValues(string(send.channel), "failed").Inc()
				d.logger.Error("Notification send failed", map[string]interface{}{
					"channel":   string(send.channel),
					"recipient": send.recipient,
					"error":     err.Error(),
				})
			} else {
				outcome.Delivered = true
				metrics.NotificationsSent.WithLabelValues(string(send.channel), "delivered").Inc()
			}

			outcomes[i] = outcome
		}(i, send)
	}
	wg.Wait()

	return outcomes
}
