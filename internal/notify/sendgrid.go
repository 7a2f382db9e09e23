package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"bistro-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// mailSender is the part of the SendGrid client used here.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridNotifier sends order confirmations through SendGrid.
type SendGridNotifier struct {
	sender mailSender
	from   string
	logger zerolog.Logger
}

// NewSendGridNotifier creates a notifier that mails from the given address.
func NewSendGridNotifier(apiKey, from string, logger zerolog.Logger) *SendGridNotifier {
	return newSendGridNotifier(sendgrid.NewSendClient(apiKey), from, logger)
}

func newSendGridNotifier(sender mailSender, from string, logger zerolog.Logger) *SendGridNotifier {
	return &SendGridNotifier{
		sender: sender,
		from:   from,
		logger: logger.With().Str("component", "sendgrid-notifier").Logger(),
	}
}

// OrderPlaced mails a summary of the order to the customer.
func (n *SendGridNotifier) OrderPlaced(ctx context.Context, order *model.OrderRecord) error {
	if order.Email == "" {
		return fmt.Errorf("order %s has no email address", order.ID)
	}

	subject := fmt.Sprintf("%s: order %s confirmed", order.ShopName, shortID(order))
	body := confirmationBody(order)

	message := mail.NewSingleEmail(
		mail.NewEmail(order.ShopName, n.from),
		subject,
		mail.NewEmail(order.FullName, order.Email),
		body,
		fmt.Sprintf("<pre>%s</pre>", html.EscapeString(body)),
	)

	response, err := n.sender.SendWithContext(ctx, message)
	if err != nil {
		n.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("sendgrid send error")
		return fmt.Errorf("sendgrid send error: %w", err)
	}

	if response.StatusCode >= 400 {
		n.logger.Error().
			Int("status", response.StatusCode).
			Str("body", response.Body).
			Str("order_id", order.ID.String()).
			Msg("sendgrid rejected the message")
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	n.logger.Info().
		Int("status", response.StatusCode).
		Str("order_id", order.ID.String()).
		Msg("order confirmation sent")

	return nil
}

func shortID(order *model.OrderRecord) string {
	return strings.ToUpper(order.ID.String()[:8])
}

// confirmationBody renders the plain-text mail. Cart lines are listed when
// the stored cart has the usual line shape.
func confirmationBody(order *model.OrderRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hello %s,\n\n", order.FullName)
	fmt.Fprintf(&b, "Thank you for your order at %s.\n", order.ShopName)
	fmt.Fprintf(&b, "Reference: %s\n\n", order.ID)

	var lines []model.CartLine
	if err := json.Unmarshal(order.Cart, &lines); err == nil && len(lines) > 0 {
		for _, l := range lines {
			if l.Name == "" || l.Qty <= 0 {
				continue
			}
			fmt.Fprintf(&b, "  %d x %s  %s\n", l.Qty, l.Name, model.RoundMoney(l.Subtotal()).StringFixed(2))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Subtotal (HT): %s\n", order.HT.StringFixed(2))
	fmt.Fprintf(&b, "VAT:           %s\n", order.VAT.StringFixed(2))
	fmt.Fprintf(&b, "Total (TTC):   %s\n", order.TTC.StringFixed(2))

	return b.String()
}
