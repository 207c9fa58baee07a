package notify

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/sethvargo/go-retry"

	"github.com/hydroapp/hydro/internal/model"
	"github.com/hydroapp/hydro/internal/store"
)

// ErrExpired is returned when a push subscription is no longer valid
// (410 Gone). Expired subscriptions are pruned automatically.
var ErrExpired = errors.New("push subscription expired")

// Stable notification tags: re-posting under the same tag replaces the
// previous notification instead of stacking a new one.
const (
	TagReminder    = "hydration-reminder"
	TagGoalReached = "goal-reached"
)

// CupAction is a one-tap add offered on the reminder notification. The
// service worker turns it into a notification action that posts the
// volume back to the server.
type CupAction struct {
	Label       string            `json:"label"`
	Milliliters model.Milliliters `json:"milliliters"`
}

// Payload is the JSON sent to the push service. Dismiss asks the service
// worker to close the notification carrying Tag instead of showing one.
type Payload struct {
	Title   string      `json:"title,omitempty"`
	Body    string      `json:"body,omitempty"`
	SubText string      `json:"sub_text,omitempty"`
	Tag     string      `json:"tag"`
	Actions []CupAction `json:"actions,omitempty"`
	Dismiss bool        `json:"dismiss,omitempty"`
}

// Service posts the two logical notifications (reminder, goal reached)
// to every registered subscription.
type Service struct {
	publicKey  string
	privateKey string
	subs       *store.PushStore
	logger     *slog.Logger
}

func NewService(publicKey, privateKey string, subs *store.PushStore, logger *slog.Logger) *Service {
	return &Service{
		publicKey:  publicKey,
		privateKey: privateKey,
		subs:       subs,
		logger:     logger,
	}
}

// Enabled reports whether VAPID keys are configured. Callers must not
// schedule reminders while this is false.
func (s *Service) Enabled() bool {
	return s.publicKey != "" && s.privateKey != ""
}

// VAPIDPublicKey returns the public key for client-side subscription.
func (s *Service) VAPIDPublicKey() string {
	return s.publicKey
}

// SendReminder posts the hydration reminder with the current total,
// progress, and the selected cups as one-tap add actions.
func (s *Service) SendReminder(ctx context.Context, total model.Milliliters, progress model.Percent, cups []model.Cup, unit model.LiquidUnit) error {
	actions := make([]CupAction, 0, len(cups))
	for _, cup := range cups {
		actions = append(actions, CupAction{
			Label:       cup.Milliliters.Format(unit),
			Milliliters: cup.Milliliters,
		})
	}
	return s.broadcast(ctx, Payload{
		Title:   "Hydration Reminder",
		Body:    reminderMessage(total),
		SubText: fmt.Sprintf("%s (%s)", total.Format(unit), progress.Format()),
		Tag:     TagReminder,
		Actions: actions,
	})
}

// SendGoalReached posts the daily goal celebration.
func (s *Service) SendGoalReached(ctx context.Context) error {
	return s.broadcast(ctx, Payload{
		Title: "You reached your goal today!",
		Body:  "\U0001F4A7\U0001F389\U0001F38A\U0001F973",
		Tag:   TagGoalReached,
	})
}

// CancelReminder replaces any pending reminder notification with a
// dismiss signal.
func (s *Service) CancelReminder(ctx context.Context) error {
	return s.broadcast(ctx, Payload{Tag: TagReminder, Dismiss: true})
}

// Clear dismisses every outstanding notification.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.broadcast(ctx, Payload{Tag: TagReminder, Dismiss: true}); err != nil {
		return err
	}
	return s.broadcast(ctx, Payload{Tag: TagGoalReached, Dismiss: true})
}

func (s *Service) broadcast(ctx context.Context, payload Payload) error {
	if !s.Enabled() {
		return nil
	}
	subs, err := s.subs.List()
	if err != nil {
		return fmt.Errorf("list subscriptions: %w", err)
	}

	for _, sub := range subs {
		if err := s.sendWithRetry(ctx, &sub, payload); err != nil {
			if errors.Is(err, ErrExpired) {
				if err := s.subs.DeleteByEndpoint(sub.Endpoint); err != nil {
					s.logger.Error("prune expired subscription", "error", err)
				}
				continue
			}
			s.logger.Error("send push", "tag", payload.Tag, "error", err)
		}
	}
	return nil
}

func (s *Service) sendWithRetry(ctx context.Context, sub *model.PushSubscription, payload Payload) error {
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := s.send(sub, payload)
		if err == nil || errors.Is(err, ErrExpired) {
			return err
		}
		return retry.RetryableError(err)
	})
}

func (s *Service) send(sub *model.PushSubscription, payload Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	resp, err := webpush.SendNotification(data, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dhKey,
			Auth:   sub.AuthKey,
		},
	}, &webpush.Options{
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		Subscriber:      "mailto:noreply@hydro.local",
		TTL:             3600,
	})
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		return ErrExpired
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("push service returned %d", resp.StatusCode)
	}

	return nil
}

// GenerateVAPIDKeys generates a new ECDSA P-256 key pair for VAPID.
func GenerateVAPIDKeys() (publicKey, privateKey string, err error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("generate ECDSA key: %w", err)
	}

	pubBytes := elliptic.Marshal(elliptic.P256(), key.PublicKey.X, key.PublicKey.Y)
	publicKey = base64.RawURLEncoding.EncodeToString(pubBytes)
	privateKey = base64.RawURLEncoding.EncodeToString(key.D.Bytes())

	return publicKey, privateKey, nil
}
