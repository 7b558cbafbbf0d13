package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/alliance-shipping/backoffice/internal/domain"
	"github.com/alliance-shipping/backoffice/internal/events"
	"github.com/alliance-shipping/backoffice/internal/repository"
	apperrors "github.com/alliance-shipping/backoffice/pkg/util/errorutil"
)

const maxContactBody = 5000

// ContactService stores messages from the public contact form.
type ContactService struct {
	messages   repository.ContactMessageRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ContactInput is a contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Body    string
}

// NewContactService constructs the service.
func NewContactService(messages repository.ContactMessageRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{messages: messages, dispatcher: dispatcher, logger: logger}
}

// Submit validates and stores a message.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*domain.ContactMessage, error) {
	msg := &domain.ContactMessage{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Subject: strings.TrimSpace(input.Subject),
		Body:    strings.TrimSpace(input.Body),
	}

	details := map[string]any{}
	if msg.Name == "" {
		details["name"] = "required"
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		details["email"] = "must be a valid email address"
	}
	if msg.Body == "" {
		details["body"] = "required"
	} else if len(msg.Body) > maxContactBody {
		details["body"] = "too long"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid contact message", details)
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.MapError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:    events.EventContactMessageReceived,
		Subject: msg.ID,
		Payload: events.ContactMessageReceivedPayload{
			MessageID:   msg.ID,
			Email:       msg.Email,
			Subject:     msg.Subject,
			BodyPreview: stringPreview(msg.Body, 140),
		},
	})
	return msg, nil
}

// List returns messages for the inbox screen.
func (s *ContactService) List(ctx context.Context, unreadOnly bool, limit, offset int) ([]domain.ContactMessage, error) {
	msgs, err := s.messages.List(ctx, unreadOnly, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return msgs, nil
}

// MarkRead flags a message as handled.
func (s *ContactService) MarkRead(ctx context.Context, id string) error {
	if err := s.messages.MarkRead(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("message", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// CountUnread returns the inbox badge count.
func (s *ContactService) CountUnread(ctx context.Context) (int64, error) {
	count, err := s.messages.CountUnread(ctx)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return count, nil
}
