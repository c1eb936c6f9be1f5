package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

type MessageService struct {
	repo   ports.MessageRepository
	creds  ports.CredentialRepository
	now    func() time.Time
	logger zerolog.Logger
}

func NewMessageService(repo ports.MessageRepository, creds ports.CredentialRepository, logger zerolog.Logger) *MessageService {
	return &MessageService{
		repo:   repo,
		creds:  creds,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// List returns every message actor sent or received.
func (s *MessageService) List(ctx context.Context, actor domain.Principal) ([]*domain.Message, error) {
	res := domain.ResourceDescriptor{Type: domain.ResourceMessage, OwnerIdentity: actor.Identity}
	if err := Authorize(actor, res, domain.ActionRead).Err(); err != nil {
		return nil, err
	}
	msgs, err := s.repo.ListForParticipant(ctx, actor.Identity)
	if err != nil {
		return nil, storageErr("list messages", err)
	}
	return msgs, nil
}

// Send delivers a message to an existing member or agency.
func (s *MessageService) Send(ctx context.Context, actor domain.Principal, in ports.SendMessageInput) (*domain.Message, error) {
	if in.Receiver == "" || in.Content == "" {
		return nil, fmt.Errorf("%w: receiver and content are required", domain.ErrInvalidInput)
	}
	switch in.Type {
	case "":
		in.Type = domain.MessageText
	case domain.MessageText, domain.MessageImage, domain.MessageFile:
	default:
		return nil, fmt.Errorf("%w: unknown message type %q", domain.ErrInvalidInput, in.Type)
	}

	receiver, err := s.creds.FindByUsername(ctx, in.Receiver)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, storageErr("find receiver", err)
	}
	res := domain.ResourceDescriptor{
		Type:          domain.ResourceMessage,
		OwnerIdentity: receiver.Username,
		OwnerRole:     domain.RolePtr(receiver.Role),
	}
	if err := Authorize(actor, res, domain.ActionCreate).Err(); err != nil {
		return nil, err
	}

	m, err := s.repo.Create(ctx, &domain.Message{
		Sender:    actor.Identity,
		Receiver:  receiver.Username,
		Content:   in.Content,
		Type:      in.Type,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, storageErr("create message", err)
	}
	s.logger.Info().Str("sender", m.Sender).Str("receiver", m.Receiver).Msg("message sent")
	return m, nil
}

// Delete removes message id when actor took part in it.
func (s *MessageService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrMessageNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			return err
		}
		return storageErr("find message", err)
	}
	res := domain.ResourceDescriptor{
		Type:         domain.ResourceMessage,
		ResourceID:   m.ID,
		Participants: []string{m.Sender, m.Receiver},
	}
	if err := Authorize(actor, res, domain.ActionDelete).Err(); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, m.ID); err != nil {
		if errors.Is(err, domain.ErrMessageNotFound) {
			return err
		}
		return storageErr("delete message", err)
	}
	return nil
}
