package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/linskybing/engagement-go/internal/client/match"
	"github.com/linskybing/engagement-go/internal/domain/message"
	"github.com/linskybing/engagement-go/internal/repository"
	"github.com/linskybing/engagement-go/pkg/apperr"
	"go.uber.org/zap"
)

const pushTypeMessage = "message"

// MessageService is the messaging gate. A message is only stored and pushed
// once the authority confirms the two users are matched.
type MessageService struct {
	Repos    *repository.Repos
	Matches  match.Checker
	Notifier message.Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewMessageService(repos *repository.Repos, matches match.Checker, notifier message.Notifier, log *zap.Logger) *MessageService {
	return &MessageService{
		Repos:    repos,
		Matches:  matches,
		Notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Send delivers input from senderID. The authority must confirm that the
// named agreement joins sender and receiver; if that check fails for any
// reason the message is refused with apperr.ErrForbidden.
func (s *MessageService) Send(ctx context.Context, senderID uint, input message.SendMessageDTO) (message.Message, error) {
	if senderID == input.ReceiverID {
		return message.Message{}, fmt.Errorf("%w: cannot message yourself", apperr.ErrInvalidState)
	}
	if strings.TrimSpace(input.Content) == "" {
		return message.Message{}, fmt.Errorf("%w: empty message", apperr.ErrInvalidState)
	}

	matched, err := s.Matches.IsMatched(ctx, senderID, input.ReceiverID, input.CampaignID, &input.AgreementID)
	if err != nil {
		s.log.Warn("match check failed, refusing message",
			zap.Uint("sender_id", senderID),
			zap.Uint("receiver_id", input.ReceiverID),
			zap.Error(err))
		return message.Message{}, fmt.Errorf("%w: match could not be verified", apperr.ErrForbidden)
	}
	if !matched {
		return message.Message{}, fmt.Errorf("%w: users %d and %d are not matched", apperr.ErrForbidden, senderID, input.ReceiverID)
	}

	msg := message.Message{
		SenderID:    senderID,
		ReceiverID:  input.ReceiverID,
		AgreementID: input.AgreementID,
		CampaignID:  input.CampaignID,
		Content:     input.Content,
		SentAt:      s.now(),
	}
	if err := s.Repos.Message.CreateMessage(ctx, &msg); err != nil {
		return message.Message{}, err
	}

	delivered := s.Notifier.Notify(msg.ReceiverID, message.Push{
		Type:        pushTypeMessage,
		MessageID:   msg.ID,
		SenderID:    msg.SenderID,
		AgreementID: msg.AgreementID,
		Content:     msg.Content,
	})
	s.log.Debug("message pushed", zap.Uint("message_id", msg.ID), zap.Int("connections", delivered))
	return msg, nil
}

// History returns the conversation between me and other on one agreement,
// oldest first.
func (s *MessageService) History(ctx context.Context, me, other, agreementID uint) ([]message.Message, error) {
	return s.Repos.Message.ListConversation(ctx, me, other, agreementID)
}
