package handlers

import (
	"github.com/linskybing/engagement-go/internal/application"
	"github.com/linskybing/engagement-go/internal/messaging"
)

type Handlers struct {
	Audit     *AuditHandler
	Campaign  *CampaignHandler
	Offer     *OfferHandler
	Agreement *AgreementHandler
	Webhook   *WebhookHandler
}

func New(svc *application.Services) *Handlers {
	return &Handlers{
		Audit:     NewAuditHandler(svc.Audit),
		Campaign:  NewCampaignHandler(svc.Campaign),
		Offer:     NewOfferHandler(svc.Offer),
		Agreement: NewAgreementHandler(svc.Engagement, svc.Match),
		Webhook:   NewWebhookHandler(svc.Settlement),
	}
}

// MessagingHandlers serve the messaging gate.
type MessagingHandlers struct {
	Message *MessageHandler
	Push    *PushHandler
}

func NewMessaging(svc *application.MessageService, hub *messaging.Hub) *MessagingHandlers {
	return &MessagingHandlers{
		Message: NewMessageHandler(svc),
		Push:    NewPushHandler(hub),
	}
}
