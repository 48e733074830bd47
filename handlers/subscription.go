package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"checkout-gateway/logging"
	"checkout-gateway/models"
	"checkout-gateway/payment"
	"checkout-gateway/service"
)

// SubscriptionHandler handles mailing list signups
type SubscriptionHandler struct {
	mailchimp *service.MailchimpClient
}

func NewSubscriptionHandler(mailchimp *service.MailchimpClient) *SubscriptionHandler {
	return &SubscriptionHandler{mailchimp: mailchimp}
}

// Subscribe handles POST /api/subscribe
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	bindErr := c.ShouldBindJSON(&req)
	lang := payment.ParseLanguage(req.Language)
	logger := logging.FromContext(c.Request.Context())

	if !h.mailchimp.Configured() {
		logger.Error("Mailchimp configuration missing")
		respondError(c, http.StatusInternalServerError, lang, payment.MsgServerConfig, nil)
		return
	}

	if bindErr != nil {
		respondError(c, http.StatusBadRequest, lang, payment.MsgSubscribeEmailEmpty, nil)
		return
	}

	if service.IsTestEmail(req.Email) {
		c.JSON(http.StatusOK, models.MessageResponse{
			Success: true,
			Message: payment.Message(lang, payment.MsgSubscribedTest),
		})
		return
	}

	outcome, err := h.mailchimp.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		logger.Error("Subscription failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, lang, payment.MsgSubscriptionFailed, nil)
		return
	}

	key := payment.MsgSubscribed
	switch outcome {
	case service.AlreadySubscribed:
		key = payment.MsgAlreadySubscribed
	case service.Rejected:
		logger.Info("Address rejected by Mailchimp")
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: payment.Message(lang, key),
	})
}
