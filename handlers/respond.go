package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"checkout-gateway/logging"
	"checkout-gateway/models"
	"checkout-gateway/payment"
	"checkout-gateway/service"
)

// upstreamMode decides how a non-2xx upstream answer is surfaced.
type upstreamMode int

const (
	// mirrorWithMessage keeps the upstream status and prefers the upstream's
	// structured message over the fallback.
	mirrorWithMessage upstreamMode = iota
	// mirrorStatus keeps the upstream status with the fallback message.
	mirrorStatus
	// providerFailure maps every provider rejection to 500.
	providerFailure
)

func respondError(c *gin.Context, status int, lang payment.Language, key payment.Key, details any) {
	c.JSON(status, models.ErrorResponse{
		Success: false,
		Message: payment.Message(lang, key),
		Code:    string(key),
		Error:   details,
	})
}

// fail maps a service error onto the response taxonomy: 400 input, 500
// configuration, mirrored or mapped upstream status, 503 connectivity.
func fail(c *gin.Context, lang payment.Language, err error, fallback payment.Key, mode upstreamMode) {
	logger := logging.FromContext(c.Request.Context())

	if verr, ok := payment.AsValidationError(err); ok {
		respondError(c, http.StatusBadRequest, lang, verr.Reason, nil)
		return
	}

	var (
		unavailable *service.UnavailableError
		upstreamErr *service.UpstreamError
	)

	switch {
	case errors.Is(err, service.ErrUnsupportedMethod):
		respondError(c, http.StatusBadRequest, lang, payment.MsgInvalidPaymentMethod, nil)

	case errors.Is(err, service.ErrNotConfigured):
		logger.Error("Provider credentials missing", zap.String("path", c.FullPath()))
		respondError(c, http.StatusInternalServerError, lang, payment.MsgNotConfigured, nil)

	case errors.As(err, &unavailable):
		respondError(c, http.StatusServiceUnavailable, lang, payment.MsgServerConfig,
			"Cannot connect to payment server")

	case errors.Is(err, service.ErrProviderAuth):
		logger.Error("Provider authentication failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, lang, payment.MsgProviderAuthFailed, nil)

	case errors.Is(err, service.ErrNoCapture):
		respondError(c, http.StatusInternalServerError, lang, payment.MsgNoCaptureData, nil)

	case errors.As(err, &upstreamErr):
		status := upstreamErr.StatusCode
		if mode == providerFailure {
			status = http.StatusInternalServerError
		}
		message := payment.Message(lang, fallback)
		if mode == mirrorWithMessage && upstreamErr.Message != "" {
			message = upstreamErr.Message
		}
		c.JSON(status, models.ErrorResponse{
			Success: false,
			Message: message,
			Code:    string(fallback),
			Error:   upstreamErr.Details,
		})

	default:
		logger.Error("Request failed", zap.Error(err), zap.String("path", c.FullPath()))
		respondError(c, http.StatusInternalServerError, lang, fallback, nil)
	}
}

func asUpstream(err error) (*service.UpstreamError, bool) {
	var upstreamErr *service.UpstreamError
	ok := errors.As(err, &upstreamErr)
	return upstreamErr, ok
}

// queryLanguage is used where the body carries no language field.
func queryLanguage(c *gin.Context) payment.Language {
	return payment.ParseLanguage(c.Query("language"))
}

// MethodNotAllowed answers requests using the wrong verb on a known route.
func MethodNotAllowed(c *gin.Context) {
	respondError(c, http.StatusMethodNotAllowed, queryLanguage(c), payment.MsgMethodNotAllowed, nil)
}

// NotFound answers unknown routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Not found"})
}

// HealthCheck handles health check requests
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
