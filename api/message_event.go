package api

import (
	"crypto/hmac"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/katatrina/message-notifier/internal/event"
	"github.com/rs/zerolog/log"
	"github.com/zpmep/hmacutil"
)

const (
	signatureHeaderKey = "X-Signature"

	// Message documents are small; anything bigger is rejected before the signature check.
	maxWebhookBodyBytes = 64 << 10
)

type pubSubMessage struct {
	Data        []byte            `json:"data"`
	Attributes  map[string]string `json:"attributes"`
	MessageID   string            `json:"messageId"`
	PublishTime string            `json:"publishTime"`
}

type pubSubPushRequest struct {
	Message      pubSubMessage `json:"message"`
	Subscription string        `json:"subscription"`
}

// @Summary		Receive a message-created event from a Pub/Sub push subscription
// @Description	The Pub/Sub message data is the JSON message document. The document id is read from the "messageId" attribute, falling back to the document's own field.
// @Tags			events
// @Accept			json
// @Produce		json
// @Security		googleIDToken
// @Param			request	body		pubSubPushRequest	true	"Pub/Sub push envelope"
// @Success		200		{object}	ingest.Receipt		"Event acknowledged"
// @Failure		401		{object}	object				"Missing or invalid identity token"
// @Router			/v1/pubsub/messages [post]
func (server *Server) receivePubSubMessage(c *gin.Context) {
	var req pubSubPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Lỗi định dạng không thể tự sửa khi gửi lại, nên vẫn trả 200 để Pub/Sub không retry
		log.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("failed to decode pub/sub push request")
		c.JSON(http.StatusOK, server.pipeline.Ingest(c.Request.Context(), nil, event.SourcePubSub))
		return
	}

	document := decodeDocument(req.Message.Data)
	messageEvent := event.MessageFromDocument(req.Message.Attributes[event.FieldMessageID], document)

	log.Info().
		Str("request_id", c.GetString(requestIDKey)).
		Str("subscription", req.Subscription).
		Str("pubsub_message_id", req.Message.MessageID).
		Msg("pub/sub message received")

	c.JSON(http.StatusOK, server.pipeline.Ingest(c.Request.Context(), messageEvent, event.SourcePubSub))
}

// @Summary		Receive a message-created event from a signed webhook
// @Description	The body is the JSON message document including its "messageId". X-Signature must be the hex HMAC-SHA256 of the raw body.
// @Tags			events
// @Accept			json
// @Produce		json
// @Param			X-Signature	header		string			true	"hex HMAC-SHA256 of the body"
// @Success		200			{object}	ingest.Receipt	"Event acknowledged"
// @Failure		401			{object}	object			"Missing or invalid signature"
// @Failure		413			{object}	object			"Body too large"
// @Router			/v1/webhooks/messages [post]
func (server *Server) receiveWebhookMessage(c *gin.Context) {
	signature := c.GetHeader(signatureHeaderKey)
	if signature == "" {
		c.JSON(http.StatusUnauthorized, errorResponse(ErrMissingSignature))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusRequestEntityTooLarge, errorResponse(ErrBodyTooLarge))
			return
		}

		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if !server.verifySignature(body, signature) {
		c.JSON(http.StatusUnauthorized, errorResponse(ErrInvalidSignature))
		return
	}

	document := decodeDocument(body)
	if document == nil {
		log.Error().Str("request_id", c.GetString(requestIDKey)).Msg("failed to decode webhook body")
	}

	c.JSON(http.StatusOK, server.pipeline.Ingest(c.Request.Context(), event.MessageFromDocument("", document), event.SourceWebhook))
}

// verifySignature compares MAC bytes, so upper- and lowercase hex are both accepted.
func (server *Server) verifySignature(body []byte, signature string) bool {
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	expected, err := hex.DecodeString(hmacutil.HexStringEncode(hmacutil.SHA256, server.config.WebhookSecret, string(body)))
	if err != nil {
		return false
	}
	return hmac.Equal(expected, got)
}

// decodeDocument returns nil when data is empty or not a JSON object.
func decodeDocument(data []byte) map[string]interface{} {
	if len(data) == 0 {
		return nil
	}

	var document map[string]interface{}
	if err := json.Unmarshal(data, &document); err != nil {
		return nil
	}
	return document
}
