package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/issuechat/internal/service"
	"go.uber.org/zap"
)

// MessageService is what MessageHandler needs from the service layer.
// *service.MessageService implements it.
type MessageService interface {
	ListMessages(ctx context.Context, channelName string) (*service.ChannelMessages, error)
	PollNewMessages(ctx context.Context, channelName string, sinceID int64) ([]service.MessageView, error)
	CreateMessage(ctx context.Context, in service.NewMessage) (service.MessageView, error)
}

type MessageHandler struct {
	svc    MessageService
	logger *zap.Logger
}

func NewMessageHandler(svc MessageService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{svc: svc, logger: logger}
}

// createMessageRequest accepts both the HTML form post and JSON.
// Validation (empty sender/content) is left to the service so the rule lives
// in one place.
type createMessageRequest struct {
	ChannelName string `form:"channelName" json:"channelName"`
	Sender      string `form:"sender" json:"sender"`
	Content     string `form:"content" json:"content"`
}

// ChannelPath is the channel view URL that message posts redirect to.
func ChannelPath(channelName string) string {
	return "/issue/channel/" + url.PathEscape(channelName)
}

// List handles GET /issue/channel/:channelName
//
// Returns the channel, all of its messages oldest first, and the last_id
// the client should start polling from.
func (h *MessageHandler) List(c *gin.Context) {
	out, err := h.svc.ListMessages(c.Request.Context(), c.Param("channelName"))
	if err != nil {
		respondError(c, h.logger, err, "failed to list messages")
		return
	}
	c.JSON(http.StatusOK, out)
}

// Create handles POST /issue/channel/
//
// On success the client is sent back to the channel view with 303, so a
// browser refresh doesn't re-post the form.
func (h *MessageHandler) Create(c *gin.Context) {
	var req createMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.svc.CreateMessage(c.Request.Context(), service.NewMessage{
		ChannelName: req.ChannelName,
		Sender:      req.Sender,
		Content:     req.Content,
	})
	if err != nil {
		respondError(c, h.logger, err, "failed to create message")
		return
	}

	c.Redirect(http.StatusSeeOther, ChannelPath(req.ChannelName))
}

// Receive handles GET /messages/receive/?channelName=...&lastId=...
//
// The delta poll. lastId absent or 0 means "from the beginning". Nothing new
// is an empty array, not an error.
func (h *MessageHandler) Receive(c *gin.Context) {
	channelName := c.Query("channelName")
	if channelName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channelName is required"})
		return
	}

	var lastID int64
	if v := c.Query("lastId"); v != "" {
		var err error
		lastID, err = strconv.ParseInt(v, 10, 64)
		if err != nil || lastID < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'lastId' parameter"})
			return
		}
	}

	messages, err := h.svc.PollNewMessages(c.Request.Context(), channelName, lastID)
	if err != nil {
		respondError(c, h.logger, err, "failed to receive messages")
		return
	}

	c.JSON(http.StatusOK, messages)
}
