package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/issuechat/internal/middleware"
	"github.com/lalith-99/issuechat/internal/models"
	"github.com/lalith-99/issuechat/internal/service"
	"go.uber.org/zap"
)

// ChannelService is what ChannelHandler needs from the service layer.
type ChannelService interface {
	CreateChannel(ctx context.Context, in service.NewChannel) (*models.Channel, error)
	ListChannels(ctx context.Context) ([]models.Channel, error)
	CreateRoom(ctx context.Context, in service.NewRoom) (*models.Room, error)
}

type ChannelHandler struct {
	svc    ChannelService
	logger *zap.Logger
}

func NewChannelHandler(svc ChannelService, logger *zap.Logger) *ChannelHandler {
	return &ChannelHandler{svc: svc, logger: logger}
}

// createChannelRequest is the body of POST /issue/channel/new.
//
// The owner is never part of the body; it comes from the bearer token.
// room_name is the room to file the channel under, empty for none.
type createChannelRequest struct {
	Name        string `form:"channel_name" json:"channel_name"`
	Description string `form:"channel_content" json:"channel_content"`
	RoomName    string `form:"room_name" json:"room_name"`
}

type createRoomRequest struct {
	Name string `form:"room_name" json:"room_name"`
}

// Create handles POST /issue/channel/new
func (h *ChannelHandler) Create(c *gin.Context) {
	var req createChannelRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ch, err := h.svc.CreateChannel(c.Request.Context(), service.NewChannel{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     middleware.GetUserID(c),
		OwnerName:   middleware.GetUsername(c),
		RoomName:    req.RoomName,
	})
	if err != nil {
		respondError(c, h.logger, err, "failed to create channel")
		return
	}

	h.logger.Info("channel created",
		zap.String("channel", ch.Name),
		zap.String("owner", ch.OwnerName),
	)
	c.JSON(http.StatusCreated, ch)
}

// List handles GET /issue/channel/
func (h *ChannelHandler) List(c *gin.Context) {
	channels, err := h.svc.ListChannels(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "failed to list channels")
		return
	}
	c.JSON(http.StatusOK, channels)
}

// CreateRoom handles POST /issue/room/
func (h *ChannelHandler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.svc.CreateRoom(c.Request.Context(), service.NewRoom{Name: req.Name})
	if err != nil {
		respondError(c, h.logger, err, "failed to create room")
		return
	}
	c.JSON(http.StatusCreated, room)
}
