package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/issuechat/internal/middleware"
	"github.com/lalith-99/issuechat/internal/observ"
	"go.uber.org/zap"
)

// Route is one row of the routing table.
type Route struct {
	Method   string
	Path     string
	Handlers []gin.HandlerFunc
}

// Handlers bundles everything Routes needs.
type Handlers struct {
	Messages  *MessageHandler
	Channels  *ChannelHandler
	Health    *HealthHandler
	JWTSecret string
}

// Routes is the full HTTP surface, in registration order. Anything that
// creates a channel or room needs a bearer token (the owner comes from it);
// reading and posting messages doesn't.
func Routes(h Handlers) []Route {
	requireAuth := middleware.AuthMiddleware(h.JWTSecret)

	return []Route{
		{http.MethodGet, "/v1/health", []gin.HandlerFunc{h.Health.Health}},

		{http.MethodGet, "/issue/channel/", []gin.HandlerFunc{h.Channels.List}},
		{http.MethodPost, "/issue/channel/new", []gin.HandlerFunc{requireAuth, h.Channels.Create}},
		{http.MethodPost, "/issue/room/", []gin.HandlerFunc{requireAuth, h.Channels.CreateRoom}},

		{http.MethodGet, "/issue/channel/:channelName", []gin.HandlerFunc{h.Messages.List}},
		{http.MethodPost, "/issue/channel/", []gin.HandlerFunc{h.Messages.Create}},
		{http.MethodGet, "/messages/receive/", []gin.HandlerFunc{h.Messages.Receive}},
	}
}

// NewRouter builds the gin engine and registers routes in order.
func NewRouter(logger *zap.Logger, routes []Route) *gin.Engine {
	srv := gin.New()
	srv.Use(observ.RequestLogger(logger), gin.Recovery())

	for _, r := range routes {
		srv.Handle(r.Method, r.Path, r.Handlers...)
	}
	return srv
}
