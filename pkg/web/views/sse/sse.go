package sse

import (
	"context"
	"io"

	"github.com/alphadose/haxmap"
	"github.com/gin-gonic/gin"
	"github.com/scienceol/chemcheck/pkg/common/uuid"
	"github.com/scienceol/chemcheck/pkg/core/notify"
	"github.com/scienceol/chemcheck/pkg/middleware/logger"
)

const subscriberBuffer = 16

// Hub fans notification center messages out to every open event stream.
type Hub struct {
	subscribers *haxmap.Map[string, chan string]
}

// NewHub subscribes to compound resolutions on center. The subscription
// lives as long as ctx.
func NewHub(ctx context.Context, center notify.MsgCenter) *Hub {
	h := &Hub{subscribers: haxmap.New[string, chan string]()}
	if err := center.Registry(ctx, notify.CompoundResolve, h.publish); err != nil {
		logger.Errorf(ctx, "sse registry %s err: %+v", notify.CompoundResolve, err)
	}
	return h
}

// publish never blocks; a subscriber that is not keeping up loses the
// message.
func (h *Hub) publish(ctx context.Context, msg string) error {
	h.subscribers.ForEach(func(id string, ch chan string) bool {
		select {
		case ch <- msg:
		default:
			logger.Warnf(ctx, "sse subscriber %s is full, drop msg", id)
		}
		return true
	})
	return nil
}

func (h *Hub) subscribe() (string, chan string) {
	id := uuid.NewV4().String()
	ch := make(chan string, subscriberBuffer)
	h.subscribers.Set(id, ch)
	return id, ch
}

func (h *Hub) unsubscribe(id string) {
	h.subscribers.Del(id)
}

func (h *Hub) Len() int {
	return int(h.subscribers.Len())
}

// Notify godoc
// @Summary	Stream compound-resolve events
// @Tags		notify
// @Produce	text/event-stream
// @Success	200
// @Router		/v1/notify/sse [get]
func (h *Hub) Notify(ctx *gin.Context) {
	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")
	ctx.Writer.Header().Set("Access-Control-Allow-Origin", "*")

	id, ch := h.subscribe()
	defer h.unsubscribe(id)
	logger.Infof(ctx, "sse subscriber %s connected", id)

	ctx.Writer.WriteHeader(200)
	ctx.Writer.Flush()

	ctx.Stream(func(_ io.Writer) bool {
		select {
		case msg := <-ch:
			ctx.SSEvent(string(notify.CompoundResolve), msg)
			return true
		case <-ctx.Request.Context().Done():
			logger.Infof(ctx, "sse subscriber %s disconnected", id)
			return false
		}
	})
}
