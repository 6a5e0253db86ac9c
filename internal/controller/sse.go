package controller

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
)

// StreamPrices godoc
// @Summary Stream live prices
// @Description Server-Sent Events endpoint. Sends the latest quote on connect, then every refreshed quote.
// @Tags prices
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Failure 503 {object} APIError
// @Router /api/prices/stream [get]
func (c *Controller) StreamPrices(ctx *gin.Context) {
	if c.subscriber == nil {
		serviceUnavailable(ctx, "Price stream not available", "")
		return
	}

	msgs, cancel, err := c.subscriber.Subscribe()
	if err != nil {
		serviceUnavailable(ctx, "Price stream not available", err.Error())
		return
	}
	defer cancel()

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	if quote, err := c.feed.Latest(); err == nil {
		if data, err := json.Marshal(quote); err == nil {
			ctx.SSEvent("prices", string(data))
			ctx.Writer.Flush()
		}
	}

	ctx.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-msgs:
			if !ok {
				return false
			}
			ctx.SSEvent("prices", string(msg))
			ctx.Writer.Flush()
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}
