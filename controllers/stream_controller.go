// File: /controllers/stream_controller.go
package controllers

import (
	"io"

	"github.com/gin-gonic/gin"

	"livewall-api/realtime"
)

// StreamController serves the live event stream over SSE. There is no
// backlog: a client that just connected queries the feed for current state
// and then applies events as they arrive.
type StreamController struct {
	hub *realtime.Hub
}

func NewStreamController(hub *realtime.Hub) *StreamController {
	return &StreamController{hub: hub}
}

func (sc *StreamController) Stream(c *gin.Context) {
	sub := sc.hub.Subscribe()
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent(event.Name, event.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
