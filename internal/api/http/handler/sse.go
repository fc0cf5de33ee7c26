package handler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// heartbeatInterval keeps idle SSE connections from being reaped by
// intermediaries.
const heartbeatInterval = 30 * time.Second

// streamSnapshots turns a watch subscription into a server-sent-events
// response. The first event carries the initial snapshot; every later
// event carries a full replacement snapshot. The subscription is torn
// down when the client disconnects or the channel closes.
func streamSnapshots[T any](c *fiber.Ctx, initial T, updates <-chan T, cancel func()) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	ctx := c.Context()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		if err := writeEvent(w, initial); err != nil {
			return
		}

		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()

		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					return
				}
				if err := writeEvent(w, snap); err != nil {
					return
				}
			case <-ticker.C:
				// SSE comment line as heartbeat.
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}))

	return nil
}

func writeEvent[T any](w *bufio.Writer, snap T) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}
