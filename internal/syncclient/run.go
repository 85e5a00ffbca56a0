package syncclient

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/archmap/internal/report"
)

// Run fetches the current report once, then follows server notifications
// until ctx is done. While the subscription cannot be held it polls for
// FallbackWindow and then tries again. Run returns nil when ctx ends.
func (c *Client) Run(ctx context.Context) error {
	defer c.setStatus(StatusStopped)

	if _, err := c.Refresh(ctx); err != nil {
		c.logger.Warn("initial fetch failed", "err", err)
	}

	for {
		err := c.subscribe(ctx)
		if ctx.Err() != nil {
			return nil
		}
		c.logger.Warn("subscription lost, polling", "err", err, "window", c.fallbackWindow)

		c.poll(ctx)
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *Client) streamURL() string {
	u := *c.base
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = u.Path + "/ws/report"
	return u.String()
}

// subscribe holds one websocket subscription until it fails or ctx ends.
func (c *Client) subscribe(ctx context.Context) error {
	c.setStatus(StatusConnecting)
	conn, _, err := c.dialer.DialContext(ctx, c.streamURL(), nil)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", c.streamURL(), err)
	}
	c.setStatus(StatusLive)
	c.logger.Debug("subscribed", "url", c.streamURL())

	// Anything published while we were away is picked up here.
	if _, err := c.Refresh(ctx); err != nil {
		c.logger.Warn("refresh after subscribe failed", "err", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return conn.Close()
	})
	g.Go(func() error {
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return fmt.Errorf("reading notification: %w", err)
			}
			if !isUpdate(msg) {
				continue
			}
			if _, err := c.Refresh(gctx); err != nil {
				c.logger.Warn("refresh after notification failed", "err", err)
			}
		}
	})
	return g.Wait()
}

// isUpdate reports whether a notification should trigger a re-fetch.
// Notifications carry no data, so one that cannot be decoded is treated as
// an update.
func isUpdate(msg []byte) bool {
	var ev report.Event
	if err := json.Unmarshal(msg, &ev); err != nil {
		return true
	}
	return ev.Type == report.EventUpdate
}

// poll refreshes every pollInterval for fallbackWindow.
func (c *Client) poll(ctx context.Context) {
	c.setStatus(StatusPolling)

	window, cancel := context.WithTimeout(ctx, c.fallbackWindow)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-window.Done():
			return
		case <-ticker.C:
			if _, err := c.Refresh(window); err != nil {
				c.logger.Debug("poll failed", "err", err)
			}
		}
	}
}
