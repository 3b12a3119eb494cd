// Package notify sends fire-and-forget HTTP notifications for session events.
// The primary use case is ntfy.sh, but any HTTP webhook works.
package notify

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/session"
)

// Notifier posts plain-text HTTP notifications for selected session events.
type Notifier struct {
	url         string
	title       string
	onDelivered bool
	onFailed    bool
	onReset     bool
	client      *http.Client
	wg          sync.WaitGroup
}

// New creates a Notifier. title is sent as the X-Title header; if empty,
// "Vignette" is used instead.
func New(notifURL, title string, onDelivered, onFailed, onReset bool) *Notifier {
	if title == "" {
		title = "Vignette"
	}
	return &Notifier{
		url:         notifURL,
		title:       title,
		onDelivered: onDelivered,
		onFailed:    onFailed,
		onReset:     onReset,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Hook is a session hook. It fires asynchronous POSTs for events that match
// the configured notification flags.
func (n *Notifier) Hook(e session.Event) {
	var tag string
	switch {
	case e.Kind == session.EventDelivered && n.onDelivered:
		tag = "receipt"
	case e.Kind == session.EventFailed && n.onFailed:
		tag = "warning"
	case e.Kind == session.EventReset && n.onReset:
		tag = "arrows_counterclockwise"
	default:
		return
	}

	msg := e.Message
	if e.Err != "" {
		msg += ": " + e.Err
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.post(msg, tag)
	}()
}

// Wait blocks until in-flight notifications finish. Call it before exiting
// so the last events are not dropped.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

// post sends a plain-text POST to the configured URL. Failures are logged at
// debug level and never interrupt the session.
func (n *Notifier) post(message, tag string) {
	req, err := http.NewRequest(http.MethodPost, n.url, strings.NewReader(message))
	if err != nil {
		slog.Debug("notification request", "err", err)
		return
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-Title", n.title)
	req.Header.Set("X-Tags", tag)
	resp, err := n.client.Do(req)
	if err != nil {
		slog.Debug("notification post", "url", n.url, "err", err)
		return
	}
	resp.Body.Close()
}
