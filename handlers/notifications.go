package handlers

import (
	"net/http"
	"sync"

	"github.com/fdo-backends/portal-settings/settings"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Watcher streams SettingChanged events to websocket clients. Register
// it on the settings change event to start broadcasting.
type Watcher struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]bool
	upgrader websocket.Upgrader
}

func NewWatcher() *Watcher {
	return &Watcher{
		conns: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			// The gateway is a local admin surface; CORS is handled by
			// the middleware chain.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Watch upgrades the request and keeps the connection subscribed until
// the client goes away.
func (w *Watcher) Watch() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		conn, err := w.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			log.Warn(err)
			return
		}

		w.mu.Lock()
		w.conns[conn] = true
		w.mu.Unlock()

		log.WithFields(log.Fields{"remote": conn.RemoteAddr()}).Debug("Settings watcher connected")

		// Inbound messages are ignored; the read loop only notices the
		// client closing.
		go func() {
			for {
				if _, _, err := conn.NextReader(); err != nil {
					w.drop(conn)
					return
				}
			}
		}()
	})
}

// Handle broadcasts one SettingChanged payload to every subscriber.
func (w *Watcher) Handle(payload settings.SettingChangedPayload) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for conn := range w.conns {
		if err := conn.WriteJSON(payload); err != nil {
			log.Warn(err)
			delete(w.conns, conn)
			conn.Close()
		}
	}
}

func (w *Watcher) drop(conn *websocket.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.conns[conn] {
		delete(w.conns, conn)
		conn.Close()
		log.WithFields(log.Fields{"remote": conn.RemoteAddr()}).Debug("Settings watcher disconnected")
	}
}
