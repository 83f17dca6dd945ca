package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Tokens already gate this endpoint, browsers from any origin may connect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// watchReports streams report snapshots over a websocket. Every time the
// subscription fires the full filtered result set is pushed as one JSON
// array, so the client can replace its view wholesale.
func (h *Handler) watchReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Writes come from the subscription goroutine and must not interleave.
	var writeMu sync.Mutex
	deliver := func(reports []models.Report) {
		writeMu.Lock()
		defer writeMu.Unlock()

		if err := conn.WriteJSON(reports); err != nil {
			log.Debug().Err(err).Msg("websocket write failed, client likely gone")
		}
	}

	unsubscribe, err := h.services.ReportService.SubscribeToReports(ctx, reportFilterFromQuery(r), deliver)
	if err != nil {
		log.Err(err).Msg("report subscription failed")
		writeMu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "subscription failed"),
			time.Now().Add(time.Second))
		writeMu.Unlock()
		return
	}
	defer unsubscribe()

	// Drain the connection so close frames from the client are seen.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Debug().Err(err).Msg("websocket closed")
			return
		}
	}
}
