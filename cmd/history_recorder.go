package cmd

import (
	"database/sql"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/user/vcut/config"
	"github.com/user/vcut/db"
)

// historyRecorder writes one render's row. A nil recorder records nothing, and
// database failures are logged as warnings so they never fail a render.
type historyRecorder struct {
	conn *sql.DB
	id   string
	log  logrus.FieldLogger
}

func startHistory(cfg *config.Config, log logrus.FieldLogger, r *db.Render) *historyRecorder {
	if !cfg.History {
		return nil
	}
	conn, err := db.Open(cfg.HistoryPath())
	if err != nil {
		log.WithError(err).Warn("render history unavailable")
		return nil
	}

	r.ID = uuid.NewString()
	r.StartedAt = time.Now()
	if err := db.InsertRender(conn, r); err != nil {
		log.WithError(err).Warn("could not record render")
		conn.Close()
		return nil
	}
	return &historyRecorder{conn: conn, id: r.ID, log: log.WithField("render", r.ID)}
}

func (h *historyRecorder) complete(output string) {
	if h == nil {
		return
	}
	var size int64
	if info, err := os.Stat(output); err == nil {
		size = info.Size()
	}
	if err := db.MarkRenderComplete(h.conn, h.id, time.Now(), size); err != nil {
		h.log.WithError(err).Warn("could not update render history")
	}
	h.conn.Close()
}

func (h *historyRecorder) fail(cause error) {
	if h == nil {
		return
	}
	if err := db.MarkRenderError(h.conn, h.id, time.Now(), cause.Error()); err != nil {
		h.log.WithError(err).Warn("could not update render history")
	}
	h.conn.Close()
}
