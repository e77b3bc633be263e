package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/YukiGDMG/TCP-IP/internal/entity"
)

type gameStats interface {
	QueueLen() int
	ActiveRooms() int
	RoundSummary(ctx context.Context) (*entity.RoundSummary, error)
	RecentRounds(ctx context.Context, limit int) ([]*entity.RoundRecord, error)
}

const recentRoundsLimit = 20

type statsResponse struct {
	Queued      int                  `json:"queued"`
	ActiveRooms int                  `json:"active_rooms"`
	Rounds      *entity.RoundSummary `json:"rounds"`
}

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Server) statsHandler(w http.ResponseWriter, req *http.Request) {
	summary, err := that.stats.RoundSummary(req.Context())
	if err != nil {
		that.logger.Error("failed to get round summary", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	resp := statsResponse{
		Queued:      that.stats.QueueLen(),
		ActiveRooms: that.stats.ActiveRooms(),
		Rounds:      summary,
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		that.logger.Error("failed to encode stats response", "error", err)
	}
}

func (that *Server) roundsHandler(w http.ResponseWriter, req *http.Request) {
	records, err := that.stats.RecentRounds(req.Context(), recentRoundsLimit)
	if err != nil {
		that.logger.Error("failed to get recent rounds", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if records == nil {
		records = []*entity.RoundRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(records); err != nil {
		that.logger.Error("failed to encode rounds response", "error", err)
	}
}
