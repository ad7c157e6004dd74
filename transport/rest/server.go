package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rocketscienceinc/gomoku-backend/internal/config"
)

const passCookieName = "game_pass"

type gateInfo struct {
	Enabled  bool   `json:"enabled"`
	Question string `json:"question,omitempty"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}

type answerResult struct {
	Correct bool `json:"correct"`
}

// Start - starts HTTP server.
func Start(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "rest")

	router := mux.NewRouter()

	router.HandleFunc("/ping", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
		_, _ = writer.Write([]byte("pong"))
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/gate", func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(log, writer, gateInfo{
			Enabled:  conf.Gate.Answer != "",
			Question: conf.Gate.Question,
		})
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/answer", func(writer http.ResponseWriter, req *http.Request) {
		handleAnswer(log, writer, req, conf)
	}).Methods(http.MethodPost)

	router.PathPrefix("/").Handler(http.FileServer(http.Dir(conf.StaticDir)))

	srv := &http.Server{
		Addr:         ":" + conf.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// handleAnswer checks the gate answer and hands out the pass cookie the
// WebSocket endpoint requires. Comparison is case-insensitive.
func handleAnswer(log *slog.Logger, writer http.ResponseWriter, req *http.Request, conf *config.Config) {
	if conf.Gate.Answer == "" {
		writeJSON(log, writer, answerResult{Correct: true})
		return
	}

	var payload answerPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		http.Error(writer, "invalid payload", http.StatusBadRequest)
		return
	}

	given := strings.TrimSpace(payload.Answer)
	if !strings.EqualFold(given, conf.Gate.Answer) {
		writeJSON(log, writer, answerResult{Correct: false})
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     passCookieName,
		Value:    conf.Gate.Answer,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(log, writer, answerResult{Correct: true})
}

func writeJSON(log *slog.Logger, writer http.ResponseWriter, v any) {
	writer.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(writer).Encode(v); err != nil {
		log.Error("failed to write response", "error", err)
	}
}
