package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/game"
)

const writeTimeout = 10 * time.Second

// gameSession is what the transport needs from the session layer.
type gameSession interface {
	Admit(conn game.Conn) (*game.Client, error)
	Release(client *game.Client)

	HandleMove(client *game.Client, row, col int) error
	HandleReset(client *game.Client) error
	HandleResign(client *game.Client) error
	HandleUndoRequest(client *game.Client) error
	HandleUndoResponse(client *game.Client, accepted bool) error
	HandlePause(client *game.Client) error
	HandleUnpause(client *game.Client) error
	SetUsername(client *game.Client, name string) error

	AdminSwapColors(password string) error
	AdminUndo(password string) error
	AdminChangeCapacity(password string, capacity int) error
	AdminChangeTimer(password string, seconds int) error
	AdminChangeTotalTime(password string, seconds int) error
	AdminChangePauseDuration(password string, seconds int) error
	AdminClearScores(password string) error
	AdminSwapSpectator(password string, index int, color entity.Color) error
}

type handlerFunc func(client *game.Client, data []byte) error

type Server struct {
	logger     *slog.Logger
	session    gameSession
	gateAnswer string
	upgrader   websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, session gameSession, gateAnswer string) *Server {
	server := &Server{
		logger:     logger.With("component", "websocket"),
		session:    session,
		gateAnswer: gateAnswer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers["move"] = server.handleMove
	server.handlers["reset"] = server.handleReset
	server.handlers["resign"] = server.handleResign
	server.handlers["undo_request"] = server.handleUndoRequest
	server.handlers["undo_response"] = server.handleUndoResponse
	server.handlers["pause"] = server.handlePause
	server.handlers["unpause"] = server.handleUnpause
	server.handlers["set_username"] = server.handleSetUsername

	server.handlers["admin_swap_colors"] = server.handleAdminSwapColors
	server.handlers["admin_undo"] = server.handleAdminUndo
	server.handlers["admin_change_capacity"] = server.handleAdminChangeCapacity
	server.handlers["admin_change_timer"] = server.handleAdminChangeTimer
	server.handlers["admin_change_total_time"] = server.handleAdminChangeTotalTime
	server.handlers["admin_change_pause_duration"] = server.handleAdminChangePauseDuration
	server.handlers["admin_clear_scores"] = server.handleAdminClearScores
	server.handlers["admin_swap_spectator"] = server.handleAdminSwapSpectator

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveConnection)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 0, // connections are long-lived
		IdleTimeout: 0,
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

func (that *Server) serveConnection(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	if !that.passesGate(req) {
		http.Error(writer, "access gate not passed", http.StatusForbidden)
		return
	}

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	wsConn := newWSConn(conn)

	client, err := that.session.Admit(wsConn)
	if err != nil {
		_ = wsConn.WriteEvent(newRejectedMessage(err.Error()))
		_ = wsConn.Close()
		return
	}

	defer func() {
		that.session.Release(client)
		_ = wsConn.Close()
	}()

	log.Info("WebSocket connection established", "client", client.ID(), "role", client.Role())

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Debug("connection closed", "client", client.ID(), "error", err)
			return
		}

		that.dispatch(wsConn, client, data)
	}
}

// passesGate enforces the one-time out-of-band access check: the REST
// layer hands out a pass cookie for the right answer. An unset answer
// disables the gate.
func (that *Server) passesGate(req *http.Request) bool {
	if that.gateAnswer == "" {
		return true
	}

	cookie, err := req.Cookie("game_pass")

	return err == nil && cookie.Value == that.gateAnswer
}

// dispatch routes one inbound frame. Handler errors are local
// rejections: they go back to the sender only, never broadcast.
func (that *Server) dispatch(conn *wsConn, client *game.Client, data []byte) {
	var message envelope
	if err := json.Unmarshal(data, &message); err != nil {
		_ = conn.WriteEvent(newErrorMessage("malformed message"))
		return
	}

	handler, ok := that.handlers[message.Type]
	if !ok {
		_ = conn.WriteEvent(newErrorMessage(apperror.ErrUnknownType.Error() + ": " + message.Type))
		return
	}

	if err := handler(client, data); err != nil {
		_ = conn.WriteEvent(newErrorMessage(err.Error()))
	}
}

// wsConn serializes writes; gorilla allows one concurrent writer only.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newWSConn(conn *websocket.Conn) *wsConn {
	return &wsConn{conn: conn}
}

func (that *wsConn) WriteEvent(v any) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.conn.WriteJSON(v); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

func (that *wsConn) Close() error {
	return that.conn.Close()
}
