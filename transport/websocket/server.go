package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-stepback/internal/session"
)

const (
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

type coordinator interface {
	OnConnect(ctx context.Context, conn session.Conn) error
	OnMessage(ctx context.Context, conn session.Conn, raw []byte) error
	OnDisconnect(conn session.Conn)
}

type Server struct {
	logger      *slog.Logger
	coordinator coordinator
	path        string
	upgrader    websocket.Upgrader
}

func New(logger *slog.Logger, coordinator coordinator, path string) *Server {
	return &Server{
		logger:      logger.With("component", "websocket"),
		coordinator: coordinator,
		path:        path,
		upgrader: websocket.Upgrader{
			// the browser client is served from another origin
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler - routes the socket path to the upgrade handler.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(that.path, that.handleConnection)

	return mux
}

// Start - starts WebSocket server and stops it when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// handleConnection - upgrades the request and feeds its frames to the coordinator until it closes.
func (that *Server) handleConnection(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "handleConnection")

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(ws, writeTimeout)
	log = log.With("conn", conn.ID(), "remote", req.RemoteAddr)

	defer ws.Close()

	// the upgraded connection outlives the request context
	ctx := context.WithoutCancel(req.Context())

	if err = that.coordinator.OnConnect(ctx, conn); err != nil {
		log.Info("connection refused", "error", err)
		return
	}

	defer that.coordinator.OnDisconnect(conn)

	log.Info("WebSocket connection established")

	that.readLoop(ctx, log, conn)
}

func (that *Server) readLoop(ctx context.Context, log *slog.Logger, conn *connection) {
	for {
		messageType, data, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("connection closed unexpectedly", "error", err)
			} else {
				log.Info("connection closed")
			}

			return
		}

		if messageType != websocket.TextMessage {
			log.Warn("ignoring non-text frame", "type", messageType)
			continue
		}

		if err = that.coordinator.OnMessage(ctx, conn, data); err != nil {
			log.Debug("message not applied", "error", err)
		}
	}
}
