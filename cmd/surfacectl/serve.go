package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/surface"
	"github.com/go-theft-auto/surface/scene"
)

const (
	defaultAddr  = ":8080"
	pingInterval = 30 * time.Second
	pongWait     = 40 * time.Second
	writeWait    = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve SCENE",
	Short: "Serve a live scene over a websocket",
	Long: `Load a scene and run its engine on a real-time loop. Clients connect
to /ws and send JSON steps, one per message; each step is answered with the
callbacks it produced. Timers and animation frames run in real time, so a
wait step answers after the delay and a frame step after the next frame.

GET /snapshot returns a PNG of the scene.

The listen address defaults to $SURFACE_ADDR, then :8080.

Example:
  surfacectl serve doc/scenes/form.yaml --addr :9000
  {"op": "pointer-down", "x": 20, "y": 20}`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default $SURFACE_ADDR or :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = os.Getenv("SURFACE_ADDR")
	}
	if addr == "" {
		addr = defaultAddr
	}

	sc, err := loadScene(args[0])
	if err != nil {
		return err
	}
	srv, err := newServer(sc)
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	go srv.loop.Run(ctx)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdown)
	}()

	log.WithFields(logrus.Fields{
		"addr":  addr,
		"scene": args[0],
	}).Info("serving scene. Press CTRL+C to exit.")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// server shares one scene and engine between all websocket sessions.
// Every engine and scene access happens on the loop goroutine.
type server struct {
	loop     *surface.Loop
	scene    *scene.Scene
	engine   *surface.Engine
	upgrader websocket.Upgrader

	// Step counter, owned by the loop goroutine.
	steps int
}

// reply is the message sent back for each step.
type reply struct {
	Session string `json:"session"`
	scene.StepResult
}

func newServer(sc *scene.Scene) (*server, error) {
	s := &server{
		loop:  surface.NewLoop(surface.DefaultFrameInterval),
		scene: sc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	e, err := newEngine(sc, s.loop)
	if err != nil {
		return nil, err
	}
	s.engine = e
	return s, nil
}

// Close releases the engine. The loop must have stopped.
func (s *server) Close() error {
	return s.engine.Close()
}

func (s *server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	return mux
}

func (s *server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	done := make(chan struct{})
	var body []byte
	err := s.loop.PostContext(r.Context(), func() {
		defer close(done)
		var buf bytes.Buffer
		if err := png.Encode(&buf, s.scene.Snapshot(s.engine.Focused())); err == nil {
			body = buf.Bytes()
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	select {
	case <-done:
	case <-r.Context().Done():
		return
	}
	if body == nil {
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(body)
}

func (s *server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("failed to upgrade to websocket connection")
		return
	}
	defer conn.Close()

	session := uuid.New().String()
	entry := log.WithField("session", session)
	entry.Info("client connected")
	defer entry.Info("client disconnected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go keepAlive(ctx, conn, entry)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var step scene.Step
		if err := conn.ReadJSON(&step); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				entry.WithError(err).Warn("read failed")
			}
			return
		}

		res, err := s.run(ctx, step)
		if err != nil {
			entry.WithError(err).Warn("step abandoned")
			return
		}
		if res.Error != "" {
			entry.WithFields(logrus.Fields{"op": step.Op, "error": res.Error}).Debug("step failed")
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(reply{Session: session, StepResult: res}); err != nil {
			entry.WithError(err).Warn("write failed")
			return
		}
	}
}

// run performs step on the loop goroutine and waits for its result. Wait
// and frame steps complete asynchronously, once the loop has reached them.
func (s *server) run(ctx context.Context, step scene.Step) (scene.StepResult, error) {
	done := make(chan scene.StepResult, 1)
	err := s.loop.PostContext(ctx, func() {
		s.steps++
		n := s.steps
		finish := func(err error) {
			done <- s.scene.Result(s.engine, n, step.Op, err)
		}

		switch step.Op {
		case "wait":
			s.loop.AfterFunc(time.Duration(step.For), func() { finish(nil) })
		case "frame":
			s.afterFrames(step.Frames(), func() { finish(nil) })
		default:
			finish(s.scene.Apply(s.engine, step))
		}
	})
	if err != nil {
		return scene.StepResult{}, err
	}

	select {
	case res := <-done:
		return res, nil
	case <-ctx.Done():
		return scene.StepResult{}, fmt.Errorf("step %s: %w", step.Op, ctx.Err())
	}
}

// afterFrames runs f once n animation frames have passed.
func (s *server) afterFrames(n int, f func()) {
	s.loop.RequestFrame(func() {
		if n <= 1 {
			f()
			return
		}
		s.afterFrames(n-1, f)
	})
}

func keepAlive(ctx context.Context, conn *websocket.Conn, entry *logrus.Entry) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				entry.WithError(err).Warn("ping failed, closing connection")
				conn.Close()
				return
			}
		}
	}
}
