package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/turntable/internal/deck"
	"github.com/desertthunder/turntable/internal/models"
	"github.com/desertthunder/turntable/internal/rotation"
	"github.com/desertthunder/turntable/internal/shared"
	"github.com/desertthunder/turntable/internal/theme"
	"github.com/gorilla/websocket"
)

// Options configures a [VinylServer].
type Options struct {
	Addr   string
	Config rotation.Config
	Deck   *deck.Deck
	Logger *log.Logger
	// Scheduler defaults to a ticker at Config.FrameInterval.
	Scheduler         rotation.Scheduler
	RegenerateCurrent bool
	RegenerateAll     bool
	Hub               HubConfig
}

// DeckView is the deck as sent to clients.
type DeckView struct {
	Index   int                `json:"index"`
	Current models.Playlist    `json:"current"`
	Items   []models.Playlist  `json:"items"`
	Genres  []models.Genre     `json:"genres"`
	Mood    models.Mood        `json:"mood"`
	Loading models.LoadingMode `json:"loading,omitempty"`
	Accent  string             `json:"accent"`
	Theme   theme.Gradient     `json:"theme"`
	Dark    bool               `json:"dark"`
}

// DeckUpdateView is a deck rebuild update as sent to clients.
type DeckUpdateView struct {
	Mode    models.LoadingMode `json:"mode"`
	Message string             `json:"message,omitempty"`
	Step    int                `json:"step,omitempty"`
	Total   int                `json:"total,omitempty"`
	Error   string             `json:"error,omitempty"`
	Done    bool               `json:"done,omitempty"`
}

type initView struct {
	Frame rotation.Snapshot `json:"frame"`
	Deck  DeckView          `json:"deck"`
}

// VinylServer hosts one gesture machine and one deck for every connected client.
type VinylServer struct {
	opts     Options
	logger   *log.Logger
	deck     *deck.Deck
	hub      *Hub
	loop     *rotation.Loop
	router   *BasicRouter
	upgrader websocket.Upgrader

	// dragger is the client whose pointer owns the record, if any.
	dragMu  sync.Mutex
	dragger *Client
}

func NewVinylServer(opts Options) *VinylServer {
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}
	if opts.Deck == nil {
		opts.Deck = deck.New(deck.Options{Logger: opts.Logger})
	}

	s := &VinylServer{
		opts:   opts,
		logger: opts.Logger,
		deck:   opts.Deck,
		hub:    NewHub(opts.Logger, opts.Hub),
		router: NewBasicRouter(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.routes()
	return s
}

func (s *VinylServer) routes() {
	s.router.Use(Recover(s.logger), RequestLogger(s.logger))
	s.router.HandleFunc(http.MethodGet, "/ws", s.handleWS)
	s.router.Handler(deckAPI{s})
	s.router.HandleFunc(http.MethodGet, "/api/vinyl", s.handleVinyl)
	s.router.HandleFunc(http.MethodGet, "/healthz", s.handleHealth)
}

func (s *VinylServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Hub exposes the websocket hub.
func (s *VinylServer) Hub() *Hub { return s.hub }

// Start launches the hub, the gesture loop and the deck forwarder. They stop with ctx.
func (s *VinylServer) Start(ctx context.Context) {
	s.loop = rotation.NewLoop(rotation.LoopOptions{
		Config:    s.opts.Config,
		Handlers:  s.deck.Handlers(ctx, s.opts.RegenerateCurrent, s.opts.RegenerateAll),
		Scheduler: s.opts.Scheduler,
		Logger:    s.logger,
		Publish: func(snap rotation.Snapshot) {
			s.hub.Broadcast(TypeFrame, snap)
		},
		OnRelease: s.onRelease,
	})

	go s.hub.Run(ctx)
	go func() {
		if err := s.loop.Run(ctx); err != nil {
			s.logger.Error("gesture loop stopped", "error", err)
		}
	}()
	go s.forwardDeckUpdates(ctx)
}

// ListenAndServe starts the server and blocks until ctx is done, then shuts down gracefully.
func (s *VinylServer) ListenAndServe(ctx context.Context) error {
	s.Start(ctx)

	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("vinyl server listening", "addr", s.opts.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *VinylServer) onRelease(r rotation.Release) {
	s.hub.Broadcast(TypeRelease, r)
	if r.Effective == rotation.ZonePaginate {
		s.hub.Broadcast(TypeDeck, s.deckView())
	}
}

func (s *VinylServer) forwardDeckUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case u := <-s.deck.Updates():
			s.hub.Broadcast(TypeDeckUpdate, updateView(u))
			if u.Done {
				s.hub.Broadcast(TypeDeck, s.deckView())
			}
		}
	}
}

func updateView(u deck.Update) DeckUpdateView {
	v := DeckUpdateView{Mode: u.Mode, Done: u.Done, Message: u.Mode.Describe()}
	if u.Progress != nil {
		v.Step, v.Total = u.Progress.Step, u.Progress.Total
		if u.Progress.Message != "" {
			v.Message = u.Progress.Message
		}
	}
	if u.Err != nil {
		v.Error = u.Err.Error()
	}
	return v
}

func (s *VinylServer) deckView() DeckView {
	mood := s.deck.Mood()
	current := s.deck.Current()
	return DeckView{
		Index:   s.deck.Index(),
		Current: current,
		Items:   s.deck.Items(),
		Genres:  s.deck.Genres(),
		Mood:    mood,
		Loading: s.deck.Loading(),
		Accent:  theme.Accent(current.Genre),
		Theme:   theme.Background(mood),
		Dark:    theme.IsDark(mood),
	}
}

func (s *VinylServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade failed", "error", err)
		return
	}

	client := NewClient(s.hub, conn, r.RemoteAddr)
	if msg, err := encode(TypeInit, initView{Frame: s.snapshot(), Deck: s.deckView()}, time.Now().UTC()); err == nil {
		client.enqueue(msg)
	}
	s.hub.register <- client

	go client.writePump()
	go client.readPump(
		func(env Envelope) { s.handleMessage(client, env) },
		func() { s.dropDrag(client) },
	)
}

func (s *VinylServer) handleMessage(c *Client, env Envelope) {
	if env.Type != TypePointer {
		s.logger.Debug("ws message ignored", "type", env.Type)
		return
	}
	var ev rotation.PointerEvent
	if err := json.Unmarshal(env.Data, &ev); err != nil {
		s.logger.Warn("bad pointer event", "error", err)
		return
	}
	if !s.claimDrag(c, ev.Kind) {
		s.logger.Debug("pointer event from another client ignored", "kind", ev.Kind, "remote_addr", c.remoteAddr)
		return
	}
	if s.loop != nil {
		s.loop.Send(ev)
	}
}

// claimDrag reports whether c may send a pointer event of kind. The first
// client to start a drag owns it until its end or cancel.
func (s *VinylServer) claimDrag(c *Client, kind rotation.PointerKind) bool {
	s.dragMu.Lock()
	defer s.dragMu.Unlock()

	switch kind {
	case rotation.PointerStart:
		if s.dragger != nil && s.dragger != c {
			return false
		}
		s.dragger = c
	case rotation.PointerMoved:
		return s.dragger == c
	case rotation.PointerEnd, rotation.PointerCancel:
		if s.dragger != c {
			return false
		}
		s.dragger = nil
	}
	return true
}

// dropDrag cancels the drag of a client that went away mid-gesture.
func (s *VinylServer) dropDrag(c *Client) {
	s.dragMu.Lock()
	owned := s.dragger == c
	if owned {
		s.dragger = nil
	}
	s.dragMu.Unlock()

	if owned && s.loop != nil {
		s.logger.Debug("client left mid-drag, cancelling", "remote_addr", c.remoteAddr)
		s.loop.Send(rotation.PointerEvent{Kind: rotation.PointerCancel})
	}
}

func (s *VinylServer) snapshot() rotation.Snapshot {
	if s.loop == nil {
		return rotation.Snapshot{}
	}
	return s.loop.Snapshot()
}

// deckAPI serves the deck read and rebuild endpoints.
type deckAPI struct{ s *VinylServer }

func (deckAPI) Routes() []string {
	return []string{"GET /api/deck", "POST /api/deck/regenerate"}
}

func (a deckAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		a.s.handleRegenerate(w, r)
		return
	}
	writeJSON(w, http.StatusOK, a.s.deckView())
}

func (s *VinylServer) handleVinyl(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (s *VinylServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "clients": s.hub.Clients()})
}

func (s *VinylServer) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	// Rebuilds outlive the request.
	ctx := context.WithoutCancel(r.Context())

	var err error
	switch scope := r.URL.Query().Get("scope"); scope {
	case "", "current":
		err = s.deck.RegenerateCurrent(ctx)
	case "all":
		err = s.deck.RegenerateAll(ctx)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "scope must be current or all"})
		return
	}

	if errors.Is(err, shared.ErrDeckBusy) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"loading": string(s.deck.Loading())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
