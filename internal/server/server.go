package server

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/hydroapp/hydro/internal/alarm"
	"github.com/hydroapp/hydro/internal/app"
	"github.com/hydroapp/hydro/internal/auth"
	"github.com/hydroapp/hydro/internal/clock"
	"github.com/hydroapp/hydro/internal/handler"
	"github.com/hydroapp/hydro/internal/middleware"
	"github.com/hydroapp/hydro/internal/notify"
	"github.com/hydroapp/hydro/internal/store"
	ws "github.com/hydroapp/hydro/internal/websocket"
)

// Config carries everything the server needs beyond the database handle.
type Config struct {
	Location        *time.Location
	JWTSecret       []byte
	PasswordHash    []byte
	VAPIDPublicKey  string
	VAPIDPrivateKey string
}

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	appStore    *app.Store
	scheduler   *alarm.Scheduler
	watcher     *clock.DateWatcher
	authH       *handler.AuthHandler
	stateH      *handler.StateHandler
	hydrationH  *handler.HydrationHandler
	settingsH   *handler.SettingsHandler
	reminderH   *handler.ReminderHandler
	historyH    *handler.HistoryHandler
	pushH       *handler.PushHandler
	authSvc     *auth.Service
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) (*Server, error) {
	hub := ws.NewHub(logger.With("component", "websocket"))

	dayStore := store.NewDayStore(db)
	settingsStore := store.NewSettingsStore(db)
	pushStore := store.NewPushStore(db)

	notifier := notify.NewService(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, pushStore, logger.With("component", "notify"))
	scheduler := alarm.NewScheduler(notifier, cfg.Location, logger.With("component", "alarm"))

	appStore, err := app.New(dayStore, settingsStore, notifier, scheduler, cfg.Location, logger.With("component", "app"))
	if err != nil {
		return nil, err
	}
	appStore.Subscribe(hub.BroadcastState)

	// Reminder fire times resolve to the reminder notification intent.
	scheduler.OnFire(func() {
		if err := appStore.Dispatch(context.Background(), app.ShowReminderNotification{}); err != nil {
			logger.Error("reminder fire", "error", err)
		}
	})

	watcher := clock.NewDateWatcher(cfg.Location, appStore.OnDateChanged, logger.With("component", "clock"))

	authSvc := auth.New(cfg.JWTSecret, cfg.PasswordHash)

	return &Server{
		db:          db,
		hub:         hub,
		appStore:    appStore,
		scheduler:   scheduler,
		watcher:     watcher,
		authH:       handler.NewAuthHandler(authSvc, logger.With("component", "auth")),
		stateH:      handler.NewStateHandler(appStore, logger.With("component", "state")),
		hydrationH:  handler.NewHydrationHandler(appStore, logger.With("component", "hydration")),
		settingsH:   handler.NewSettingsHandler(appStore, logger.With("component", "settings")),
		reminderH:   handler.NewReminderHandler(appStore, logger.With("component", "reminder")),
		historyH:    handler.NewHistoryHandler(dayStore, cfg.Location, logger.With("component", "history")),
		pushH:       handler.NewPushHandler(pushStore, notifier, logger.With("component", "push")),
		authSvc:     authSvc,
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}, nil
}

// Start launches the background loops: the reminder scheduler, the date
// watcher, and the re-arming of any persisted reminder.
func (s *Server) Start(ctx context.Context) {
	s.scheduler.Start(ctx)
	s.watcher.Start(ctx)

	if err := s.appStore.Dispatch(ctx, app.RestartReminder{}); err != nil {
		// A missing notification channel is expected on fresh installs.
		s.logger.Warn("restore reminder schedule", "error", err)
	}
}

// Stop shuts down the background loops.
func (s *Server) Stop() {
	s.watcher.Stop()
	s.scheduler.Stop()
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	loginLimit := middleware.RateLimit(s.rateLimiter, middleware.RealIP, 5, time.Minute)
	outerMux.Handle("POST /login", loginLimit(http.HandlerFunc(s.authH.Login)))
	outerMux.HandleFunc("POST /logout", s.authH.Logout)
	outerMux.HandleFunc("GET /health", s.healthHandler)

	protectedMux := http.NewServeMux()
	s.registerAPIRoutes(protectedMux)
	outerMux.Handle("/", middleware.RequireAuth(s.authSvc)(protectedMux))

	return middleware.RequestLogger(s.logger)(outerMux)
}

func (s *Server) registerAPIRoutes(mux *http.ServeMux) {
	// State
	mux.HandleFunc("GET /api/state", s.stateH.Get)
	mux.HandleFunc("PUT /api/state/foreground", s.stateH.SetForeground)

	// Hydration intake
	mux.HandleFunc("POST /api/hydration", s.hydrationH.Add)
	mux.HandleFunc("DELETE /api/hydration/today", s.hydrationH.ResetToday)

	// Onboarding
	mux.HandleFunc("POST /api/onboarding/seed", s.hydrationH.SeedOnboarding)
	mux.HandleFunc("POST /api/onboarding/complete", s.hydrationH.CompleteOnboarding)

	// Settings
	mux.HandleFunc("PUT /api/settings/goal", s.settingsH.SetGoal)
	mux.HandleFunc("PUT /api/settings/theme", s.settingsH.SetTheme)
	mux.HandleFunc("PUT /api/settings/unit", s.settingsH.SetUnit)
	mux.HandleFunc("PUT /api/settings/cups", s.settingsH.SetCups)
	mux.HandleFunc("DELETE /api/data", s.settingsH.DeleteAll)

	// Reminder
	mux.HandleFunc("PUT /api/reminder", s.reminderH.Set)
	mux.HandleFunc("DELETE /api/reminder", s.reminderH.Delete)
	mux.HandleFunc("POST /api/reminder/restart", s.reminderH.Restart)
	mux.HandleFunc("POST /api/reminder/test", s.reminderH.Test)

	// History
	mux.HandleFunc("GET /api/history", s.historyH.List)
	mux.HandleFunc("GET /api/history/{date}", s.historyH.Get)
	mux.HandleFunc("DELETE /api/history/{date}", s.historyH.Delete)

	// Push subscriptions
	mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
	mux.HandleFunc("DELETE /api/push/subscribe", s.pushH.Unsubscribe)
	mux.HandleFunc("GET /api/push/subscriptions", s.pushH.List)
	mux.HandleFunc("GET /api/push/vapid-key", s.pushH.VAPIDKey)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
