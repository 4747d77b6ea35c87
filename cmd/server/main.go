// Command server runs the café dashboard API: authentication, orders,
// inventory, feedback, analytics and the admin surfaces, all behind
// role-based capability gates with per-café tenant isolation.
package main

import (
	"context"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/smartcafe/cafehub/modules/analytics"
	"github.com/smartcafe/cafehub/modules/auth"
	"github.com/smartcafe/cafehub/modules/cafes"
	"github.com/smartcafe/cafehub/modules/feedback"
	"github.com/smartcafe/cafehub/modules/inventory"
	"github.com/smartcafe/cafehub/modules/orders"
	"github.com/smartcafe/cafehub/modules/users"
	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/config"
	"github.com/smartcafe/cafehub/pkg/httpserver"
	"github.com/smartcafe/cafehub/pkg/logger"
	"github.com/smartcafe/cafehub/pkg/mongo"
	"github.com/smartcafe/cafehub/pkg/navigation"
	"github.com/smartcafe/cafehub/pkg/redis"
	"github.com/smartcafe/cafehub/pkg/response"
	"github.com/smartcafe/cafehub/pkg/scope"
	"github.com/smartcafe/cafehub/pkg/session"
)

// appConfig holds the top-level settings not owned by a package.
type appConfig struct {
	OwnerEmail    string `env:"OWNER_EMAIL,required"`                                // OwnerEmail grants full access regardless of stored role.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`  // PublicBaseURL is the origin encoded into QR codes.
	SessionStore  string `env:"SESSION_STORE" envDefault:"memory"`                   // SessionStore is memory or redis.
}

func main() {
	var (
		appCfg     appConfig
		logCfg     logger.Config
		mongoCfg   mongo.Config
		redisCfg   redis.Config
		sessionCfg session.Config
		googleCfg  auth.GoogleConfig
		serverCfg  httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&logCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&sessionCfg)
	config.MustLoad(&googleCfg)
	config.MustLoad(&serverCfg)

	log := logger.NewFromConfig(logCfg)
	ctx := context.Background()

	db, err := mongo.Connect(ctx, mongoCfg)
	if err != nil {
		log.Error("mongo connection failed", logger.Error(err))
		os.Exit(1)
	}

	var sessionStore session.Store
	switch appCfg.SessionStore {
	case "redis":
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			log.Error("redis connection failed", logger.Error(err))
			os.Exit(1)
		}
		defer client.Close()
		sessionStore = session.NewRedisStore(client)
	default:
		memStore := session.NewMemoryStore(sessionCfg.CleanupInterval)
		defer memStore.Close()
		sessionStore = memStore
	}

	resolver := access.NewResolver(appCfg.OwnerEmail)
	scoper := scope.NewScoper(resolver)

	userStore := users.NewStore(db)
	sessions := session.NewManager(resolver, userStore,
		session.WithStore(sessionStore),
		session.WithConfig(sessionCfg),
		session.WithTransport(session.NewCookieTransport(sessionCfg.CookieName, sessionCfg.SecureCookies)),
		session.WithLogger(log.With(logger.Component("session"))),
	)

	authSvc := auth.NewService(userStore, sessions, log.With(logger.Component("auth")))
	var google *auth.GoogleProvider
	if googleCfg.Enabled() {
		google = auth.NewGoogleProvider(googleCfg, userStore, authSvc)
	}

	userSvc := users.NewService(userStore, scoper, log.With(logger.Component("users")))
	orderStore := orders.NewMongoStore(db)
	orderSvc := orders.NewService(orderStore, scoper, log.With(logger.Component("orders")))
	invStore := inventory.NewMongoStore(db)
	invSvc := inventory.NewService(invStore, scoper, log.With(logger.Component("inventory")))
	fbStore := feedback.NewMongoStore(db)
	fbSvc := feedback.NewService(fbStore, scoper, log.With(logger.Component("feedback")))
	analyticsSvc := analytics.NewService(orderStore, invStore, fbStore, scoper)
	cafeSvc := cafes.NewService(cafes.NewMongoStore(db), log.With(logger.Component("cafes")))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(session.Middleware(sessions))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Mount("/auth", auth.Router(authSvc, sessions, google))
	r.Mount("/feedback", feedback.PublicRouter(fbSvc))

	r.Route("/api", func(r chi.Router) {
		r.Use(session.RequireAuth)

		r.Get("/navigation", navigationHandler())
		r.Mount("/orders", orders.Router(orderSvc))
		r.Mount("/inventory", inventory.Router(invSvc))
		r.Mount("/feedback", feedback.Router(fbSvc, appCfg.PublicBaseURL))
		r.Mount("/analytics", analytics.Router(analyticsSvc))
		r.Mount("/users", users.Router(userSvc))
		r.Mount("/cafes", cafes.Router(cafeSvc))
	})

	srv := httpserver.New(serverCfg, log.With(logger.Component("http")))
	if err := srv.Run(ctx, r); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

// navigationHandler returns the sections the session may see, so the
// client renders only reachable pages.
func navigationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		sections := navigation.Visible(sess.Allowed(), sess.Admin())
		response.JSON(w, http.StatusOK, sections)
	}
}
