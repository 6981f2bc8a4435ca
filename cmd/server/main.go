package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/config"
	"github.com/earnbuddy/backend/internal/handlers"
	appMiddleware "github.com/earnbuddy/backend/internal/middleware"
	"github.com/earnbuddy/backend/internal/realtime"
	"github.com/earnbuddy/backend/internal/seed"
	"github.com/earnbuddy/backend/internal/services"
	"github.com/earnbuddy/backend/internal/session"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	hub := realtime.NewHub(logger)

	var (
		podSvc          services.PodService
		postSvc         services.PostService
		roomSvc         services.RoomService
		startupSvc      services.StartupService
		gigSvc          services.GigService
		profileSvc      services.ProfileService
		notificationSvc services.NotificationService
	)

	switch cfg.Backend {
	case "mongo":
		db, err := services.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			logger.Fatal("mongo connection failed", zap.Error(err))
		}
		if db == nil {
			logger.Warn("MONGO_URI not set, data operations will fail until configured")
		}
		podSvc = services.NewMongoPodService(ctx, db, logger)
		postSvc = services.NewMongoPostService(ctx, db, logger)
		roomSvc = services.NewMongoRoomService(ctx, db, hub, logger)
		startupSvc = services.NewMongoStartupService(ctx, db, logger)
		gigSvc = services.NewMongoGigService(ctx, db, logger)
		profileSvc = services.NewMongoProfileService(ctx, db, logger)
		notificationSvc = services.NewMongoNotificationService(ctx, db, hub, logger)
	default:
		store, err := services.NewMemoryStore(cfg.DataDir, logger)
		if err != nil {
			logger.Fatal("memory store init failed", zap.Error(err))
		}
		podSvc = services.NewMemoryPodService(store)
		postSvc = services.NewMemoryPostService(store)
		roomSvc = services.NewMemoryRoomService(store, hub, logger)
		startupSvc = services.NewMemoryStartupService(store)
		gigSvc = services.NewMemoryGigService(store)
		profileSvc = services.NewMemoryProfileService(store)
		notificationSvc = services.NewMemoryNotificationService(store, hub, logger)
	}

	// Identity provider and request auth. Firebase mode verifies ID tokens
	// minted client-side; local mode runs its own accounts and JWTs.
	localProvider := session.NewLocalProvider()
	var (
		provider    session.IdentityProvider
		requireAuth func(http.Handler) http.Handler
	)
	switch cfg.AuthMode {
	case "firebase":
		fbProvider, err := session.NewFirebaseProvider(ctx, session.FirebaseConfig{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsFile: cfg.FirebaseCredentialsFile,
			WebAPIKey:       cfg.FirebaseWebAPIKey,
		}, logger)
		if err != nil {
			logger.Fatal("firebase provider init failed", zap.Error(err))
		}
		provider = fbProvider

		authClient, err := appMiddleware.NewFirebaseAuthClient(ctx, appMiddleware.FirebaseAuthConfig{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsFile: cfg.FirebaseCredentialsFile,
		})
		if err != nil {
			logger.Fatal("firebase auth client init failed", zap.Error(err))
		}
		requireAuth = appMiddleware.FirebaseAuth(authClient)
	default:
		provider = localProvider
		requireAuth = appMiddleware.JWTAuth(cfg.JWTSecret)
	}

	seeder := seed.NewSeeder(podSvc, postSvc, roomSvc, startupSvc, gigSvc, logger)
	sess := session.NewSession(ctx, provider, profileSvc, podSvc, seeder.Run, logger)
	defer sess.Close()

	podHandler := handlers.NewPodHandler(podSvc, logger)
	postHandler := handlers.NewPostHandler(postSvc, logger)
	roomHandler := handlers.NewRoomHandler(roomSvc, logger)
	startupHandler := handlers.NewStartupHandler(startupSvc, profileSvc, notificationSvc, logger)
	gigHandler := handlers.NewGigHandler(gigSvc, profileSvc, notificationSvc, logger)
	profileHandler := handlers.NewProfileHandler(profileSvc, logger)
	notificationHandler := handlers.NewNotificationHandler(notificationSvc, logger)
	authHandler := handlers.NewAuthHandler(localProvider, profileSvc, cfg.JWTSecret, cfg.JWTExpiration, logger)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		if cfg.AuthMode != "firebase" {
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		}

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/pods", func(r chi.Router) {
				r.Get("/", podHandler.ListPods)
				r.Post("/", podHandler.CreatePod)
				r.Route("/{podId}", func(r chi.Router) {
					r.Get("/", podHandler.GetPod)
					r.Post("/join", podHandler.JoinPod)
					r.Post("/leave", podHandler.LeavePod)
					r.Get("/posts", postHandler.ListPodPosts)
					r.Post("/posts", postHandler.CreatePost)
				})
			})

			r.Route("/posts/{postId}", func(r chi.Router) {
				r.Post("/like", postHandler.LikePost)
				r.Post("/unlike", postHandler.UnlikePost)
				r.Post("/bookmark", postHandler.BookmarkPost)
				r.Get("/replies", postHandler.ListReplies)
				r.Post("/replies", postHandler.CreateReply)
			})

			r.Route("/rooms", func(r chi.Router) {
				r.Get("/", roomHandler.ListRooms)
				r.Post("/", roomHandler.CreateRoom)
				r.Route("/{roomId}", func(r chi.Router) {
					r.Post("/join", roomHandler.JoinRoom)
					r.Get("/messages", roomHandler.ListMessages)
					r.Post("/messages", roomHandler.SendMessage)
				})
			})

			r.Route("/startups", func(r chi.Router) {
				r.Get("/", startupHandler.ListStartups)
				r.Post("/", startupHandler.CreateStartup)
				r.Get("/posted", startupHandler.ListPosted)
				r.Get("/bookmarked", startupHandler.ListBookmarked)
				r.Post("/{startupId}/apply", startupHandler.Apply)
				r.Post("/{startupId}/bookmark", profileHandler.BookmarkStartup)
				r.Delete("/{startupId}/bookmark", profileHandler.UnbookmarkStartup)
			})

			r.Route("/gigs", func(r chi.Router) {
				r.Get("/", gigHandler.ListGigs)
				r.Post("/", gigHandler.CreateGig)
				r.Get("/posted", gigHandler.ListPosted)
				r.Get("/bookmarked", gigHandler.ListBookmarked)
				r.Post("/{gigId}/apply", gigHandler.Apply)
				r.Post("/{gigId}/bookmark", profileHandler.BookmarkGig)
				r.Delete("/{gigId}/bookmark", profileHandler.UnbookmarkGig)
			})

			r.Route("/profiles", func(r chi.Router) {
				r.Get("/me", profileHandler.GetMyProfile)
				r.Put("/me", profileHandler.UpdateProfile)
				r.Get("/{uid}", profileHandler.GetProfile)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.ListNotifications)
				r.Post("/", notificationHandler.CreateNotification)
				r.Post("/{notificationId}/read", notificationHandler.MarkAsRead)
			})

			r.Get("/ws/rooms/{roomId}", roomHandler.StreamMessages)
			r.Get("/ws/notifications", notificationHandler.StreamNotifications)
		})
	})

	logger.Info("earnbuddy api server starting",
		zap.String("address", cfg.ServerAddress),
		zap.String("backend", cfg.Backend),
		zap.String("authMode", cfg.AuthMode))
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
