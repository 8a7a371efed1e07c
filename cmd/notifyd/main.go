package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sparklean/notify/pkg/config"
	"github.com/sparklean/notify/pkg/dispatch"
	"github.com/sparklean/notify/pkg/email"
	"github.com/sparklean/notify/pkg/httpserver"
	"github.com/sparklean/notify/pkg/hub"
	"github.com/sparklean/notify/pkg/logger"
	"github.com/sparklean/notify/pkg/notification"
	"github.com/sparklean/notify/pkg/queue"
	"github.com/sparklean/notify/pkg/sms"
	"github.com/sparklean/notify/pkg/stream"
)

// userIDHeader stands in for the platform's session middleware, which
// is out of scope here. The reverse proxy in front of this service is
// expected to strip and re-set it from the authenticated session.
const userIDHeader = "X-User-ID"

func main() {
	var (
		logCfg    logger.Config
		httpCfg   httpserver.Config
		streamCfg stream.Config
		queueCfg  queue.Config
		emailCfg  email.Config
		smsCfg    sms.Config
	)
	config.MustLoad(&logCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&streamCfg)
	config.MustLoad(&queueCfg)
	config.MustLoad(&emailCfg)
	config.MustLoad(&smsCfg)

	log := logger.NewFromConfig(logCfg, logger.WithAttr(slog.String("service", "notifyd")))
	logger.SetAsDefault(log)

	ctx := context.Background()

	store := notification.NewMemoryStore()
	events := hub.New(hub.WithLogger(log))
	defer events.Close()

	mailer := newMailer(emailCfg, log)
	texter := newTexter(smsCfg, log)

	dispatcher := dispatch.NewDispatcher(store, events, []dispatch.ChannelSender{
		dispatch.NewInAppSender(),
		dispatch.NewEmailChannelSender(mailer),
		dispatch.NewSMSChannelSender(texter),
	}, dispatch.WithDispatcherLogger(log))

	jobs := queue.New(dispatcher, queueCfg, queue.WithLogger(log))
	jobs.Start(ctx)
	defer jobs.Stop()

	streamHandler := stream.NewHandler(events, store, identify, streamCfg,
		stream.WithHandlerLogger(log))

	api := &apiHandlers{store: store, events: events, jobs: jobs, logger: log}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/stream", streamHandler.ServeHTTP)
		r.Get("/", api.listNotifications)
		r.Patch("/read-all", api.markAllRead)
		r.Patch("/{notificationID}/read", api.markRead)
	})
	r.Post("/dispatch", api.enqueueDispatch)
	r.Get("/queue/status", api.queueStatus)

	srv := httpserver.New(httpCfg, log)
	if err := srv.Run(ctx, r); err != nil {
		log.LogAttrs(ctx, slog.LevelError, "server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func identify(r *http.Request) (string, error) {
	return r.Header.Get(userIDHeader), nil
}

func newMailer(cfg email.Config, log *slog.Logger) email.Sender {
	if cfg.Enabled() {
		sender, err := email.NewPostmarkSender(cfg)
		if err != nil {
			log.LogAttrs(context.Background(), slog.LevelError, "postmark sender unavailable, using dev sender",
				logger.Error(err))
			return email.NewDevSender(log)
		}
		return sender
	}
	return email.NewDevSender(log)
}

func newTexter(cfg sms.Config, log *slog.Logger) sms.Sender {
	if cfg.Enabled() {
		sender, err := sms.NewTwilioSender(cfg)
		if err != nil {
			log.LogAttrs(context.Background(), slog.LevelError, "twilio sender unavailable, using dev sender",
				logger.Error(err))
			return sms.NewDevSender(log)
		}
		return sender
	}
	return sms.NewDevSender(log)
}
