package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clearhaul/dispatch-cli/internal/extract"
	"github.com/clearhaul/dispatch-cli/internal/model"
	"github.com/clearhaul/dispatch-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the extraction webhook server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		areas, err := initAreas(cfg)
		if err != nil {
			return err
		}
		st, err := initStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		router := buildRouter(st, areas, cfg.Server.RateLimit, time.Duration(cfg.Server.RateWindowSec)*time.Second, cfg.Server.CORSOrigins)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// buildRouter wires the webhook and order-read endpoints. Split out from the
// command so tests can drive it with httptest.
func buildRouter(st store.Store, areas extract.AreaResolver, rateLimit int, rateWindow time.Duration, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	if rateLimit > 0 {
		r.Use(httprate.LimitByIP(rateLimit, rateWindow))
	}
	if len(corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]string{"status": "ok"})
	})

	r.Post("/webhook/extraction", func(w http.ResponseWriter, req *http.Request) {
		var raw any
		if err := json.NewDecoder(req.Body).Decode(&raw); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]string{"error": "invalid request body"})
			return
		}

		form := extract.InitForm(raw, areas)
		if form == nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]string{"error": "payload is not an object-like document"})
			return
		}

		order, err := st.CreateOrder(req.Context(), form, model.OrderSourceWebhook)
		if err != nil {
			zap.L().Error("webhook order create failed", zap.Error(err))
			render.Status(req, http.StatusInternalServerError)
			render.JSON(w, req, map[string]string{"error": "store order"})
			return
		}

		zap.L().Info("webhook order created",
			zap.String("id", order.ID),
			zap.String("vin", form.Vehicle.VIN),
			zap.String("service_type", string(form.Service.ServiceType)),
		)
		render.Status(req, http.StatusAccepted)
		render.JSON(w, req, map[string]string{
			"status":   "accepted",
			"order_id": order.ID,
		})
	})

	r.Get("/orders/{id}", func(w http.ResponseWriter, req *http.Request) {
		order, err := st.GetOrder(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			render.Status(req, http.StatusNotFound)
			render.JSON(w, req, map[string]string{"error": "order not found"})
			return
		}
		render.JSON(w, req, order)
	})

	return r
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
