package cmd

import (
	"clinic-booking/common/constant"
	"clinic-booking/common/otel"
	inboundCron "clinic-booking/inbound/cron"
	inboundHttp "clinic-booking/inbound/http"
	"clinic-booking/outbound/depositstore"
	"clinic-booking/outbound/paysession"
	"clinic-booking/outbound/upstream"
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"runtime/pprof"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func runHttpServerCmd(ctx context.Context) {
	cfg := newCfg("env")

	if cfg.GetString("env") == "dev" {
		cpu, err := os.Create("http-cpu.prof")
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		defer cpu.Close()

		err = pprof.StartCPUProfile(cpu)
		if err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()

		mem, err := os.Create("http-mem.prof")
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer mem.Close()

		err = pprof.WriteHeapProfile(mem)
		if err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
		defer mem.Close()
	}

	if endpoint := cfg.GetString("otel.endpoint"); endpoint != "" {
		shutdown, err := otel.InitTracerProvider(ctx, endpoint)
		if err != nil {
			log.Fatalln("unable to init tracer provider", err)
		}
		defer shutdown(context.Background())
	}

	validate := validator.New()

	db := newDb(cfg)
	defer db.Close()

	cacheClient := newRedis(cfg)
	defer cacheClient.Close()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)
	createStreamWorkQueue(ctx, js)

	store := depositstore.New(db)

	paySessions := paysession.NewManager(paysession.NatsSubscriber{Conn: natsConn})
	defer paySessions.Close()

	walletClient := upstream.NewWalletClient(newUpstreamClient(cfg, "wallet"))
	scheduleClient := upstream.NewScheduleClient(newUpstreamClient(cfg, "schedule"))
	addressClient := upstream.NewAddressClient(newUpstreamClient(cfg, "address"))
	clinicClient := upstream.NewClinicClient(newUpstreamClient(cfg, "clinic"))

	vndCurrencyFormatter := message.NewPrinter(language.Vietnamese)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		slog.DebugContext(r.Context(), "health check")
		w.WriteHeader(http.StatusOK)
	})

	jwtSecret := []byte(cfg.GetString("auth.jwt_secret"))
	customerAuth := inboundHttp.AuthMiddleware(jwtSecret, constant.RoleCustomer)
	staffAuth := inboundHttp.AuthMiddleware(jwtSecret, constant.RoleClinicStaff)

	customerMux := http.NewServeMux()
	staffMux := http.NewServeMux()

	inboundHttp.RegisterDepositHttp(customerMux, mux, cfg, store, cacheClient, walletClient, paySessions, js, validate, vndCurrencyFormatter)
	inboundHttp.RegisterProfileHttp(customerMux, cacheClient, walletClient)
	inboundHttp.RegisterScheduleHttp(staffMux, customerMux, cfg, scheduleClient, cacheClient)
	inboundHttp.RegisterWorkingHoursHttp(staffMux, scheduleClient, validate)
	inboundHttp.RegisterClinicHttp(staffMux, cfg, clinicClient, validate)
	inboundHttp.RegisterAddressHttp(mux, cfg, addressClient, cacheClient, validate)
	inboundHttp.RegisterPaymentHttp(mux, js, paySessions, validate)

	mux.Handle("/api/deposits", customerAuth(customerMux))
	mux.Handle("/api/deposits/", customerAuth(customerMux))
	mux.Handle("/api/profile", customerAuth(customerMux))
	mux.Handle("/api/customer/", customerAuth(customerMux))
	mux.Handle("/api/clinic/", staffAuth(staffMux))
	mux.Handle("/api/clinics/", staffAuth(staffMux))
	mux.Handle("/api/doctors/", staffAuth(staffMux))

	addressCron := &inboundCron.AddressCron{
		Cfg:       cfg,
		Addresses: addressClient,
	}

	timeoutMiddleware := inboundHttp.TimeoutMiddleware(20 * time.Second)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.GetInt("server.port")),
		Handler:           timeoutMiddleware(inboundHttp.CorsMiddleware(mux)),
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalln("unable to start server", err)
		}
	}()

	slog.Info("http server started")

	go func() {
		addressCron.Start(ctx)
	}()

	<-ctx.Done()

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutDown); err != nil {
		log.Fatalln("unable to shutdown server", err)
	}

	slog.Info("http server stopped")
}
