// Command reporterd runs the loopback report receiver. It logs every
// accepted game report and optionally exposes a loopback admin
// endpoint with health and prometheus metrics routes.
package main

import (
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/reportctl/internal/logging"
	"github.com/danmuck/reportctl/internal/observability"
	"github.com/danmuck/reportctl/internal/receiver"
	"github.com/danmuck/reportctl/internal/report"
)

var startedAt = time.Now()

func main() {
	logging.ConfigureRuntime()

	cfgPath := flag.String("config", "", "optional toml config path")
	addr := flag.String("addr", "", "listen address override")
	adminAddr := flag.String("admin", "", "admin listen address override")
	flag.Parse()

	cfg := defaultDaemonConfig()
	if *cfgPath != "" {
		loaded, err := loadDaemonConfig(*cfgPath)
		if err != nil {
			log.Error().Err(err).Str("path", *cfgPath).Msg("config load failed")
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Address = *addr
	}
	if *adminAddr != "" {
		cfg.AdminAddress = *adminAddr
	}

	rcv, err := receiver.Listen(receiver.Config{
		Address: cfg.Address,
		Handler: logReport,
	})
	if err != nil {
		log.Error().Err(err).Msg("bind receiver socket")
		os.Exit(1)
	}
	log.Info().Str("addr", rcv.Addr().String()).Msg("listening for reports")

	if cfg.AdminAddress != "" {
		go serveAdmin(cfg.AdminAddress)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sig
		log.Info().Stringer("signal", s).Msg("shutting down")
		_ = rcv.Close()
	}()

	if err := rcv.Serve(); err != nil {
		log.Error().Err(err).Msg("receiver stopped")
		os.Exit(1)
	}
}

func logReport(rep report.GameReport, from net.Addr) {
	log.Info().
		Str("from", from.String()).
		Str("report_name", rep.ReportName).
		Str("sender_name", rep.SenderName).
		Str("sender_email", rep.SenderEmail).
		Str("game_name", rep.GameName).
		Str("game_version", rep.GameVersion).
		Int("text_bytes", len(rep.ReportText)).
		Msg("report received")
}

func serveAdmin(addr string) {
	observability.RegisterMetrics()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(startedAt).String(),
			"service": "reporterd",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Info().Str("addr", addr).Msg("admin endpoint listening")
	if err := r.Run(addr); err != nil {
		log.Error().Err(err).Msg("admin endpoint stopped")
	}
}
