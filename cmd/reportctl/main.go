// Command reportctl submits a sample game report to the loopback
// reporter process and exits with the submission result: 0 delivered,
// 1 rejected by the receiver, 2 a field was over its byte ceiling,
// 3 transport or bootstrap failure.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/reportctl/internal/connector"
	"github.com/danmuck/reportctl/internal/logging"
	"github.com/danmuck/reportctl/internal/protocol/wire"
	"github.com/danmuck/reportctl/internal/report"
)

func main() {
	logging.ConfigureRuntime()

	cfgPath := flag.String("config", "", "optional toml config path")
	flag.Parse()

	cfg := connector.DefaultConfig()
	if *cfgPath != "" {
		loaded, err := loadConnectorConfig(*cfgPath)
		if err != nil {
			log.Error().Err(err).Str("path", *cfgPath).Msg("config load failed")
			os.Exit(3)
		}
		cfg = loaded
	}

	rep := report.GameReport{
		ReportName:  "Sample report",
		ReportText:  "This is a sample report with a non-ascii symbol: 仮",
		SenderName:  "tester",
		SenderEmail: "tester@example.com",
		GameName:    "TestGame",
		GameVersion: "v1.0.0",
	}

	code, err := connector.New(cfg).Submit(context.Background(), rep)
	switch connector.ExitCode(code, err) {
	case -2:
		log.Error().Err(err).Msg("report field over its byte ceiling")
		os.Exit(2)
	case -1:
		log.Error().Err(err).Msg("submission failed")
		os.Exit(3)
	default:
		if code == wire.AnswerOK {
			log.Info().Msg("report delivered")
			return
		}
		log.Warn().Stringer("answer", code).Msg("receiver rejected report")
		os.Exit(1)
	}
}
