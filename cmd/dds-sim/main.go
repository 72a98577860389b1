//go:build !rp2040 && !rp2350

// Command dds-sim runs the synth service on the host against an in-memory
// SPI bus. It logs with zap, serves Prometheus metrics and can dump the
// captured DAC words as CSV.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sinedac-go/dds"
	"sinedac-go/drivers/mcp4822"
	"sinedac-go/metrics"
	"sinedac-go/platform"
	"sinedac-go/services/synth"
	"sinedac-go/types"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := loadEnv(osGetenv)
	if err != nil {
		logger.Fatal("invalid environment", zap.Error(err))
	}
	logger.Info("dds-sim starting",
		zap.String("board", cfg.Board),
		zap.Uint32("tone_hz", cfg.Synth.ToneHz),
		zap.Uint32("sample_hz", cfg.Synth.SampleHz),
		zap.Duration("duration", cfg.Duration),
	)

	dac, bus := platform.NewHostDAC(0)
	bus.Delay = cfg.BusDelay

	svc := synth.New(cfg.Synth, dac, synth.WithLogger(logger.Sugar()))
	if err := svc.Init(); err != nil {
		logger.Fatal("synth init failed", zap.Error(err))
	}

	var srv *http.Server
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		if err := metrics.Register(reg, svc, svc.Info()); err != nil {
			logger.Fatal("metrics registration failed", zap.Error(err))
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("metrics listening", zap.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	go svc.Monitor(ctx, cfg.StatsEvery)
	if err := svc.Run(ctx); err != nil {
		logger.Error("synth stopped with error", zap.Error(err))
	}
	if err := silence(dac, cfg.Synth.Channel); err != nil {
		logger.Error("dac shutdown failed", zap.Error(err))
	}

	st := svc.Stats()
	logger.Info("dds-sim done",
		zap.Uint64("ticks", st.Ticks),
		zap.Uint64("overruns", st.Overruns),
		zap.Uint64("dropped", st.Dropped),
		zap.Uint64("bus_words", bus.Count()),
	)

	if cfg.CapturePath != "" {
		if err := dumpCapture(cfg.CapturePath, bus.Words(), svc.Info()); err != nil {
			logger.Error("capture write failed", zap.String("path", cfg.CapturePath), zap.Error(err))
		} else {
			logger.Info("capture written", zap.String("path", cfg.CapturePath))
		}
	}

	if srv != nil {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}
}

// silence powers down the output the synth was driving.
func silence(dac *mcp4822.Device, channel string) error {
	ch, err := synth.ParseChannel(channel)
	if err != nil {
		return err
	}
	return dac.Shutdown(ch)
}

func dumpCapture(path string, words []uint16, info types.SynthInfo) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return writeCapture(f, words, dds.WordFormat{Config: info.ConfigBits, Bits: info.DACBits})
}
