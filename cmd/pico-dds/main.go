package main

import (
	"context"
	"runtime"
	"time"

	"sinedac-go/platform"
	"sinedac-go/services/config"
	"sinedac-go/services/heartbeat"
	"sinedac-go/services/synth"
	"sinedac-go/x/logx"
)

const (
	board         = config.DefaultBoard
	statsInterval = 5 * time.Second
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	ctx := context.Background()

	console := platform.DefaultConsole()
	_, _ = console.Write([]byte("Hello, DAC!\r\n"))
	log := logx.Console{W: console}

	cfg, err := config.Lookup(board)
	if err != nil {
		halt(log, "config lookup failed", err)
	}

	dac, err := platform.DefaultDAC(cfg.SPIHz)
	if err != nil {
		halt(log, "spi0 setup failed", err)
	}

	// The table is built and the increment fixed before the timer is armed.
	svc := synth.New(cfg, dac, synth.WithLogger(log))
	if err := svc.Init(); err != nil {
		halt(log, "synth init failed", err)
	}
	printMem()

	hb := &heartbeat.Service{Pin: platform.DefaultLED(), Log: log}
	hb.Start(ctx)

	go svc.Monitor(ctx, statsInterval)
	runErr := svc.Run(ctx)
	if ch, err := synth.ParseChannel(cfg.Channel); err == nil {
		if err := dac.Shutdown(ch); err != nil {
			log.Warnw("dac shutdown failed", "err", err)
		}
	}
	if runErr != nil {
		halt(log, "synth stopped", runErr)
	}
	select {}
}

// halt reports a fatal startup error and parks; firmware has nowhere to
// exit to.
func halt(log logx.Logger, msg string, err error) {
	log.Warnw(msg, "err", err)
	for {
		time.Sleep(time.Second)
	}
}

// printMem prints a compact snapshot of TinyGo runtime memory stats.
// Uses builtin println to avoid fmt overhead/allocations.
func printMem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	println(
		"[mem]",
		"alloc:", uint32(ms.Alloc),
		"heapInuse:", uint32(ms.HeapInuse),
		"heapSys:", uint32(ms.HeapSys),
		"mallocs:", uint32(ms.Mallocs),
	)
}
