//go:build !rp2040 && !rp2350

package main

import (
	"os"
	"strconv"
	"time"

	"sinedac-go/errcode"
	"sinedac-go/services/config"
	"sinedac-go/types"
)

// simConfig is the simulator's environment-driven configuration.
type simConfig struct {
	Board       string
	Synth       types.SynthConfig
	MetricsAddr string        // "" disables the endpoint
	Duration    time.Duration // 0 runs until SIGINT/SIGTERM
	StatsEvery  time.Duration
	CapturePath string // CSV of captured DAC words; "" disables
	BusDelay    time.Duration
}

func loadEnv(getenv func(string) string) (simConfig, error) {
	c := simConfig{
		Board:       getEnvOr(getenv, "DDS_BOARD", config.DefaultBoard),
		MetricsAddr: getEnvOr(getenv, "DDS_METRICS_ADDR", ":9102"),
		CapturePath: getenv("DDS_CAPTURE"),
	}

	sc, err := config.Lookup(c.Board)
	if err != nil {
		return c, err
	}
	if err := overrideU32(getenv, "DDS_TONE_HZ", &sc.ToneHz); err != nil {
		return c, err
	}
	if err := overrideU32(getenv, "DDS_SAMPLE_HZ", &sc.SampleHz); err != nil {
		return c, err
	}
	if v := getenv("DDS_CHANNEL"); v != "" {
		sc.Channel = v
	}
	c.Synth = sc

	if c.Duration, err = durationEnv(getenv, "DDS_DURATION", 0); err != nil {
		return c, err
	}
	if c.StatsEvery, err = durationEnv(getenv, "DDS_STATS_EVERY", time.Second); err != nil {
		return c, err
	}
	if c.BusDelay, err = durationEnv(getenv, "DDS_BUS_DELAY", 0); err != nil {
		return c, err
	}
	return c, nil
}

func getEnvOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func overrideU32(getenv func(string) string, key string, dst *uint32) error {
	v := getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return errcode.Wrap(errcode.InvalidConfig, key, err)
	}
	*dst = uint32(n)
	return nil
}

func durationEnv(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errcode.Wrap(errcode.InvalidConfig, key, err)
	}
	return d, nil
}

var osGetenv = os.Getenv
