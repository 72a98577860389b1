// Package synth runs the DDS oscillator from a strict-period timer.
//
// Lifecycle:
//
//	uninitialized --Init--> ready --Run--> running --ctx cancelled--> stopped
//
// Init builds the table and validates the configuration; any error there
// is fatal for the caller. Run arms the timer and blocks. Cancelling the
// context only stops further ticks: table and accumulator are left as they
// were.
package synth

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"sinedac-go/dds"
	"sinedac-go/drivers/mcp4822"
	"sinedac-go/errcode"
	"sinedac-go/types"
	"sinedac-go/x/logx"
	"sinedac-go/x/timex"
)

// wordBits is the width of one DAC transfer on the bus.
const wordBits = 16

type Option func(*Service)

// WithLogger replaces the console logger.
func WithLogger(l logx.Logger) Option { return func(s *Service) { s.log = l } }

// WithRepeat replaces the timer service (tests drive ticks by hand).
func WithRepeat(r timex.RepeatFunc) Option { return func(s *Service) { s.repeat = r } }

type Service struct {
	cfg    types.SynthConfig
	out    dds.Transport
	log    logx.Logger
	repeat timex.RepeatFunc

	mu     sync.Mutex
	state  types.SynthState
	osc    *dds.Oscillator
	period time.Duration
	info   types.SynthInfo

	// Written by the tick goroutine, read by Stats.
	ticks    atomic.Uint64
	overruns atomic.Uint64
	dropped  atomic.Uint64
	phase    atomic.Uint32
	last     atomic.Uint32
}

// New returns an uninitialised service. Zero fields of cfg take defaults.
func New(cfg types.SynthConfig, out dds.Transport, opts ...Option) *Service {
	s := &Service{
		cfg:    cfg.WithDefaults(),
		out:    out,
		log:    logx.Console{},
		repeat: timex.Repeat,
	}
	for _, o := range opts {
		o(s)
	}
	s.setState(types.SynthUninitialized, "")
	return s
}

// Init validates the configuration, builds the table and computes the
// phase increment. It must succeed before Run.
func (s *Service) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Level != types.SynthUninitialized {
		return errcode.New(errcode.AlreadyRunning, "synth.Init", "already initialised")
	}

	dc, period, err := s.plan()
	if err != nil {
		s.setStateLocked(types.SynthUninitialized, string(errcode.Of(err)))
		return err
	}
	osc, err := dds.New(dc, s.out)
	if err != nil {
		s.setStateLocked(types.SynthUninitialized, string(errcode.Of(err)))
		return err
	}

	s.osc = osc
	s.period = period
	s.info = types.SynthInfo{
		ToneHz:     s.cfg.ToneHz,
		ActualHz:   dds.Frequency(osc.Increment(), s.cfg.SampleHz),
		SampleHz:   s.cfg.SampleHz,
		PeriodNs:   int64(period),
		Increment:  osc.Increment(),
		TableSize:  osc.Table().Len(),
		Amplitude:  osc.Table().Amplitude(),
		ConfigBits: dc.Format.Config,
		DACBits:    dc.Format.Bits,
	}
	s.setStateLocked(types.SynthReady, "")
	s.log.Infow("synth ready",
		"tone_hz", s.info.ToneHz,
		"actual_hz", s.info.ActualHz,
		"sample_hz", s.info.SampleHz,
		"increment", s.info.Increment,
		"table", s.info.TableSize,
	)
	return nil
}

// plan maps the public config onto oscillator constants and the tick period.
func (s *Service) plan() (dds.Config, time.Duration, error) {
	const op = "synth.Init"
	c := s.cfg

	ch, err := ParseChannel(c.Channel)
	if err != nil {
		return dds.Config{}, 0, err
	}
	var g mcp4822.Gain
	switch c.Gain {
	case "1x":
		g = mcp4822.Gain1x
	case "2x":
		g = mcp4822.Gain2x
	default:
		return dds.Config{}, 0, errcode.New(errcode.InvalidConfig, op, "unknown gain "+c.Gain)
	}
	if c.DACBits != mcp4822.DataBits {
		return dds.Config{}, 0, errcode.New(errcode.InvalidConfig, op, "dac_bits must match the converter's 12-bit data field")
	}

	if c.SampleHz == 0 || c.SampleHz > uint32(time.Second) {
		return dds.Config{}, 0, errcode.New(errcode.InvalidConfig, op, "sample rate out of range")
	}
	period := timex.PeriodFromHz(c.SampleHz)
	// One word must clear the bus inside one tick.
	if c.SPIHz == 0 || time.Duration(uint64(wordBits)*uint64(time.Second)/uint64(c.SPIHz)) >= period {
		return dds.Config{}, 0, errcode.New(errcode.InvalidConfig, op, "bus too slow for the sample rate")
	}

	return dds.Config{
		ToneHz:    c.ToneHz,
		SampleHz:  c.SampleHz,
		TableSize: c.TableSize,
		Amplitude: c.Amplitude,
		Format: dds.WordFormat{
			Config: mcp4822.ConfigBits(ch, g, true),
			Bits:   c.DACBits,
		},
	}, period, nil
}

// Run arms the repeating timer and ticks the oscillator until ctx is
// cancelled. A cancelled context is the normal way to stop and yields nil.
func (s *Service) Run(ctx context.Context) error {
	s.mu.Lock()
	switch s.state.Level {
	case types.SynthReady:
	case types.SynthRunning:
		s.mu.Unlock()
		return errcode.AlreadyRunning
	default:
		s.mu.Unlock()
		return errcode.NotReady
	}
	s.setStateLocked(types.SynthRunning, "")
	period := s.period
	s.mu.Unlock()

	s.log.Infow("synth running", "period", period)
	err := s.repeat(ctx, period, s.tick, s.late)

	s.setState(types.SynthStopped, "")
	st := s.Stats()
	s.log.Infow("synth stopped", "ticks", st.Ticks, "overruns", st.Overruns, "dropped", st.Dropped)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// tick is the timer callback: one sample per call, no allocation, no log.
func (s *Service) tick() bool {
	if err := s.osc.Tick(); err != nil {
		s.dropped.Add(1)
	}
	s.ticks.Add(1)
	s.phase.Store(s.osc.Phase())
	s.last.Store(uint32(s.osc.LastWord()))
	return true
}

func (s *Service) late(time.Duration) { s.overruns.Add(1) }

// Stats returns a snapshot of the tick counters.
func (s *Service) Stats() types.SynthStats {
	return types.SynthStats{
		Ticks:    s.ticks.Load(),
		Overruns: s.overruns.Load(),
		Dropped:  s.dropped.Load(),
		Phase:    s.phase.Load(),
		LastWord: uint16(s.last.Load()),
	}
}

// Info describes the running configuration. It is zero before Init.
func (s *Service) Info() types.SynthInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

// State returns the lifecycle state.
func (s *Service) State() types.SynthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Service) setState(level, status string) {
	s.mu.Lock()
	s.setStateLocked(level, status)
	s.mu.Unlock()
}

// caller holds lock
func (s *Service) setStateLocked(level, status string) {
	s.state = types.SynthState{Level: level, Status: status, TS: timex.NowMs()}
}

// ParseChannel maps a configured channel name onto the converter's
// channel select.
func ParseChannel(name string) (mcp4822.Channel, error) {
	switch name {
	case "A", "a":
		return mcp4822.ChannelA, nil
	case "B", "b":
		return mcp4822.ChannelB, nil
	}
	return 0, errcode.New(errcode.InvalidConfig, "synth.ParseChannel", "unknown channel "+name)
}
