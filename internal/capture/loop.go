package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ak23b/vision-studio-app/internal/imaging"
)

// DefaultInterval is the pause between the end of one read and the start of
// the next.
const DefaultInterval = 30 * time.Millisecond

// State is the lifecycle state of a Loop.
type State int

const (
	// Idle holds no device.
	Idle State = iota
	// Starting is acquiring the device.
	Starting
	// Running holds the device and ticks.
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Starting:
		return "starting"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config configures a Loop.
type Config struct {
	// DeviceIndex selects the camera passed to Opener.Open.
	DeviceIndex int

	// Interval between ticks. Zero means DefaultInterval.
	Interval time.Duration

	// Opener acquires the device. Required.
	Opener Opener

	// Sink receives every frame read while running. Required.
	Sink Sink

	// Scheduler drives the ticks. Nil means TimerScheduler.
	Scheduler Scheduler

	// OnDisconnect, if set, is called once each time a running device
	// disconnects. It is called without any loop lock held.
	OnDisconnect func(err error)

	// Log receives lifecycle events. Nil means the standard logrus logger.
	Log logrus.FieldLogger
}

// Loop is a start/stop capture loop around a single device.
//
// The device handle is present if and only if the loop is Running. All
// methods are safe for concurrent use.
type Loop struct {
	index        int
	interval     time.Duration
	opener       Opener
	sink         Sink
	sched        Scheduler
	onDisconnect func(error)
	log          logrus.FieldLogger

	mu      sync.Mutex
	cond    *sync.Cond
	state   State
	device  Device
	gen     uint64 // bumped by Start and Stop; ticks from older generations are void
	busy    bool   // an Open or ReadFrame call is in progress
	timer   Timer
	lastErr error
	frames  uint64
}

// NewLoop creates an idle loop.
func NewLoop(cfg Config) (*Loop, error) {
	if cfg.Opener == nil {
		return nil, fmt.Errorf("%w: capture loop needs an opener", imaging.ErrInvalidParameter)
	}
	if cfg.Sink == nil {
		return nil, fmt.Errorf("%w: capture loop needs a sink", imaging.ErrInvalidParameter)
	}
	if cfg.Interval < 0 {
		return nil, fmt.Errorf("%w: negative capture interval %v", imaging.ErrInvalidParameter, cfg.Interval)
	}
	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = TimerScheduler{}
	}
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}

	l := &Loop{
		index:        cfg.DeviceIndex,
		interval:     cfg.Interval,
		opener:       cfg.Opener,
		sink:         cfg.Sink,
		sched:        cfg.Scheduler,
		onDisconnect: cfg.OnDisconnect,
		log: cfg.Log.WithFields(logrus.Fields{
			"component": "capture",
			"device":    cfg.DeviceIndex,
		}),
	}
	l.cond = sync.NewCond(&l.mu)
	return l, nil
}

// Start acquires the device and schedules the first tick.
//
// Start is a no-op while the loop is Starting or Running. If the device
// cannot be acquired it returns an error wrapping ErrDeviceUnavailable and the
// loop stays Idle. ctx bounds the acquisition only; use Stop to end capture.
// If Stop is called while the device is being acquired, Start releases the
// new handle and returns nil with the loop Idle.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.state != Idle {
		l.mu.Unlock()
		return nil
	}
	if err := ctx.Err(); err != nil {
		l.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	l.state = Starting
	l.gen++
	gen := l.gen
	l.busy = true
	l.lastErr = nil
	l.mu.Unlock()

	l.log.Debug("acquiring device")
	dev, err := l.opener.Open(l.index)
	if err == nil && dev == nil {
		err = errors.New("opener returned no device")
	}
	if err == nil && ctx.Err() != nil {
		l.release(dev)
		err = ctx.Err()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.cond.Broadcast()
	l.busy = false

	if err != nil {
		err = fmt.Errorf("%w: camera %d: %v", ErrDeviceUnavailable, l.index, err)
		l.state = Idle
		l.lastErr = err
		l.log.WithError(err).Warn("device acquisition failed")
		return err
	}

	if l.gen != gen {
		// Stopped while acquiring.
		l.release(dev)
		l.state = Idle
		l.log.Debug("stopped during start, device released")
		return nil
	}

	l.device = dev
	l.state = Running
	l.frames = 0
	l.schedule(gen)
	l.log.WithField("interval", l.interval).Info("capture started")
	return nil
}

// Stop cancels the pending tick, waits for a read in progress to return,
// releases the device and clears the sink. Stop on an idle loop does nothing
// and returns nil. A release failure is returned but the loop still ends Idle.
func (l *Loop) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == Idle {
		return nil
	}

	l.gen++
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	for l.busy {
		l.cond.Wait()
	}

	// A Start that was acquiring has released its own handle by now, and a
	// poll that saw a disconnect has already moved to Idle.
	if l.state == Idle {
		return nil
	}

	err := l.release(l.device)
	l.device = nil
	l.state = Idle
	l.sink.Clear()
	l.log.WithField("frames", l.frames).Info("capture stopped")
	return err
}

// poll is one tick. It runs from the scheduler with no lock held.
func (l *Loop) poll(gen uint64) {
	l.mu.Lock()
	if l.gen != gen || l.state != Running || l.busy {
		l.mu.Unlock()
		return
	}
	l.timer = nil
	l.busy = true
	dev := l.device
	l.mu.Unlock()

	frame, err := dev.ReadFrame()

	l.mu.Lock()
	l.busy = false
	l.cond.Broadcast()

	if l.gen != gen || l.state != Running {
		// Stopped while reading: drop the frame, do not reschedule.
		l.mu.Unlock()
		return
	}

	var notify func()
	switch {
	case err == nil && frame != nil:
		l.frames++
		l.sink.Present(frame)
		l.schedule(gen)
	case errors.Is(err, ErrDeviceDisconnected):
		notify = l.disconnect(err)
	default:
		if err != nil && !errors.Is(err, ErrReadMiss) {
			l.log.WithError(err).Debug("read failed, skipping tick")
		}
		l.schedule(gen)
	}
	l.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// disconnect moves a running loop to Idle after the device went away. It
// returns the notification to run once the lock is released.
func (l *Loop) disconnect(cause error) func() {
	l.release(l.device)
	l.device = nil
	l.state = Idle
	l.gen++
	l.lastErr = cause
	l.sink.Clear()
	l.log.WithError(cause).Warn("device disconnected")

	if l.onDisconnect == nil {
		return nil
	}
	cb := l.onDisconnect
	return func() { cb(cause) }
}

// schedule arms the next tick for generation gen. Callers hold l.mu.
func (l *Loop) schedule(gen uint64) {
	l.timer = l.sched.AfterFunc(l.interval, func() { l.poll(gen) })
}

func (l *Loop) release(dev Device) error {
	if dev == nil {
		return nil
	}
	if err := dev.Release(); err != nil {
		l.log.WithError(err).Warn("device release failed")
		return fmt.Errorf("release camera %d: %w", l.index, err)
	}
	return nil
}

// State returns the current lifecycle state.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Running reports whether the loop holds a device and is ticking.
func (l *Loop) Running() bool {
	return l.State() == Running
}

// LastError returns the last acquisition failure or disconnect, cleared by
// the next Start.
func (l *Loop) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Frames returns the number of frames presented since the last Start.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}
