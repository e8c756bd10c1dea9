package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PizzaHomicide/hookline/internal/config"
	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/PizzaHomicide/hookline/internal/playback"
)

// ErrEngineClosed is returned by commands sent after Close
var ErrEngineClosed = errors.New("engine closed")

const (
	observeDuration = iota + 1
	observeEOF
)

type commandKind int

const (
	cmdLoad commandKind = iota
	cmdPlaying
	cmdSeek
	cmdReset
)

type command struct {
	kind    commandKind
	url     string
	playing bool
	seconds float64
}

// MPVEngine plays audio in a long-lived, windowless mpv process controlled over JSON IPC.
// Commands are queued and applied in order by a single goroutine.  Seeks skip the queue: only the latest
// target is kept, so a fast drag never backs up behind mpv.
type MPVEngine struct {
	name       string
	path       string
	args       []string
	interval   time.Duration
	socketPath string

	queueTimeout time.Duration

	ctx      context.Context
	cancel   context.CancelFunc
	commands chan command
	events   chan playback.Event
	done     chan struct{}

	seekMu     sync.Mutex
	seekTarget float64
	seekQueued bool
	seekReady  chan struct{}

	started   atomic.Bool
	closeOnce sync.Once

	// Owned by the serve goroutine
	source   string
	playing  bool
	loaded   bool
	duration float64
}

// NewMPVEngine creates an engine.  Nothing is started until Start.
func NewMPVEngine(name string, cfg config.PlayerConfig) *MPVEngine {
	path := cfg.Path
	if path == "" {
		path = "mpv"
	}
	interval := cfg.ProgressInterval
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &MPVEngine{
		name:         name,
		path:         path,
		args:         ParseArgs(cfg.Args),
		interval:     interval,
		socketPath:   newSocketPath(),
		queueTimeout: 2 * time.Second,
		ctx:          ctx,
		cancel:       cancel,
		commands:     make(chan command, 64),
		events:       make(chan playback.Event, 64),
		done:         make(chan struct{}),
		seekReady:    make(chan struct{}, 1),
	}
}

// Start launches mpv in the background.  Failures are reported as an ErrorEvent.
func (e *MPVEngine) Start() {
	if !e.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(e.done)
		defer close(e.events)

		cmd, ipc, err := e.launch(e.ctx)
		if err != nil {
			log.Error("Failed to start mpv", "engine", e.name, "error", err)
			e.emit(playback.ErrorEvent{Err: err})
			<-e.ctx.Done()
			return
		}
		defer e.shutdown(cmd, ipc)

		e.serve(e.ctx, ipc)
	}()
}

func (e *MPVEngine) launch(ctx context.Context) (*exec.Cmd, *MPVIPCClient, error) {
	args := []string{
		"--idle=yes",
		"--no-video",
		"--no-terminal",
		"--keep-open=yes",
		"--input-ipc-server=" + e.socketPath,
	}
	args = append(args, e.args...)

	log.Info("Starting mpv", "engine", e.name, "path", e.path, "socket", e.socketPath)
	cmd := exec.Command(e.path, args...)
	setupPlayerProcess(cmd)
	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("failed to start mpv: %w", err)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, err := waitForConnection(connCtx, e.socketPath, 20, 250*time.Millisecond)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, nil, err
	}

	return cmd, NewMPVIPCClient(conn, 2*time.Second), nil
}

func (e *MPVEngine) shutdown(cmd *exec.Cmd, ipc *MPVIPCClient) {
	quitCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if _, err := ipc.Command(quitCtx, "quit"); err != nil {
		log.Debug("mpv quit command failed", "engine", e.name, "error", err)
	}
	_ = ipc.Close()

	if cmd.Process != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}
	removeSocket(e.socketPath)
	log.Info("Stopped mpv", "engine", e.name)
}

// waitForConnection dials the IPC socket, retrying while mpv starts up
func waitForConnection(ctx context.Context, path string, maxAttempts int, retryDelay time.Duration) (net.Conn, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		conn, err := dialIPC(ctx, path)
		if err == nil {
			log.Debug("Connected to mpv", "attempt", attempt)
			return conn, nil
		}
		log.Trace("mpv not ready yet", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, fmt.Errorf("failed to connect to mpv after %d attempts", maxAttempts)
}

// serve applies queued commands, translates mpv events and polls progress until ctx is cancelled or mpv goes away
func (e *MPVEngine) serve(ctx context.Context, ipc *MPVIPCClient) {
	if err := ipc.ObserveProperty(ctx, observeDuration, "duration"); err != nil {
		log.Warn("Failed to observe duration", "engine", e.name, "error", err)
	}
	if err := ipc.ObserveProperty(ctx, observeEOF, "eof-reached"); err != nil {
		log.Warn("Failed to observe eof-reached", "engine", e.name, "error", err)
	}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	events := ipc.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ipc.Done():
			e.emit(playback.ErrorEvent{Err: errIPCClosed})
			<-ctx.Done()
			return
		case c := <-e.commands:
			if err := e.apply(ctx, ipc, c); err != nil {
				e.emit(playback.ErrorEvent{Err: err})
			}
		case <-e.seekReady:
			seconds, ok := e.takeSeek()
			if !ok {
				continue
			}
			if err := e.apply(ctx, ipc, command{kind: cmdSeek, seconds: seconds}); err != nil {
				e.emit(playback.ErrorEvent{Err: err})
			}
		case msg, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			e.handleMessage(ctx, ipc, msg)
		case <-ticker.C:
			if e.playing && e.loaded {
				e.pollProgress(ctx, ipc)
			}
		}
	}
}

func (e *MPVEngine) apply(ctx context.Context, ipc *MPVIPCClient, c command) error {
	switch c.kind {
	case cmdLoad:
		e.source = c.url
		return e.load(ctx, ipc)
	case cmdReset:
		if e.source == "" {
			return nil
		}
		return e.load(ctx, ipc)
	case cmdPlaying:
		if _, err := ipc.Command(ctx, "set_property", "pause", !c.playing); err != nil {
			return err
		}
		e.playing = c.playing
	case cmdSeek:
		if !e.loaded {
			return nil
		}
		if _, err := ipc.Command(ctx, "seek", c.seconds, "absolute"); err != nil {
			return err
		}
		// The ticker is idle while paused, so report the new position straight away
		e.pollProgress(ctx, ipc)
	}
	return nil
}

// load (re)loads the current source paused
func (e *MPVEngine) load(ctx context.Context, ipc *MPVIPCClient) error {
	e.loaded = false
	e.playing = false
	if _, err := ipc.Command(ctx, "set_property", "pause", true); err != nil {
		return err
	}
	if _, err := ipc.Command(ctx, "loadfile", e.source, "replace"); err != nil {
		return err
	}
	log.Debug("Loading source", "engine", e.name, "url", e.source)
	return nil
}

func (e *MPVEngine) handleMessage(ctx context.Context, ipc *MPVIPCClient, msg MPVMessage) {
	switch msg.Event {
	case "file-loaded":
		e.loaded = true
		e.emit(playback.ReadyEvent{})
		e.pollProgress(ctx, ipc)
	case "end-file":
		switch msg.Reason {
		case "eof":
			e.playing = false
			e.emit(playback.EndedEvent{})
		case "error":
			e.loaded = false
			e.emit(playback.ErrorEvent{Err: fmt.Errorf("mpv failed to play %s", e.source)})
		}
	case "property-change":
		switch msg.Name {
		case "duration":
			var duration float64
			if err := json.Unmarshal(msg.Data, &duration); err != nil {
				// null while nothing is loaded
				return
			}
			if duration != e.duration {
				e.duration = duration
				e.emit(playback.DurationEvent{Seconds: duration})
			}
		case "eof-reached":
			var eof bool
			if err := json.Unmarshal(msg.Data, &eof); err == nil && eof && e.loaded {
				e.playing = false
				e.emit(playback.EndedEvent{})
			}
		}
	}
}

func (e *MPVEngine) pollProgress(ctx context.Context, ipc *MPVIPCClient) {
	position, err := ipc.GetFloat(ctx, "time-pos")
	if err != nil {
		log.Trace("time-pos unavailable", "engine", e.name, "error", err)
		return
	}
	duration, err := ipc.GetFloat(ctx, "duration")
	if err != nil {
		duration = e.duration
	}
	cached, err := ipc.GetFloat(ctx, "demuxer-cache-time")
	if err != nil {
		cached = duration
	}

	e.emitProgress(progressOf(position, cached, duration))
}

func progressOf(position, cached, duration float64) playback.Progress {
	p := playback.Progress{
		SecondsPlayed: position,
		SecondsLoaded: cached,
	}
	if duration > 0 {
		p.FractionPlayed = min(max(position/duration, 0), 1)
		p.FractionLoaded = min(max(cached/duration, 0), 1)
	}
	return p
}

func (e *MPVEngine) emit(ev playback.Event) {
	select {
	case e.events <- ev:
	case <-e.ctx.Done():
	}
}

// Progress reports are dropped rather than queued when the UI falls behind
func (e *MPVEngine) emitProgress(p playback.Progress) {
	select {
	case e.events <- playback.ProgressEvent{Progress: p}:
	default:
	}
}

// enqueue waits for room in the queue, giving up only if mpv stays stuck for queueTimeout
func (e *MPVEngine) enqueue(c command) error {
	if e.ctx.Err() != nil {
		return ErrEngineClosed
	}
	select {
	case e.commands <- c:
		return nil
	default:
	}

	timer := time.NewTimer(e.queueTimeout)
	defer timer.Stop()
	select {
	case e.commands <- c:
		return nil
	case <-e.ctx.Done():
		return ErrEngineClosed
	case <-timer.C:
		return fmt.Errorf("mpv did not take a command within %s", e.queueTimeout)
	}
}

// takeSeek returns the latest pending seek target and clears it
func (e *MPVEngine) takeSeek() (float64, bool) {
	e.seekMu.Lock()
	defer e.seekMu.Unlock()
	if !e.seekQueued {
		return 0, false
	}
	e.seekQueued = false
	return e.seekTarget, true
}

func (e *MPVEngine) SetSource(url string) error {
	return e.enqueue(command{kind: cmdLoad, url: url})
}

func (e *MPVEngine) SetPlaying(playing bool) error {
	return e.enqueue(command{kind: cmdPlaying, playing: playing})
}

// SeekTo replaces any seek that mpv has not applied yet
func (e *MPVEngine) SeekTo(seconds float64) error {
	if e.ctx.Err() != nil {
		return ErrEngineClosed
	}

	e.seekMu.Lock()
	e.seekTarget = seconds
	e.seekQueued = true
	e.seekMu.Unlock()

	select {
	case e.seekReady <- struct{}{}:
	default:
	}
	return nil
}

func (e *MPVEngine) Reset() error {
	return e.enqueue(command{kind: cmdReset})
}

func (e *MPVEngine) Events() <-chan playback.Event {
	return e.events
}

// Close stops mpv and waits for it to exit.  The events channel is closed afterwards.
func (e *MPVEngine) Close() error {
	e.closeOnce.Do(func() {
		e.cancel()
	})
	if !e.started.Load() {
		return nil
	}
	select {
	case <-e.done:
	case <-time.After(3 * time.Second):
		return fmt.Errorf("timed out waiting for mpv to stop")
	}
	return nil
}
