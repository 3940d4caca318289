// Command meetwire-connect opens a session to a Meetwire room.
//
// It drives the full connection flow: credential resolution (including
// persisted overrides and tenant token provisioning), the connection
// attempt over WebSocket, and re-authentication when the room rejects
// the first attempt.
//
// Usage:
//
//	meetwire-connect [flags] <room>
//
// Flags:
//
//	-config string      Configuration file path (YAML)
//	-server string      Signaling endpoint URL (ws:// or wss://)
//	-id string          Participant identity
//	-password string    Room password
//	-retry              Prompt for credentials when the room rejects the attempt
//	-recorder           Connect as a recorder participant
//	-gateway            Connect as a SIP gateway participant
//	-state-dir string   Directory for persistent state and event logs
//	-log-level string   Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Connect to a room on a known backend
//	meetwire-connect -server wss://meet.example.com/ws standup
//
//	# Discover the backend over mDNS and prompt on rejection
//	meetwire-connect -retry standup
//
//	# Connect as a recorder with persistent state
//	meetwire-connect -recorder -state-dir /var/lib/meetwire standup
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/meetwire/meetwire-go/pkg/appstate"
	"github.com/meetwire/meetwire-go/pkg/config"
	"github.com/meetwire/meetwire-go/pkg/connect"
	"github.com/meetwire/meetwire-go/pkg/discovery"
	"github.com/meetwire/meetwire-go/pkg/identity"
	"github.com/meetwire/meetwire-go/pkg/log"
	"github.com/meetwire/meetwire-go/pkg/reauth"
	"github.com/meetwire/meetwire-go/pkg/session"
	"github.com/meetwire/meetwire-go/pkg/tenant"
	"github.com/meetwire/meetwire-go/pkg/transport"
)

var flags struct {
	ConfigFile string
	Server     string
	ID         string
	Password   string
	Retry      bool
	Recorder   bool
	Gateway    bool
	StateDir   string
	LogLevel   string
}

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&flags.Server, "server", "", "Signaling endpoint URL (ws:// or wss://)")
	flag.StringVar(&flags.ID, "id", "", "Participant identity")
	flag.StringVar(&flags.Password, "password", "", "Room password")
	flag.BoolVar(&flags.Retry, "retry", false, "Prompt for credentials when the room rejects the attempt")
	flag.BoolVar(&flags.Recorder, "recorder", false, "Connect as a recorder participant")
	flag.BoolVar(&flags.Gateway, "gateway", false, "Connect as a SIP gateway participant")
	flag.StringVar(&flags.StateDir, "state-dir", "", "Directory for persistent state and event logs")
	flag.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: meetwire-connect [flags] <room>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	room := flag.Arg(0)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "meetwire-connect: %v\n", err)
		os.Exit(1)
	}

	slogger := newSlogger(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.ServerURL == "" {
		slogger.Info("no server configured, browsing for a backend")
		browser := discovery.NewMDNSBrowser(discovery.BrowserConfig{})
		backend, err := browser.FindBackend(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "meetwire-connect: discovery failed: %v\n", err)
			os.Exit(1)
		}
		cfg.ServerURL = backend.URL()
		slogger.Info("discovered backend", "instance", backend.InstanceName, "url", cfg.ServerURL)
	}

	driverLog, closeLog, err := newDriverLogger(cfg, slogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "meetwire-connect: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	handle, err := run(ctx, cfg, driverLog, room)
	switch {
	case err == nil:
		fmt.Printf("session established: %s\n", handle.SessionID)
		handle.Conn.Close()
	case errors.Is(err, reauth.ErrExternalHandoff):
		fmt.Println("authentication handed off to the external token service")
		os.Exit(3)
	default:
		fmt.Fprintf(os.Stderr, "meetwire-connect: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig merges the configuration file with command-line flags.
// Flags win.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if flags.ConfigFile != "" {
		loaded, err := config.Load(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.Server != "" {
		cfg.ServerURL = flags.Server
	}
	if flags.StateDir != "" {
		cfg.StateDir = flags.StateDir
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}
	if flags.Recorder {
		cfg.Recorder = true
	}
	if flags.Gateway {
		cfg.Gateway = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, driverLog log.Logger, room string) (*session.Handle, error) {
	state := appstate.NewStore()

	var overrides *identity.OverrideStore
	if path := cfg.OverridesPath(); path != "" {
		overrides = identity.NewOverrideStore(path)
	}

	var provisioner tenant.Provisioner
	if cfg.TenantAPIURL != "" {
		provisioner = tenant.NewClient(cfg.TenantAPIURL)
	}

	connector := &connect.Connector{
		Resolver: &identity.Resolver{
			Overrides: overrides,
			Tenant:    provisioner,
			State:     state,
		},
		Dialer:    transport.NewDialer(),
		State:     state,
		ServerURL: cfg.ServerURL,
		Recorder:  cfg.Recorder,
		Gateway:   cfg.Gateway,
		Logger:    driverLog,
	}

	connector.Reauth = &reauth.Orchestrator{
		TokenAuthEnabled: cfg.TokenAuthEnabled,
		Prompt:           newPrompt(connector),
		Bus:              state,
		Logger:           driverLog,
	}

	return connector.Open(ctx, connect.Request{
		ID:       flags.ID,
		Password: flags.Password,
		Room:     room,
		Retry:    flags.Retry,
	})
}

func newSlogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// newDriverLogger builds the driver event logger: console output always,
// plus a CBOR event log when a state directory is configured.
func newDriverLogger(cfg *config.Config, slogger *slog.Logger) (log.Logger, func(), error) {
	console := log.NewSlogAdapter(slogger)
	if cfg.StateDir == "" {
		return console, func() {}, nil
	}

	if err := os.MkdirAll(cfg.StateDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create state dir: %w", err)
	}
	file, err := log.NewFileLogger(filepath.Join(cfg.StateDir, "events.cborlog"))
	if err != nil {
		return nil, nil, fmt.Errorf("open event log: %w", err)
	}
	return log.NewMultiLogger(console, file), func() { file.Close() }, nil
}
