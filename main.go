package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	var (
		telemetryPath = flag.String("telemetry-log", "", "override the activity log path (default: config dir)")
		noSound       = flag.Bool("no-sound", false, "disable audible cues for this session")
	)
	flag.Parse()

	if err := run(*telemetryPath, *noSound); err != nil {
		fmt.Fprintln(os.Stderr, "pedidos:", err)
		os.Exit(1)
	}
}

func run(telemetryPath string, noSound bool) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	if err := sessionActive(cfg.AccessToken, time.Now()); err != nil {
		if errors.Is(err, errNoSession) {
			return errors.New("no hay sesión: definir PEDIDOS_ACCESS_TOKEN")
		}
		if errors.Is(err, errSessionExpired) {
			return errors.New("la sesión expiró: renovar PEDIDOS_ACCESS_TOKEN")
		}
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	layoutSt, err := openLayoutStore()
	if err != nil {
		// The grid works without persistence; fall back to defaults.
		layoutSt = nil
	}
	defer layoutSt.Close()

	if telemetryPath == "" {
		telemetryPath = filepath.Join(resolveConfigDir(), "activity.ndjson")
	}
	telemetry := newTelemetryLogger(telemetryPath)

	uiCfg, uiCfgPath := loadUIConfig()
	if noSound {
		off := false
		uiCfg.Sound = &off
	}

	m := newModel(newPGOrderRepository(pool), layoutSt, telemetry, uiCfg, uiCfgPath)
	telemetry.Emit(gridEvent{Event: "session_start"})
	defer telemetry.Emit(gridEvent{Event: "session_end"})

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	return err
}
