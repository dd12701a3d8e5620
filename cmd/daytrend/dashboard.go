package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janekbaraniewski/daytrend/internal/config"
	"github.com/janekbaraniewski/daytrend/internal/store"
	"github.com/janekbaraniewski/daytrend/internal/tui"
)

func runDashboard(ctx context.Context, a *app) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := tui.LoadThemes(config.ConfigDir()); err != nil {
		log.Printf("themes: %v", err)
	}
	tui.SetThemeByName(a.cfg.Theme)

	path, err := a.resolveDBPath()
	if err != nil {
		return err
	}
	st, err := store.OpenStore(path)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	load := func() tea.Msg {
		today := a.now()
		samples, err := st.LoadWindow(ctx, today, maxWindowDays())
		if err != nil {
			log.Printf("dashboard: load: %v", err)
			return tui.ErrMsg{Err: err}
		}
		return tui.SamplesMsg{Samples: samples, Today: today}
	}

	model := tui.NewModel(a.cfg.MetricSpecs(), a.cfg.Frame(), a.cfg.TimeWindow())
	model.SetRefreshInterval(time.Duration(a.cfg.UI.RefreshIntervalSeconds) * time.Second)

	var program *tea.Program
	model.SetOnRefresh(func() {
		go func() {
			if program != nil {
				program.Send(load())
			}
		}()
	})

	program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if err := store.Watch(ctx, path, 0, func() { program.Send(load()) }); err != nil {
		log.Printf("dashboard: live reload disabled: %v", err)
	}
	go func() { program.Send(load()) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
			program.Quit()
		case <-ctx.Done():
		}
	}()

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("TUI error: %v", err)
	}
	return nil
}
