package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/citadel/internal/config"
	"github.com/five82/citadel/internal/list"
	"github.com/five82/citadel/internal/prefs"
	"github.com/five82/citadel/internal/rickmorty"
	"github.com/five82/citadel/internal/ui"
)

var (
	_ list.Fetcher     = (*rickmorty.Client)(nil)
	_ ui.DetailFetcher = (*rickmorty.Client)(nil)
)

// Options configure the citadel application.
type Options struct {
	ConfigPath string // empty uses ~/.config/citadel/config.toml
	PrefsPath  string // empty uses ~/.config/citadel/prefs.toml
	APIBase    string // overrides the configured API base when set
}

// Run boots the citadel TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if api := strings.TrimSpace(opts.APIBase); api != "" {
		cfg.APIBase = api
	}

	client, err := rickmorty.NewClient(cfg.APIBase, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	logFile, err := openLog(cfg.LogPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	store := list.NewStore(client, list.Options{
		SearchDebounce: cfg.SearchDebounce,
		RetryCooldown:  cfg.RetryCooldown,
		Logger:         log.Default(),
	})
	store.Start(ctx)
	defer store.Close()

	log.Printf("citadel: browsing %s", client.BaseURL())
	store.Dispatch(list.LoadInitial{})

	return ui.Run(ui.Options{
		Context:    ctx,
		Store:      store,
		Details:    client,
		APIBase:    client.BaseURL(),
		ThemeName:  userPrefs.Theme,
		DetailPane: userPrefs.DetailPane,
		PrefsPath:  prefsPath,
		LogPath:    cfg.LogPath,
	})
}

// openLog routes the standard logger to path; the TUI owns the terminal.
func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "citadel")
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}
