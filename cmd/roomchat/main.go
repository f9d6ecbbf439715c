package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"roomchat/pkg/ai"
	_ "roomchat/pkg/ai/providers"
	"roomchat/pkg/chat"
	"roomchat/pkg/config"
	"roomchat/pkg/logging"
	"roomchat/pkg/ui"
	"roomchat/pkg/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()
	if *showVersion {
		fmt.Printf("roomchat %s %s\n", version.Summary(), version.Platform())
		return
	}

	// Load configuration from ~/.roomchat/config.json
	configPath := config.GetConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if _, err := logging.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config at %s: %v\n", configPath, err)
		os.Exit(1)
	}

	slog.Info("roomchat started", "version", version.Summary(), "provider", cfg.Provider, "config_path", configPath)

	store := chat.NewDefaultStore()

	// Seed the session credential: the configured key wins, the
	// environment is the fallback. A missing key is not fatal; turns
	// fail with a prompt to set one via /key.
	providerCfg := cfg.ActiveProvider()
	credential := providerCfg.APIKey
	if credential == "" {
		credential = config.EnvCredential()
	}
	if credential != "" {
		if err := store.SetCredential(credential); err != nil {
			fmt.Fprintf(os.Stderr, "Error setting credential: %v\n", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("no API key configured", "env", config.EnvAPIKey)
	}

	// The provider is rebuilt per turn so a key set via /key takes
	// effect immediately.
	completer := chat.CompleterFunc(func(ctx context.Context, messages []chat.Message) (string, error) {
		provider, err := ai.GetProviderFromConfig(cfg, store.Credential())
		if err != nil {
			return "", err
		}
		return ai.NewCompletion(provider, providerCfg).Complete(ctx, messages)
	})

	controller := chat.NewTurnController(completer)

	controller.SetContextMode(chat.ParseContextMode(cfg.ContextMode))
	if cfg.SystemPrompt.Enabled {
		controller.SetSystemPrompt(cfg.SystemPrompt.Text)
	}

	model := ui.New(store, controller, cfg.Provider, providerCfg.Model)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		slog.Error("ui error", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	slog.Info("roomchat exited")
}
