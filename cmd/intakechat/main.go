// intakechat терминальная версия виджета чата: ведёт диалог по сценарию
// и отправляет собранный лид в HTTP API сервиса.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/m04kA/realty-intake-service/internal/chatbot"
	"github.com/m04kA/realty-intake-service/internal/config"
	"github.com/m04kA/realty-intake-service/internal/integrations/intakeapi"
	"github.com/m04kA/realty-intake-service/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		baseURL    string
		scriptPath string
		logLevel   string
	)

	flagSet := pflag.NewFlagSet("intakechat", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "config.toml", "path to the TOML config file")
	flagSet.StringVar(&baseURL, "api", "", "API base URL (overrides api.base_url)")
	flagSet.StringVar(&scriptPath, "script", "", "YAML chat script (overrides chat.script_path)")
	flagSet.StringVar(&logLevel, "log-level", "warn", "client log level")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if baseURL == "" {
		baseURL = cfg.API.BaseURL
	}
	if scriptPath == "" {
		scriptPath = cfg.Chat.ScriptPath
	}

	script, err := chatbot.LoadScript(scriptPath)
	if err != nil {
		return err
	}

	log := logger.NewWithWriter(os.Stderr, logLevel)
	client := intakeapi.NewClient(baseURL, cfg.API.TimeoutDuration(), log)
	engine := chatbot.NewEngine(script, chatbot.WithTypingDelay(cfg.Chat.TypingDelay()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return newChat(engine, client, os.Stdin, os.Stdout).Run(ctx)
}
