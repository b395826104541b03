// intakectl консоль администратора: просмотр заявок, смена статусов,
// счетчики панели и запись на консультацию через HTTP API сервиса.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/m04kA/realty-intake-service/internal/config"
	"github.com/m04kA/realty-intake-service/internal/integrations/intakeapi"
	"github.com/m04kA/realty-intake-service/pkg/logger"
)

// errUsage неверные аргументы; печатаем справку и выходим с кодом 2
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			printHelp(os.Stderr)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	var (
		configPath string
		baseURL    string
		logLevel   string
	)

	global := pflag.NewFlagSet("intakectl", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.StringVarP(&configPath, "config", "c", "config.toml", "path to the TOML config file")
	global.StringVar(&baseURL, "api", "", "API base URL (overrides api.base_url)")
	global.StringVar(&logLevel, "log-level", "warn", "client log level")
	help := global.BoolP("help", "h", false, "show help")

	if err := global.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(out)
			return nil
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *help || global.NArg() == 0 {
		printHelp(out)
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if baseURL == "" {
		baseURL = cfg.API.BaseURL
	}

	log := logger.NewWithWriter(os.Stderr, logLevel)
	client := intakeapi.NewClient(baseURL, cfg.API.TimeoutDuration(), log)

	name, rest := global.Arg(0), global.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
	return cmd.run(ctx, client, rest, out)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: intakectl [--config path] [--api url] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, name := range commandOrder {
		fmt.Fprintf(w, "  %-12s %s\n", name, commands[name].summary)
	}
}
