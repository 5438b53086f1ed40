package main

import (
	"context"
	"encoding/json"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/thejimmylin/f5project/internal/clients/finlab"
	"github.com/thejimmylin/f5project/internal/clients/fugle"
	"github.com/thejimmylin/f5project/internal/clients/github"
	"github.com/thejimmylin/f5project/internal/config"
	"github.com/thejimmylin/f5project/internal/project"
	projectruntime "github.com/thejimmylin/f5project/internal/services/project-runtime"
	createorders "github.com/thejimmylin/f5project/internal/strategies/create-orders"
)

const endpointName = "create_orders"

var (
	flags       = pflag.NewFlagSet("create-orders", pflag.ContinueOnError)
	configPath  = flags.String("config", "configs/config.toml", "Path to config file")
	serve       = flags.Bool("serve", false, "Serve the endpoint over HTTP instead of invoking it once")
	syncSecrets = flags.Bool("sync-secrets", false, "Push the project config to the repository secrets")
)

func init() {
	// -d and -p belong to the endpoint invocation.
	flags.ParseErrorsWhitelist.UnknownFlags = true

	err := flags.Parse(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	mustNil(err)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Parse(*configPath)
	mustNil(err)
	mustNil(validator.New().Struct(cfg))

	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	mustNil(err)
	zerolog.SetGlobalLevel(lvl)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		mustNil(err)
	}

	projectCfg, err := project.FromJSONOrEnv(cfg.Project.SecretsPath)
	mustNil(err)

	finlabClient, err := finlab.NewClient(cfg.Clients.Finlab.BaseURL, nil)
	mustNil(err)

	var fugleHTTPClient *http.Client
	if timeout := cfg.Clients.Fugle.Timeout.Duration; timeout > 0 {
		fugleHTTPClient = &http.Client{Timeout: timeout}
	}
	fugleClient := fugle.NewClient(fugleHTTPClient)

	rt := projectruntime.New(projectruntime.Input{
		Config:    projectCfg,
		Analytics: finlabClient,
		Broker:    fugleClient,
		Syncer:    github.NewClient(cfg.Clients.Github.BaseURL, cfg.Clients.Github.Token, nil),
	})

	strategy := createorders.New(cfg.Project.Strategy, finlabClient)
	endpoint, err := rt.RegisterEndpoint(endpointName, createOrders(rt, strategy, cfg.Project.DataDir))
	mustNil(err)

	if cfg.Metrics.Enabled {
		runMetrics(cfg.Metrics.Addr)
	}

	switch {
	case *syncSecrets:
		log.Info().Msg("sync secrets")
		mustNil(rt.SyncSecrets(ctx))

	case *serve:
		log.Info().Str("addr", cfg.Serve.Addr).Msg("serve endpoint")
		mustNil(runServer(ctx, cfg.Serve.Addr, endpoint))

	default:
		result, err := rt.Invoke(ctx, projectruntime.InvokeOptions{
			Params: projectruntime.Params{"view_only": true, "fund": 10000, "odd_lot": true},
		}, os.Args[1:])
		mustNil(err)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		mustNil(enc.Encode(result))
	}
}

func mustNil(err error) {
	if err != nil {
		stdlog.Panic(err)
	}
}
