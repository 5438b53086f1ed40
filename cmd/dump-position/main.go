package main

import (
	"context"
	"encoding/json"
	"errors"
	stdlog "log"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/thejimmylin/f5project/internal/clients/finlab"
	"github.com/thejimmylin/f5project/internal/config"
	"github.com/thejimmylin/f5project/internal/project"
	projectruntime "github.com/thejimmylin/f5project/internal/services/project-runtime"
)

var (
	configPath = pflag.String("config", "configs/config.toml", "Path to config file")
	strategy   = pflag.String("strategy", "", "FinLab strategy, [project] strategy by default")
)

func init() {
	pflag.Parse()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Parse(*configPath)
	mustNil(err)
	mustNil(validator.New().Struct(cfg))

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		mustNil(err)
	}

	projectCfg, err := project.FromJSONOrEnv(cfg.Project.SecretsPath)
	mustNil(err)

	finlabClient, err := finlab.NewClient(cfg.Clients.Finlab.BaseURL, nil)
	mustNil(err)

	rt := projectruntime.New(projectruntime.Input{Config: projectCfg, Analytics: finlabClient})
	_, err = rt.SetupAnalytics(ctx, cfg.Project.DataDir)
	mustNil(err)

	name := *strategy
	if name == "" {
		name = cfg.Project.Strategy
	}

	holdings, err := finlabClient.GetPosition(ctx, name)
	mustNil(err)

	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].Weight.GreaterThan(holdings[j].Weight)
	})
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	mustNil(enc.Encode(holdings))
}

func mustNil(err error) {
	if err != nil {
		stdlog.Panic(err)
	}
}
