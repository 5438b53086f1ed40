// Package f5project is the API of a trading project: load its configuration,
// log into FinLab and Fugle, expose one endpoint as a cloud function and keep
// the GitHub repository secrets in sync.
package f5project

import (
	"net/http"

	"github.com/thejimmylin/f5project/internal/clients/finlab"
	"github.com/thejimmylin/f5project/internal/clients/fugle"
	"github.com/thejimmylin/f5project/internal/clients/github"
	"github.com/thejimmylin/f5project/internal/project"
	projectruntime "github.com/thejimmylin/f5project/internal/services/project-runtime"
	createorders "github.com/thejimmylin/f5project/internal/strategies/create-orders"
)

type (
	Config        = project.Config
	Project       = projectruntime.Runtime
	Params        = projectruntime.Params
	EndpointFunc  = projectruntime.EndpointFunc
	Endpoint      = projectruntime.Endpoint
	InvokeOptions = projectruntime.InvokeOptions
	State         = projectruntime.State

	Analytics = finlab.Client
	Holding   = finlab.Holding
	Session   = fugle.Account

	CreateOrders       = createorders.Strategy
	CreateOrdersParams = createorders.Params
	OrderRecord        = createorders.Record
	OrderPlacer        = createorders.OrderPlacer
)

const (
	StateUnconfigured  = projectruntime.StateUnconfigured
	StateConfigured    = projectruntime.StateConfigured
	StateAuthenticated = projectruntime.StateAuthenticated
)

var (
	ErrPrecondition         = projectruntime.ErrPrecondition
	ErrMultipleRegistration = projectruntime.ErrMultipleRegistration

	FromJSON      = project.FromJSON
	FromEnv       = project.FromEnv
	FromJSONOrEnv = project.FromJSONOrEnv

	DefaultCreateOrdersParams = createorders.DefaultParams
)

type Options struct {
	FinlabBaseURL string
	// Empty means api.github.com.
	GithubBaseURL string
	// Used when repo_synced has no token.
	GithubToken string
	// Shared by every client, nil means a client with a default timeout each.
	HTTPClient *http.Client
	// Holds the service data and the temporary secrets file. Empty means the
	// system temp dir.
	TempDir string
}

// NewProject wires the project runtime to the FinLab, Fugle and GitHub
// clients. The returned Analytics client serves the data calls of the
// endpoint once the project is set up.
func NewProject(cfg Config, opts Options) (*Project, *Analytics, error) {
	analytics, err := finlab.NewClient(opts.FinlabBaseURL, opts.HTTPClient)
	if err != nil {
		return nil, nil, err
	}

	rt := projectruntime.New(projectruntime.Input{
		Config:    cfg,
		Analytics: analytics,
		Broker:    fugle.NewClient(opts.HTTPClient),
		Syncer:    github.NewClient(opts.GithubBaseURL, opts.GithubToken, opts.HTTPClient),
		TempDir:   opts.TempDir,
	})
	return rt, analytics, nil
}

// NewCreateOrders returns the strategy turning the target position of the
// named FinLab strategy into Fugle orders.
func NewCreateOrders(strategy string, analytics *Analytics) *CreateOrders {
	return createorders.New(strategy, analytics)
}
