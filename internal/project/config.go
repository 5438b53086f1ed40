// Package project loads the project configuration: the credentials of the
// analytics and broker services plus the optional deployment settings.
package project

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/thejimmylin/f5project/internal/clients/fugle"
)

// Config is read once by FromJSON or FromEnv and never mutated afterwards.
// Validation is deferred to the caller, see Validate.
type Config struct {
	FinlabAPIToken    string            `json:"finlab_api_token" validate:"required"`
	FugleAccount      string            `json:"fugle_account" validate:"required"`
	FuglePassword     string            `json:"fugle_password" validate:"required"`
	FugleCert         string            `json:"fugle_cert" field:"binary" validate:"required"`
	FugleCertPassword string            `json:"fugle_cert_password" validate:"required"`
	FugleAPIEntry     string            `json:"fugle_api_entry" validate:"required"`
	FugleAPIKey       string            `json:"fugle_api_key" validate:"required"`
	FugleAPISecret    string            `json:"fugle_api_secret" validate:"required"`
	FugleMarketAPIKey string            `json:"fugle_market_api_key" validate:"required"`
	GCFServiceAccount map[string]string `json:"gcf_service_account" field:"json"`
	RepoSynced        map[string]string `json:"repo_synced" field:"json"`
}

// Field groups for Validate.
var (
	AnalyticsFields = []string{"FinlabAPIToken"}
	BrokerFields    = []string{
		"FugleAccount", "FuglePassword", "FugleCert", "FugleCertPassword",
		"FugleAPIEntry", "FugleAPIKey", "FugleAPISecret", "FugleMarketAPIKey",
	}
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindBinary
	kindJSON
)

type field struct {
	index int
	name  string // Lower case, as in the JSON file.
	kind  fieldKind
}

func (f field) envName() string {
	return strings.ToUpper(f.name)
}

var (
	fields   = parseFields(reflect.TypeOf(Config{}))
	validate = validator.New()
)

func parseFields(t reflect.Type) []field {
	result := make([]field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)

		f := field{index: i, name: strings.Split(sf.Tag.Get("json"), ",")[0]}
		switch sf.Tag.Get("field") {
		case "binary":
			f.kind = kindBinary
		case "json":
			f.kind = kindJSON
		}
		result = append(result, f)
	}
	return result
}

// ToBrokerConfig projects the fields the broker config file is built from.
func (c Config) ToBrokerConfig() fugle.Config {
	return fugle.Config{
		Cert:      c.FugleCert,
		APIEntry:  c.FugleAPIEntry,
		APIKey:    c.FugleAPIKey,
		APISecret: c.FugleAPISecret,
		Account:   c.FugleAccount,
	}
}

// Validate checks the required fields. When names are given (Go field names),
// only those are checked.
func (c Config) Validate(names ...string) error {
	var err error
	if len(names) == 0 {
		err = validate.Struct(c)
	} else {
		err = validate.StructPartial(c, names...)
	}
	if err != nil {
		return fmt.Errorf("invalid project config: %w", err)
	}
	return nil
}
