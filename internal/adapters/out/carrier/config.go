package carrier

import (
	"fmt"
	"os"
	"time"

	"handoff/internal/adapters/out/carrier/httpcarrier"
	"handoff/internal/adapters/out/carrier/ownfleet"
	"handoff/internal/core/ports"

	"go.yaml.in/yaml/v4"
)

const (
	KindOwnFleet = "own_fleet"
	KindHTTP     = "http"
)

type Config struct {
	Carriers []ProviderConfig `yaml:"carriers"`
}

type ProviderConfig struct {
	Code           string   `yaml:"code"`
	Kind           string   `yaml:"kind"`
	BaseURL        string   `yaml:"base_url"`
	APIKey         string   `yaml:"api_key"`
	WebhookSecret  string   `yaml:"webhook_secret"`
	DeliveryTypes  []string `yaml:"delivery_types"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// DefaultConfig is used when no carrier table is configured.
func DefaultConfig() Config {
	return Config{Carriers: []ProviderConfig{{Code: ownfleet.Code, Kind: KindOwnFleet}}}
}

func LoadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read carrier config: %w", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal carrier config: %w", err)
	}
	return cfg, nil
}

// Build creates a provider for every configured carrier.
func Build(cfg Config) (*Registry, error) {
	providers := make([]ports.CarrierProvider, 0, len(cfg.Carriers))
	for _, pc := range cfg.Carriers {
		switch pc.Kind {
		case KindOwnFleet:
			providers = append(providers, ownfleet.New())
		case KindHTTP, "":
			types := make([]ports.DeliveryType, 0, len(pc.DeliveryTypes))
			for _, t := range pc.DeliveryTypes {
				types = append(types, ports.DeliveryType(t))
			}
			c, err := httpcarrier.New(httpcarrier.Options{
				Code:          pc.Code,
				BaseURL:       pc.BaseURL,
				APIKey:        pc.APIKey,
				WebhookSecret: pc.WebhookSecret,
				DeliveryTypes: types,
				Timeout:       time.Duration(pc.TimeoutSeconds) * time.Second,
			})
			if err != nil {
				return nil, err
			}
			providers = append(providers, c)
		default:
			return nil, fmt.Errorf("carrier %s: unknown kind %q", pc.Code, pc.Kind)
		}
	}
	return NewRegistry(providers...)
}
