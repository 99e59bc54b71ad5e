package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a scalar")
	}
	if value.Value == "" {
		d.Duration = 0
		return nil
	}
	if value.Tag == "!!int" {
		var v int64
		if err := value.Decode(&v); err != nil {
			return err
		}
		d.Duration = time.Duration(v) * time.Millisecond
		return nil
	}
	dur, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	d.Duration = dur
	return nil
}

type Network struct {
	Name    string `yaml:"name"`
	ChainID uint64 `yaml:"chain_id"`
	RPCHTTP string `yaml:"rpc_http"`
}

type Config struct {
	Networks []Network `yaml:"networks"`

	Engine struct {
		Endpoint string `yaml:"endpoint"`
		WalletID string `yaml:"wallet_id"`
	} `yaml:"engine"`

	Wallet struct {
		PublicAddress string `yaml:"public_address"`
	} `yaml:"wallet"`

	Display struct {
		PageSize          int  `yaml:"page_size"`
		Precision         int  `yaml:"precision"`
		HideDecodedEvents bool `yaml:"hide_decoded_events"`
	} `yaml:"display"`

	Performance struct {
		RequestTimeout      Duration `yaml:"request_timeout"`
		RetryMax            int      `yaml:"retry_max"`
		RetryBackoff        Duration `yaml:"retry_backoff"`
		MetadataConcurrency int      `yaml:"metadata_concurrency"`
	} `yaml:"performance"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Display.PageSize == 0 {
		c.Display.PageSize = 10
	}
	if c.Display.Precision == 0 {
		c.Display.Precision = 6
	}
	if c.Performance.RequestTimeout.Duration == 0 {
		c.Performance.RequestTimeout = Duration{Duration: 15 * time.Second}
	}
	if c.Performance.RetryMax == 0 {
		c.Performance.RetryMax = 3
	}
	if c.Performance.RetryBackoff.Duration == 0 {
		c.Performance.RetryBackoff = Duration{Duration: 500 * time.Millisecond}
	}
	if c.Performance.MetadataConcurrency == 0 {
		c.Performance.MetadataConcurrency = 4
	}
}

func (c *Config) validate() error {
	if len(c.Networks) == 0 {
		return fmt.Errorf("at least one network is required")
	}
	for i, n := range c.Networks {
		if n.Name == "" {
			return fmt.Errorf("networks[%d].name is required", i)
		}
		if n.RPCHTTP == "" {
			return fmt.Errorf("networks[%d].rpc_http is required", i)
		}
	}
	if c.Engine.Endpoint == "" {
		return fmt.Errorf("engine.endpoint is required")
	}
	if c.Display.PageSize < 1 {
		return fmt.Errorf("display.page_size must be >= 1")
	}
	return nil
}

// NetworkByName returns the named network, or the first configured network
// when name is empty.
func (c *Config) NetworkByName(name string) (*Network, error) {
	if name == "" {
		return &c.Networks[0], nil
	}
	for i := range c.Networks {
		if strings.EqualFold(c.Networks[i].Name, name) {
			return &c.Networks[i], nil
		}
	}
	return nil, fmt.Errorf("unknown network %q", name)
}
