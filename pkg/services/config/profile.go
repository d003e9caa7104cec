// Package config loads report defaults from an optional profile file
// so the CLI and web server share one set of tunables.
package config

import (
	"fmt"
	"net"

	"github.com/spf13/viper"

	"github.com/de-tools/rtb-report/pkg/models/domain"
)

// Profile mirrors the profile file. Zero values fall back to the
// documented defaults.
type Profile struct {
	TopN      int    `mapstructure:"top_n"`
	AmountCol int    `mapstructure:"amount_col"`
	MaxRows   int    `mapstructure:"max_rows"`
	PMPFirst  bool   `mapstructure:"pmp_first"`
	Addr      string `mapstructure:"addr"`
}

// Load reads a profile from the specified path.
func Load(path string) (*Profile, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var p Profile
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &p, nil
}

// ResolveAddr picks the server listen address: an explicit host and
// port pair wins over the profile's addr. Empty when neither is set.
func ResolveAddr(p *Profile, host, port string) string {
	if host != "" && port != "" {
		return net.JoinHostPort(host, port)
	}
	if p != nil {
		return p.Addr
	}
	return ""
}

// ReportConfig merges the profile over the documented defaults.
func (p *Profile) ReportConfig() domain.ReportConfig {
	cfg := domain.DefaultReportConfig()
	if p == nil {
		return cfg
	}
	if p.TopN > 0 {
		cfg.TopN = p.TopN
	}
	if p.AmountCol > 0 {
		cfg.AmountCol = p.AmountCol
	}
	if p.MaxRows > 0 {
		cfg.MaxRows = p.MaxRows
	}
	cfg.PMPFirst = p.PMPFirst
	return cfg
}
