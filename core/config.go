/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Config is the configuration of the forwarder and of the simulated topology around it.
type Config struct {
	Core struct {
		// Log level. One of TRACE, DEBUG, INFO, WARN, ERROR, FATAL.
		LogLevel string `toml:"log_level" yaml:"log_level" default:"INFO"`
	} `toml:"core" yaml:"core"`

	Fw struct {
		// Packet size in bytes from which the pacing interval of every paced face is derived.
		ReferencePacketSize uint64 `toml:"reference_packet_size" yaml:"reference_packet_size" default:"1500"`
		// Lifetime in milliseconds of Interests the forwarder originates itself (re-requests).
		DefaultInterestLifetime int `toml:"default_interest_lifetime" yaml:"default_interest_lifetime" default:"4000"`
		// What to do with Data that matches no PIT entry. One of drop-all, admit-local.
		UnsolicitedPolicy string `toml:"unsolicited_policy" yaml:"unsolicited_policy" default:"drop-all"`
	} `toml:"fw" yaml:"fw"`

	Tables struct {
		ContentStore struct {
			Capacity          int    `toml:"capacity" yaml:"capacity" default:"1000"`
			Admit             bool   `toml:"admit" yaml:"admit" default:"true"`
			Serve             bool   `toml:"serve" yaml:"serve" default:"true"`
			ReplacementPolicy string `toml:"replacement_policy" yaml:"replacement_policy" default:"priority_fifo"`
		} `toml:"content_store" yaml:"content_store"`

		DeadNonceList struct {
			// Lifetime of entries in milliseconds.
			Lifetime int `toml:"lifetime" yaml:"lifetime" default:"6000"`
		} `toml:"dead_nonce_list" yaml:"dead_nonce_list"`

		Pit struct {
			// Time in milliseconds a satisfied or expired PIT entry lingers before removal.
			StragglerTime int `toml:"straggler_time" yaml:"straggler_time" default:"100"`
		} `toml:"pit" yaml:"pit"`
	} `toml:"tables" yaml:"tables"`

	Sim SimConfig `toml:"sim" yaml:"sim"`
}

// SimConfig describes a simulated topology.
type SimConfig struct {
	// Simulated run time in milliseconds.
	Duration  int              `toml:"duration" yaml:"duration" default:"20000"`
	Nodes     []string         `toml:"nodes" yaml:"nodes"`
	Links     []LinkConfig     `toml:"links" yaml:"links"`
	Consumers []ConsumerConfig `toml:"consumers" yaml:"consumers"`
	Producers []ProducerConfig `toml:"producers" yaml:"producers"`
}

// LinkConfig describes a point-to-point link between two nodes.
type LinkConfig struct {
	A       string `toml:"a" yaml:"a"`
	B       string `toml:"b" yaml:"b"`
	BitRate uint64 `toml:"bit_rate" yaml:"bit_rate"`
	// One-way propagation delay in milliseconds.
	Delay int `toml:"delay" yaml:"delay"`
	Cost  int `toml:"cost" yaml:"cost"`
}

// ConsumerConfig describes a constant bit rate consumer application.
type ConsumerConfig struct {
	Node   string `toml:"node" yaml:"node"`
	Prefix string `toml:"prefix" yaml:"prefix"`
	// Interests per second.
	Frequency float64 `toml:"frequency" yaml:"frequency"`
	// Interest lifetime in milliseconds.
	Lifetime int    `toml:"lifetime" yaml:"lifetime"`
	MaxSeq   uint64 `toml:"max_seq" yaml:"max_seq"`
}

// ProducerConfig describes a producer application.
type ProducerConfig struct {
	Node        string `toml:"node" yaml:"node"`
	Prefix      string `toml:"prefix" yaml:"prefix"`
	PayloadSize int    `toml:"payload_size" yaml:"payload_size"`
	// Freshness period of produced Data in milliseconds.
	Freshness int `toml:"freshness" yaml:"freshness"`
}

var config = DefaultConfig()

// DefaultConfig returns the configuration used when no configuration file is loaded.
func DefaultConfig() *Config {
	c := new(Config)
	c.Core.LogLevel = "INFO"
	c.Fw.ReferencePacketSize = 1500
	c.Fw.DefaultInterestLifetime = 4000
	c.Fw.UnsolicitedPolicy = "drop-all"
	c.Tables.ContentStore.Capacity = 1000
	c.Tables.ContentStore.Admit = true
	c.Tables.ContentStore.Serve = true
	c.Tables.ContentStore.ReplacementPolicy = "priority_fifo"
	c.Tables.DeadNonceList.Lifetime = 6000
	c.Tables.Pit.StragglerTime = 100
	c.Sim.Duration = 20000
	return c
}

// GetConfig returns the active configuration.
func GetConfig() *Config {
	return config
}

// SetConfig replaces the active configuration.
func SetConfig(c *Config) {
	config = c
}

// LoadConfig loads the configuration from the specified file. The format is chosen by extension:
// .yml and .yaml are parsed as YAML, anything else as TOML.
func LoadConfig(file string) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrap(err, "unable to read configuration file")
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yml", ".yaml":
		return LoadConfigBytes(raw, "yaml")
	default:
		return LoadConfigBytes(raw, "toml")
	}
}

// LoadConfigBytes parses a configuration in the given format ("toml" or "yaml") on top of the defaults
// and makes it the active configuration.
func LoadConfigBytes(raw []byte, format string) error {
	c := DefaultConfig()
	switch format {
	case "toml":
		if err := toml.Unmarshal(raw, c); err != nil {
			return errors.Wrap(err, "unable to parse TOML configuration")
		}
	case "yaml":
		if err := yaml.UnmarshalWithOptions(raw, c, yaml.Strict()); err != nil {
			return errors.Wrap(err, "unable to parse YAML configuration")
		}
	default:
		return errors.Wrapf(ErrUnknownFormat, "format %q", format)
	}
	config = c
	return nil
}
