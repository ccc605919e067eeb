package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogFile          string   `yaml:"log"`
	ScanRoot         string   `yaml:"scan_root"`
	CachePath        string   `yaml:"cache_path"`
	VectorExtensions []string `yaml:"vector_extensions"`
	RasterExtensions []string `yaml:"raster_extensions"`
	Results          int      `yaml:"results"`
	MergeEventsMs    int      `yaml:"write_debounce_ms"`
	ServerAddr       string   `yaml:"server_addr"`
}

func readConfig(cfgPath string) (*Config, error) {
	cfgFile, err := os.Open(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open config file: %w", err)
	}
	defer cfgFile.Close()

	cfg := &Config{}
	dec := yaml.NewDecoder(cfgFile)
	err = dec.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ScanRoot == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.ScanRoot = home
		}
	}
	if c.CachePath == "" {
		c.CachePath = "find_file_index.sqlite"
	}
	if len(c.VectorExtensions) == 0 {
		c.VectorExtensions = []string{".shp", ".gpkg", ".fgb"}
	}
	if len(c.RasterExtensions) == 0 {
		c.RasterExtensions = []string{".tif"}
	}
	if c.Results <= 0 {
		c.Results = defaultResultLimit
	}
	if c.MergeEventsMs <= 0 {
		c.MergeEventsMs = 500
	}
}
