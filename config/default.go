package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

func defaultConfig() (Config, error) {
	var def Config

	err := toml.Unmarshal([]byte(DefaultCfg), &def)

	if err != nil {
		return Config{}, errors.Wrap(err, "parsing default config")
	}

	return def, nil
}

// DefaultCfg shows the default configuration of feedkeeper
var DefaultCfg = `
[server]
	port = 8080
	cors-origins = []
[log]
	level = "info"     # error, info, debug
	file = "-"         # stderr, or a filename
	formatter = "text" # text, json
	repo-call-duration = false
[db]
	driver = "sqlite"  # sqlite, postgres, bolt
	connect = "file:./storage/content.sqlite3?_pragma=busy_timeout(50000)"
[timeout]
	connect = "5s"
	request = "15s"
[download]
	user-agent = "feedkeeper/1.0 (+https://github.com/urandom/feedkeeper)"
	max-in-flight = 500
[finder]
	cache-ttl = "5m"
	cache-cleanup = "10m"
[refresh]
	interval = "30m"
	on-start = true
[status]
	cleanup-age = "4320h" # 180 days
	today-cutoff = "24h"
`
