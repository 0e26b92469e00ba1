package config

import (
	"io"
	"os"
	"time"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

type Server struct {
	Address     string   `toml:"address"`
	Port        int      `toml:"port"`
	CertFile    string   `toml:"cert-file"`
	KeyFile     string   `toml:"key-file"`
	CORSOrigins []string `toml:"cors-origins"`
}

type Log struct {
	Level            string `toml:"level"`
	File             string `toml:"file"`
	Formatter        string `toml:"formatter"`
	RepoCallDuration bool   `toml:"repo-call-duration"`

	Converted struct {
		Writer io.Writer
	} `toml:"-"`
}

type Timeout struct {
	Connect string `toml:"connect"`
	Request string `toml:"request"`

	Converted struct {
		Connect time.Duration
		Request time.Duration
	} `toml:"-"`
}

type DB struct {
	Driver  string `toml:"driver"`
	Connect string `toml:"connect"`
}

type Download struct {
	UserAgent   string `toml:"user-agent"`
	MaxInFlight int    `toml:"max-in-flight"`
}

type Finder struct {
	CacheTTL     string `toml:"cache-ttl"`
	CacheCleanup string `toml:"cache-cleanup"`

	Converted struct {
		CacheTTL     time.Duration
		CacheCleanup time.Duration
	} `toml:"-"`
}

type Refresh struct {
	Interval string `toml:"interval"`
	OnStart  bool   `toml:"on-start"`

	Converted struct {
		Interval time.Duration
	} `toml:"-"`
}

type Status struct {
	CleanupAge  string `toml:"cleanup-age"`
	TodayCutoff string `toml:"today-cutoff"`

	Converted struct {
		CleanupAge  time.Duration
		TodayCutoff time.Duration
	} `toml:"-"`
}

type converter interface {
	Convert()
}

func (c *Log) Convert() {
	if c.File == "-" || c.File == "" {
		c.Converted.Writer = os.Stderr
	} else {
		c.Converted.Writer = &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    20,
			MaxBackups: 5,
			MaxAge:     28,
		}
	}
}

func (c *Timeout) Convert() {
	c.Converted.Connect = parseDuration(c.Connect, 5*time.Second)
	c.Converted.Request = parseDuration(c.Request, 15*time.Second)
}

func (c *Finder) Convert() {
	c.Converted.CacheTTL = parseDuration(c.CacheTTL, 5*time.Minute)
	c.Converted.CacheCleanup = parseDuration(c.CacheCleanup, 10*time.Minute)
}

func (c *Refresh) Convert() {
	c.Converted.Interval = parseDuration(c.Interval, 30*time.Minute)
}

func (c *Status) Convert() {
	c.Converted.CleanupAge = parseDuration(c.CleanupAge, 180*24*time.Hour)
	c.Converted.TodayCutoff = parseDuration(c.TodayCutoff, 24*time.Hour)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}

	return fallback
}
