package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App      *App      `json:"app" yaml:"app"`
	Server   *Server   `json:"server" yaml:"server"`
	Redis    *Redis    `json:"redis" yaml:"redis"`
	Database *Database `json:"database" yaml:"database"`
	Supabase *Supabase `json:"supabase" yaml:"supabase"`
	Sentry   *Sentry   `json:"sentry" yaml:"sentry"`
	Cache    *Cache    `json:"cache" yaml:"cache"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

// New reads the yaml file, applies environment overrides and fills defaults.
func New(filename string) *Config {
	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	conf, err := Parse(content)
	if err != nil {
		panic(fmt.Sprintf("parse %s: %v", filename, err))
	}

	return conf
}

// Parse decodes yaml content into a ready-to-use Config.
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, err
	}

	conf.applyEnv(os.Getenv)
	conf.withDefaults()

	return &conf, nil
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}

func (c *Config) applyEnv(getenv func(string) string) {
	if c.Redis == nil {
		c.Redis = &Redis{}
	}
	if c.Database == nil {
		c.Database = &Database{}
	}
	if c.Supabase == nil {
		c.Supabase = &Supabase{}
	}
	if c.Sentry == nil {
		c.Sentry = &Sentry{}
	}
	if c.Server == nil {
		c.Server = &Server{}
	}

	if v := getenv("REDIS_URL"); v != "" {
		c.Redis.URL = v
	}
	if v := getenv("DATABASE_URL"); v != "" {
		c.Database.Dsn = v
	}
	if v := getenv("SUPABASE_URL"); v != "" {
		c.Supabase.URL = v
	}
	if v := getenv("SUPABASE_SERVICE_ROLE_KEY"); v != "" {
		c.Supabase.Key = v
	}
	if v := getenv("SENTRY_DSN"); v != "" {
		c.Sentry.Dsn = v
	}
	if v := getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Http = port
		}
	}
}

func (c *Config) withDefaults() {
	if c.App == nil {
		c.App = &App{}
	}
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.Cache == nil {
		c.Cache = &Cache{}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSupabase
	}
	if c.Supabase.Schema == "" {
		c.Supabase.Schema = "public"
	}
	c.Cache.withDefaults()
	c.Redis.withDefaults()
}
