package config

type App struct {
	Env     string `json:"env" yaml:"env"`
	Debug   bool   `json:"debug" yaml:"debug"`
	Release string `json:"release" yaml:"release"`
}
