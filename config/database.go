package config

const (
	DriverPostgres = "postgres"
	DriverSupabase = "supabase"
)

// Database selects the backend collaborator. Driver "postgres" talks to the
// database directly through gorm; "supabase" goes through PostgREST.
type Database struct {
	Driver string `json:"driver" yaml:"driver"`
	Dsn    string `json:"dsn" yaml:"dsn"`
	Debug  bool   `json:"debug" yaml:"debug"`
}

type Supabase struct {
	URL    string `json:"url" yaml:"url"`
	Key    string `json:"key" yaml:"key"`
	Schema string `json:"schema" yaml:"schema"`
}

type Sentry struct {
	Dsn string `json:"dsn" yaml:"dsn"`
}
