package dao

import (
	"Arena/config"
	"Arena/dao/rest"
	"Arena/pkg/database"
	"Arena/pkg/log"
	"Arena/service"
	"fmt"

	"go.uber.org/zap"
)

// NewBackend picks the backend collaborator named by database.driver.
func NewBackend(conf *config.Config) (service.Backend, func(), error) {
	switch conf.Database.Driver {
	case config.DriverPostgres:
		db, cleanup, err := database.NewDB(conf)
		if err != nil {
			return nil, nil, err
		}
		log.L.Info("backend selected", zap.String("driver", config.DriverPostgres))
		return NewStore(db), cleanup, nil
	case config.DriverSupabase:
		store, err := rest.NewStore(conf)
		if err != nil {
			return nil, nil, err
		}
		log.L.Info("backend selected", zap.String("driver", config.DriverSupabase))
		return store, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", conf.Database.Driver)
	}
}
