package rest

import (
	"Arena/config"
	"Arena/models"
	"Arena/service"
	"context"
	"errors"
	"fmt"

	"github.com/supabase-community/supabase-go"
)

var _ service.Backend = (*Store)(nil)

// Store serves the page assemblers through the Supabase REST gateway with
// the service role key.
type Store struct {
	client *supabase.Client
}

func NewStore(conf *config.Config) (*Store, error) {
	if conf.Supabase == nil || conf.Supabase.URL == "" || conf.Supabase.Key == "" {
		return nil, errors.New("supabase url and key must be set")
	}
	client, err := supabase.NewClient(conf.Supabase.URL, conf.Supabase.Key, &supabase.ClientOptions{
		Schema: conf.Supabase.Schema,
	})
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return &Store{client: client}, nil
}

// The REST client takes no context, so cancellation is only observed
// between calls.
func alive(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) ForumSettings(ctx context.Context) ([]models.ForumSetting, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	var rows []models.ForumSetting
	_, err := s.client.From("forum_settings").
		Select("setting_key,setting_value,setting_type,category,description,is_public", "", false).
		Order("setting_key", asc).
		ExecuteTo(&rows)
	return rows, wrap(err)
}
