package rest

import (
	"Arena/models"
	"Arena/pkg/log"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var errEmptyResponse = errors.New("empty rpc response")

// call invokes a database function. The client folds transport failures
// into an empty body, so an empty body is an error unless the function
// returns void.
func (s *Store) call(ctx context.Context, name string, body map[string]any) (gjson.Result, error) {
	if err := alive(ctx); err != nil {
		return gjson.Result{}, err
	}
	return parseRPC(name, s.client.Rpc(name, "", body))
}

func parseRPC(name, raw string) (gjson.Result, error) {
	if raw == "" {
		return gjson.Result{}, fmt.Errorf("%s: %w", name, errEmptyResponse)
	}
	if !gjson.Valid(raw) {
		return gjson.Result{}, fmt.Errorf("%s: malformed response", name)
	}
	if e := parseError(raw); e != nil {
		return gjson.Result{}, e
	}
	return gjson.Parse(raw), nil
}

// decodeRows decodes a set-returning function result. A lone object is
// treated as a one-row set.
func decodeRows[T any](res gjson.Result) ([]T, error) {
	rows := make([]T, 0)
	switch {
	case res.IsArray():
		if err := json.Unmarshal([]byte(res.Raw), &rows); err != nil {
			return nil, err
		}
	case res.IsObject():
		var row T
		if err := json.Unmarshal([]byte(res.Raw), &row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	case res.Type == gjson.Null:
	default:
		return nil, fmt.Errorf("unexpected rpc result %s", res.Type)
	}
	return rows, nil
}

// decodeCount accepts a bare number or a one-row set with a single column.
func decodeCount(res gjson.Result) (int, error) {
	switch {
	case res.Type == gjson.Number:
		return int(res.Int()), nil
	case res.IsArray():
		first := res.Get("0")
		if !first.Exists() {
			return 0, nil
		}
		return decodeCount(first)
	case res.IsObject():
		var n int
		found := false
		res.ForEach(func(_, v gjson.Result) bool {
			if v.Type == gjson.Number {
				n, found = int(v.Int()), true
				return false
			}
			return true
		})
		if found {
			return n, nil
		}
	case res.Type == gjson.Null:
		return 0, nil
	}
	return 0, fmt.Errorf("unexpected count result %s", res.Raw)
}

func (s *Store) EnrichedTopics(ctx context.Context, categoryID *string, limit, offset int) ([]models.EnrichedTopicRow, error) {
	res, err := s.call(ctx, "get_enriched_topics", map[string]any{
		"p_category_id": categoryID,
		"p_limit":       limit,
		"p_offset":      offset,
	})
	if err != nil {
		return nil, err
	}
	return decodeRows[models.EnrichedTopicRow](res)
}

func (s *Store) EnrichedTopicsCount(ctx context.Context, categoryID *string) (int, error) {
	res, err := s.call(ctx, "get_enriched_topics_count", map[string]any{"p_category_id": categoryID})
	if err != nil {
		return 0, err
	}
	return decodeCount(res)
}

func (s *Store) HotTopics(ctx context.Context, limit, offset int) ([]models.HotTopicRow, error) {
	res, err := s.call(ctx, "get_hot_topics", map[string]any{
		"limit_count":  limit,
		"offset_count": offset,
	})
	if err != nil {
		return nil, err
	}
	return decodeRows[models.HotTopicRow](res)
}

func (s *Store) HotTopicsCount(ctx context.Context) (int, error) {
	res, err := s.call(ctx, "get_hot_topics_count", map[string]any{})
	if err != nil {
		return 0, err
	}
	return decodeCount(res)
}

func (s *Store) CategoriesByActivity(ctx context.Context, parentID *string, level *int) ([]models.CategoryActivityRow, error) {
	res, err := s.call(ctx, "get_categories_by_activity", map[string]any{
		"p_parent_category_id": parentID,
		"p_category_level":     level,
	})
	if err != nil {
		return nil, err
	}
	return decodeRows[models.CategoryActivityRow](res)
}

func (s *Store) CategoryStats(ctx context.Context, categoryID string) (*models.CategoryStats, error) {
	res, err := s.call(ctx, "get_category_stats", map[string]any{"p_category_id": categoryID})
	if err != nil {
		return nil, err
	}
	rows, err := decodeRows[models.CategoryStats](res)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

func (s *Store) IncrementViewCount(ctx context.Context, topicID string) error {
	if err := alive(ctx); err != nil {
		return err
	}
	raw := s.client.Rpc("increment_view_count", "", map[string]any{"topic_id": topicID})
	if raw == "" {
		// a void result and a transport failure look the same here
		log.L.Debug("increment_view_count returned no body", zap.String("topic_id", topicID))
		return nil
	}
	if e := parseError(raw); e != nil {
		return e
	}
	return nil
}
