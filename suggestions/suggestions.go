package suggestions

import (
	"context"
	"fmt"
	"strings"

	"planora/rdx"

	"github.com/redis/go-redis/v9"
)

const (
	plansKey     = "autocomplete:plans"
	countriesKey = "autocomplete:countries"
)

// AddPlanToAutocomplete registers a published plan for marketplace
// search suggestions. Both ID and name are stored so the client can
// link straight to the plan.
func AddPlanToAutocomplete(ctx context.Context, planID, planName string) error {
	name := strings.TrimSpace(planName)
	if name == "" {
		return nil
	}
	// Name first so lexical prefix search matches what users type.
	member := fmt.Sprintf("%s|%s", name, planID)

	_, err := rdx.Conn.ZAdd(ctx, plansKey, redis.Z{Score: 0, Member: member}).Result()
	if err != nil {
		return fmt.Errorf("failed to add plan to autocomplete: %v", err)
	}
	return nil
}

// AddCountryToAutocomplete registers a destination country.
func AddCountryToAutocomplete(ctx context.Context, country string) error {
	country = strings.TrimSpace(country)
	if country == "" {
		return nil
	}
	_, err := rdx.Conn.ZAdd(ctx, countriesKey, redis.Z{Score: 0, Member: country}).Result()
	if err != nil {
		return fmt.Errorf("failed to add country to autocomplete: %v", err)
	}
	return nil
}

// SearchPlans returns plan suggestions matching a prefix.
func SearchPlans(ctx context.Context, query string, limit int64) ([]map[string]string, error) {
	results, err := searchPrefix(ctx, plansKey, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search plans in autocomplete: %v", err)
	}

	matches := []map[string]string{}
	for _, result := range results {
		parts := strings.SplitN(result, "|", 2)
		if len(parts) != 2 {
			continue
		}
		matches = append(matches, map[string]string{
			"id":   parts[1],
			"name": parts[0],
		})
	}
	return matches, nil
}

// SearchCountries returns country suggestions matching a prefix.
func SearchCountries(ctx context.Context, query string, limit int64) ([]string, error) {
	results, err := searchPrefix(ctx, countriesKey, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search countries in autocomplete: %v", err)
	}
	return results, nil
}

func searchPrefix(ctx context.Context, key, query string, limit int64) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	return rdx.Conn.ZRangeByLex(ctx, key, &redis.ZRangeBy{
		Min:    "[" + query,
		Max:    "[" + query + "\xff",
		Offset: 0,
		Count:  limit,
	}).Result()
}
