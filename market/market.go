package market

import (
	"context"
	"strconv"
	"strings"

	"planora/db"
	"planora/models"
	"planora/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Filters narrow the marketplace listing. Zero values mean "no
// constraint": an empty query matches everything for sale.
type Filters struct {
	SearchQuery string
	MinPrice    float64
	MaxPrice    float64
	MinDays     int
	MaxDays     int
	Countries   []string
	SortOption  string
	Ascending   bool
	Page        int
	Limit       int
}

// ParseFilters reads marketplace filters from query parameters.
func ParseFilters(values map[string][]string) Filters {
	get := func(key string) string {
		if v, ok := values[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	f := Filters{
		SearchQuery: strings.TrimSpace(get("search")),
		SortOption:  get("sort"),
		Ascending:   get("order") != "desc",
		Page:        1,
		Limit:       20,
	}
	f.MinPrice, _ = strconv.ParseFloat(get("minPrice"), 64)
	f.MaxPrice, _ = strconv.ParseFloat(get("maxPrice"), 64)
	f.MinDays, _ = strconv.Atoi(get("minDays"))
	f.MaxDays, _ = strconv.Atoi(get("maxDays"))
	if page, err := strconv.Atoi(get("page")); err == nil && page > 0 {
		f.Page = page
	}
	if limit, err := strconv.Atoi(get("limit")); err == nil && limit > 0 && limit <= 100 {
		f.Limit = limit
	}
	if countries := get("countries"); countries != "" {
		for _, c := range strings.Split(countries, ",") {
			if c = strings.TrimSpace(c); c != "" {
				f.Countries = append(f.Countries, c)
			}
		}
	}
	return f
}

// cacheable reports whether this request is exactly the default
// listing — no filters, default sort, order and paging. Anything else
// must not serve or seed the shared cache entry.
func (f Filters) cacheable() bool {
	return f.SearchQuery == "" && f.MinPrice == 0 && f.MaxPrice == 0 &&
		f.MinDays == 0 && f.MaxDays == 0 && len(f.Countries) == 0 &&
		f.SortOption == "" && f.Ascending &&
		f.Page == 1 && f.Limit == 20
}

func (f Filters) query() bson.M {
	// Only plans marked for sale are listed.
	query := bson.M{"sell": true}

	if f.SearchQuery != "" {
		query["$or"] = []bson.M{
			{"name": bson.M{"$regex": f.SearchQuery, "$options": "i"}},
			{"description": bson.M{"$regex": f.SearchQuery, "$options": "i"}},
		}
	}
	price := bson.M{}
	if f.MinPrice > 0 {
		price["$gte"] = f.MinPrice
	}
	if f.MaxPrice > 0 {
		price["$lte"] = f.MaxPrice
	}
	if len(price) > 0 {
		query["totalPrice"] = price
	}
	days := bson.M{}
	if f.MinDays > 0 {
		days["$gte"] = f.MinDays
	}
	if f.MaxDays > 0 {
		days["$lte"] = f.MaxDays
	}
	if len(days) > 0 {
		query["totalDays"] = days
	}
	if len(f.Countries) > 0 {
		query["selectedCountries"] = bson.M{"$in": f.Countries}
	}
	return query
}

func (f Filters) sort() bson.D {
	direction := 1
	if !f.Ascending {
		direction = -1
	}
	switch f.SortOption {
	case "price":
		return bson.D{{Key: "totalPrice", Value: direction}}
	case "days":
		return bson.D{{Key: "totalDays", Value: direction}}
	case "name":
		return bson.D{{Key: "name", Value: direction}}
	default:
		return bson.D{{Key: "version", Value: -1}}
	}
}

// ListPlans fetches plans for sale matching the filters.
func ListPlans(ctx context.Context, f Filters) ([]models.Plan, error) {
	opts := options.Find().
		SetSort(f.sort()).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	return utils.FindAndDecode[models.Plan](ctx, db.PlansCollection, f.query(), opts)
}
