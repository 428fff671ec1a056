package market

import (
	"net/url"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestParseFiltersDefaults(t *testing.T) {
	f := ParseFilters(url.Values{})

	if f.Page != 1 || f.Limit != 20 {
		t.Errorf("defaults = page %d limit %d, want 1/20", f.Page, f.Limit)
	}
	if !f.Ascending {
		t.Error("default order should be ascending")
	}
	if f.SearchQuery != "" || len(f.Countries) != 0 {
		t.Errorf("empty query parsed into %+v", f)
	}
}

func TestParseFilters(t *testing.T) {
	values := url.Values{
		"search":    {"  coastal  "},
		"minPrice":  {"100"},
		"maxPrice":  {"500"},
		"minDays":   {"3"},
		"maxDays":   {"7"},
		"countries": {"Japan, Korea , "},
		"sort":      {"price"},
		"order":     {"desc"},
		"page":      {"2"},
		"limit":     {"10"},
	}

	f := ParseFilters(values)

	if f.SearchQuery != "coastal" {
		t.Errorf("search = %q, want %q", f.SearchQuery, "coastal")
	}
	if f.MinPrice != 100 || f.MaxPrice != 500 {
		t.Errorf("price range = %v..%v, want 100..500", f.MinPrice, f.MaxPrice)
	}
	if f.MinDays != 3 || f.MaxDays != 7 {
		t.Errorf("days range = %d..%d, want 3..7", f.MinDays, f.MaxDays)
	}
	if want := []string{"Japan", "Korea"}; !reflect.DeepEqual(f.Countries, want) {
		t.Errorf("countries = %v, want %v", f.Countries, want)
	}
	if f.Ascending {
		t.Error("order=desc parsed as ascending")
	}
	if f.Page != 2 || f.Limit != 10 {
		t.Errorf("paging = %d/%d, want 2/10", f.Page, f.Limit)
	}
}

func TestParseFiltersIgnoresBadPaging(t *testing.T) {
	f := ParseFilters(url.Values{
		"page":  {"-1"},
		"limit": {"9999"},
	})

	if f.Page != 1 || f.Limit != 20 {
		t.Errorf("bad paging accepted: %d/%d", f.Page, f.Limit)
	}
}

func TestCacheableOnlyForDefaultListing(t *testing.T) {
	if !ParseFilters(url.Values{}).cacheable() {
		t.Error("default listing not cacheable")
	}

	// Any deviation from the default must bypass the shared cache entry.
	deviations := []url.Values{
		{"limit": {"5"}},
		{"page": {"2"}},
		{"order": {"desc"}},
		{"sort": {"price"}},
		{"search": {"coastal"}},
		{"minPrice": {"10"}},
		{"countries": {"Japan"}},
	}
	for _, values := range deviations {
		if ParseFilters(values).cacheable() {
			t.Errorf("filters %v incorrectly cacheable", values)
		}
	}
}

func TestQueryAlwaysRequiresSell(t *testing.T) {
	q := Filters{}.query()

	if sell, ok := q["sell"]; !ok || sell != true {
		t.Errorf("query = %v, want sell: true", q)
	}
	if len(q) != 1 {
		t.Errorf("empty filters produced extra clauses: %v", q)
	}
}

func TestQueryRanges(t *testing.T) {
	q := Filters{MinPrice: 50, MaxPrice: 200, MinDays: 2, Countries: []string{"Italy"}}.query()

	price, ok := q["totalPrice"].(bson.M)
	if !ok || price["$gte"] != 50.0 || price["$lte"] != 200.0 {
		t.Errorf("price clause = %v", q["totalPrice"])
	}
	days, ok := q["totalDays"].(bson.M)
	if !ok || days["$gte"] != 2 {
		t.Errorf("days clause = %v", q["totalDays"])
	}
	if _, ok := q["selectedCountries"]; !ok {
		t.Errorf("countries clause missing: %v", q)
	}
}

func TestSortOptions(t *testing.T) {
	asc := Filters{SortOption: "price", Ascending: true}.sort()
	if asc[0].Key != "totalPrice" || asc[0].Value != 1 {
		t.Errorf("ascending price sort = %v", asc)
	}
	desc := Filters{SortOption: "days"}.sort()
	if desc[0].Key != "totalDays" || desc[0].Value != -1 {
		t.Errorf("descending days sort = %v", desc)
	}
	fallback := Filters{SortOption: "bogus"}.sort()
	if fallback[0].Key != "version" {
		t.Errorf("fallback sort = %v", fallback)
	}
}
