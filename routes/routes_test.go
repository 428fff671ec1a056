package routes

import (
	"testing"

	"planora/ratelim"

	"github.com/julienschmidt/httprouter"
)

func TestRoutesRegistered(t *testing.T) {
	router := httprouter.New()
	RoutesWrapper(router, ratelim.NewRateLimiter())

	cases := []struct {
		method string
		path   string
	}{
		{"POST", "/api/auth/register"},
		{"POST", "/api/auth/login"},
		{"GET", "/api/user/u1/plans"},
		{"PUT", "/api/user/u1/role"},
		{"POST", "/api/plans"},
		{"GET", "/api/plans/p1"},
		{"PUT", "/api/plans/p1/sell"},
		{"GET", "/api/plans/p1/days/1/buffer"},
		{"POST", "/api/plans/p1/days/1/commit"},
		{"GET", "/api/plans/p1/summary"},
		{"GET", "/api/plans/p1/preview/pdf"},
		{"GET", "/api/market/plans"},
		{"GET", "/api/suggestions/countries"},
	}
	for _, tc := range cases {
		handle, _, _ := router.Lookup(tc.method, tc.path)
		if handle == nil {
			t.Errorf("%s %s not registered", tc.method, tc.path)
		}
	}
}
