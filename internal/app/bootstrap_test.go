package app

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobseek/internal/config"
	"jobseek/internal/delivery/http/middleware"
	"jobseek/internal/infrastructure/cache"
	"jobseek/internal/searchindex"
	"jobseek/internal/usecase"
	"jobseek/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenAddr(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "8080", want: ":8080"},
		{in: " :9090 ", want: ":9090"},
		{in: "", wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ListenAddr(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestNew_MountsSearchRouteWithMiddleware(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	mem, err := cache.NewMemory(cache.DefaultShards)
	require.NoError(t, err)

	c := &Container{
		Config: config.Config{App: config.AppConfig{AppName: "jobseek-test"}},
		Logger: logger,
		Index:  searchindex.NewMemoryIndex(),
		Cache:  mem,
		Hub:    ws.NewHub(logger),
	}
	c.Search = usecase.NewJobSearchUsecase(c.Index, c.Cache, logger)

	a := New(c)

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/jobs/search?keyword=go", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	resp, err = a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/jobs/search?page=-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
