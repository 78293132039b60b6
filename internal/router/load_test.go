package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avaroute/internal/config"
	"github.com/vyrodovalexey/avaroute/internal/util"
)

const loadRoutesYAML = `
eagerCompile: true
routes:
  user.show:
    path: /users/{id}
    methods: [GET, HEAD]
    patterns:
      id: '\d+'
    defaults:
      controller: users
  1:
    path: /about
  ~:
    path: /files/{path:.+}
    methods: [PUT]
`

func TestBuildCollection(t *testing.T) {
	t.Parallel()

	cfg, err := config.ParseConfig([]byte(loadRoutesYAML))
	require.NoError(t, err)

	c, err := BuildCollection(cfg)
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	routes := c.Routes()
	assert.Equal(t, "/users/{id}", routes[0].Path())
	assert.Equal(t, MethodGet, routes[0].Methods())
	assert.Equal(t, `/users/(?P<p0>\d+)`, routes[0].Regexp())
	assert.Equal(t, map[string]string{"controller": "users"}, routes[0].Defaults())
	assert.True(t, routes[1].IsStatic())
	assert.Equal(t, MethodPut, routes[2].Methods())

	named, err := c.Route("user.show")
	require.NoError(t, err)
	assert.Same(t, routes[0], named)
}

func TestBuildCollection_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		routes  config.RouteTable
		message string
		wantErr error
	}{
		{
			name:    "bad template",
			routes:  config.RouteTable{{Key: "bad", Route: config.RouteSpec{Path: "/a/{"}}},
			message: `route "bad"`,
			wantErr: util.ErrParse,
		},
		{
			name:    "bad method",
			routes:  config.RouteTable{{Route: config.RouteSpec{Path: "/a", Methods: []string{"PATCH"}}}},
			message: "route #0",
			wantErr: util.ErrInvalidArgument,
		},
		{
			name:    "bad key",
			routes:  config.RouteTable{{Key: true, Route: config.RouteSpec{Path: "/a"}}},
			message: "route #0",
			wantErr: util.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := BuildCollection(&config.RouterConfig{Routes: tt.routes})
			assert.Nil(t, c)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestRouter_Load(t *testing.T) {
	t.Parallel()

	cfg, err := config.ParseConfig([]byte(loadRoutesYAML))
	require.NoError(t, err)

	r := New()
	require.NoError(t, r.Load(cfg))
	assert.Equal(t, 3, r.Len())

	match, err := r.MatchString("HEAD", "/users/12")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, map[string]string{"id": "12", "controller": "users"}, match.Parameters())

	match, err = r.MatchString("PUT", "/files/a/b.txt")
	require.NoError(t, err)
	require.NotNil(t, match)
	v, _ := match.Param("path")
	assert.Equal(t, "a/b.txt", v)
}

func TestRouter_Load_KeepsCurrentOnFailure(t *testing.T) {
	t.Parallel()

	r := New()
	_, err := r.Add("/keep", WithName("keep"))
	require.NoError(t, err)

	tests := []struct {
		name string
		cfg  *config.RouterConfig
	}{
		{
			name: "invalid config",
			cfg:  &config.RouterConfig{Routes: config.RouteTable{{Key: "x", Route: config.RouteSpec{}}}},
		},
		{
			name: "bad template",
			cfg:  &config.RouterConfig{Routes: config.RouteTable{{Route: config.RouteSpec{Path: "/{"}}}},
		},
		{
			name: "eager compile failure",
			cfg: &config.RouterConfig{
				EagerCompile: true,
				Routes:       config.RouteTable{{Route: config.RouteSpec{Path: "/x/{id:(}"}}},
			},
		},
	}

	for _, tt := range tests {
		require.Error(t, r.Load(tt.cfg), tt.name)

		route, err := r.Route("keep")
		require.NoError(t, err, tt.name)
		assert.Equal(t, "/keep", route.Path())
		assert.Equal(t, 1, r.Len())
	}
}

func TestRouter_Load_LazyCompile(t *testing.T) {
	t.Parallel()

	cfg := &config.RouterConfig{
		Routes: config.RouteTable{{Route: config.RouteSpec{Path: "/x/{id:(}"}}},
	}

	r := New()
	require.NoError(t, r.Load(cfg))

	_, err := r.Match("/x/1", MethodGet)
	assert.ErrorIs(t, err, util.ErrPattern)
}
