package graphql

import (
	"github.com/labstack/echo/v4"

	"inventify.GO/api"
	"inventify.GO/graphqlserver"
)

func init() {
	api.RegisterRoute(RegisterGraphQLRoutes)
}

// RegisterGraphQLRoutes mounts the read-only reporting endpoint at /graphql
// (public, like the rest of the read projections).
func RegisterGraphQLRoutes(e *echo.Echo, deps *api.Deps) {
	h := graphqlserver.NewHandler(deps)
	e.POST("/graphql", echo.WrapHandler(h))
}
