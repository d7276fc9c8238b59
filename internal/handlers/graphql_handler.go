package handlers

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
)

// GraphQLHandler serves the single GraphQL endpoint
type GraphQLHandler struct {
	schema graphql.Schema
}

// NewGraphQLHandler creates a new GraphQLHandler
func NewGraphQLHandler(schema graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

// RegisterGraphQLRoutes registers the GraphQL endpoint
func (h *GraphQLHandler) RegisterGraphQLRoutes(e *echo.Echo, m ...echo.MiddlewareFunc) {
	e.POST("/graphql", h.Execute, m...)
}

// graphQLRequest is the standard POST body of a GraphQL request
type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Execute runs a GraphQL operation. Resolver failures travel in the
// response's errors array, so the HTTP status is 200 for anything that
// parsed as a request at all.
func (h *GraphQLHandler) Execute(c echo.Context) error {
	var req graphQLRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing query")
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.Request().Context(),
	})
	return c.JSON(http.StatusOK, result)
}
