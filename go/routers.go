// Package orderserver exposes the order service over HTTP with gin.
package orderserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions bundles the API handlers mounted by NewRouter.
type ApiHandleFunctions struct {
	OrderAPI OrderAPI
}

// NewRouter returns a new router with the order routes and a liveness probe.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	for _, route := range getRoutes(handleFunctions) {
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"PlaceOrder",
			http.MethodPost,
			"/order/placeOrder",
			handleFunctions.OrderAPI.PlaceOrder,
		},
		{
			"GetOrderDetails",
			http.MethodGet,
			"/order/:orderId",
			handleFunctions.OrderAPI.GetOrderDetails,
		},
		{
			"Healthz",
			http.MethodGet,
			"/healthz",
			Healthz,
		},
	}
}
