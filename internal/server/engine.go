// Package server implements a single-process rendition of the proxy REST
// surface, enough to develop and test the client against without a full
// namespace deployment.
package server

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/brandontheis/oio-sds/internal/database"
	middlewarepkg "github.com/brandontheis/oio-sds/internal/server/middleware"
	"github.com/brandontheis/oio-sds/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/logger"
)

// A Controller is an Inversion Of Control pattern used to init the server package.
type Controller struct {
	Version  string
	Logger   logger.Logger
	Database database.Client
	Storage  storage.Backend
	//
	Namespace string
	// Fabricated metadata tier assignments served by reference/show.
	Meta0 []string
	Meta1 []string
	Meta2 []string
}

// EchoEngine instantiates the web server.
func EchoEngine(ctrl Controller) *echo.Echo {
	engine := echo.New()
	engine.HideBanner = true
	engine.Use(middleware.Gzip())
	engine.Use(middlewarepkg.RequestID())
	engine.Use(middlewarepkg.Logger(ctrl.Logger))

	engine.HTTPErrorHandler = middlewarepkg.NewHTTPErrorHandler(ctrl.Logger)

	//
	//
	//

	router := engine.Group("")

	// Generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version":   ctrl.Version,
			"namespace": ctrl.Namespace,
		})
	})

	// Proxy, namespace scope
	//
	ns := router.Group("/v3.0/" + ctrl.Namespace)

	container := containerHandler{
		logger: ctrl.Logger,
		db:     ctrl.Database,
		blobs:  ctrl.Storage,
	}
	ns.POST("/container/create", container.Create)
	ns.POST("/container/create_many", container.CreateMany)
	ns.POST("/container/destroy", container.Destroy)
	ns.POST("/container/touch", container.Touch)
	ns.GET("/container/get_properties", container.GetProperties)
	ns.POST("/container/set_properties", container.SetProperties)
	ns.POST("/container/del_properties", container.DelProperties)

	object := objectHandler{
		logger: ctrl.Logger,
		db:     ctrl.Database,
		blobs:  ctrl.Storage,
	}
	ns.GET("/container/list", object.List)
	ns.PUT("/content/create", object.Upload)
	ns.GET("/content/fetch", object.Fetch)

	directory := directoryHandler{
		logger: ctrl.Logger,
		db:     ctrl.Database,
		meta0:  ctrl.Meta0,
		meta1:  ctrl.Meta1,
		meta2:  ctrl.Meta2,
	}
	ns.GET("/reference/show", directory.Show)

	// Account service
	//
	account := accountHandler{
		logger: ctrl.Logger,
		db:     ctrl.Database,
	}
	router.GET("/v1.0/account/containers", account.Containers)

	return engine
}

// PrintRoutes prints the Echo engine exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}
