// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

// Package rest implements a read-only REST API for the implementor index.
//
// All responses are JSON. Lists are never null: a unit with no implementors
// is returned as an empty list, which is different from a unit that is absent (404).
package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/korrel8r/implindex/internal/pkg/logging"
	"github.com/korrel8r/implindex/pkg/implementors"
	"github.com/korrel8r/implindex/pkg/registry"
)

var log = logging.Log()

// BasePath is the versioned base path for the current version of the REST API.
const BasePath = "/api/v1"

type API struct {
	Registry *registry.Registry
	// Exclude units from capability entries unless the request has an exclude parameter.
	Exclude []implementors.Unit
}

// New API instance, registers handlers with a gin Engine.
func New(r *registry.Registry, exclude []implementors.Unit, router *gin.Engine) (*API, error) {
	a := &API{Registry: r, Exclude: exclude}
	router.Use(a.logger)
	router.GET("/", func(c *gin.Context) { c.Redirect(http.StatusTemporaryRedirect, BasePath+"/capabilities") })
	v := router.Group(BasePath)
	v.GET("/capabilities", a.Capabilities)
	v.GET("/capabilities/:capability", a.Capability)
	v.GET("/capabilities/:capability/units/:unit", a.Unit)
	v.GET("/status", a.Status)
	v.GET("/pending", a.Pending)
	v.PUT("/config", a.PutConfig)
	return a, nil
}

// Capabilities handler returns a summary of each capability in index order.
func (a *API) Capabilities(c *gin.Context) {
	summaries := []registry.Summary{} // return [] not null for empty
	summaries = append(summaries, a.Registry.Index().Summaries()...)
	c.JSON(http.StatusOK, summaries)
}

// Capability handler returns the entries for a capability, in unit merge order.
func (a *API) Capability(c *gin.Context) {
	opts := Options{}
	if !check(c, http.StatusBadRequest, c.BindQuery(&opts)) {
		return
	}
	capability := implementors.Capability(c.Param("capability"))
	entries, err := a.Registry.Index().Entries(capability, a.exclude(c, opts)...)
	if !check(c, http.StatusNotFound, err) {
		return
	}
	c.JSON(http.StatusOK, Capability{Capability: capability, Entries: entries})
}

// Unit handler returns the descriptors contributed by one unit for a capability.
func (a *API) Unit(c *gin.Context) {
	capability := implementors.Capability(c.Param("capability"))
	descriptors, err := a.Registry.Index().ImplementorsErr(capability, implementors.Unit(c.Param("unit")))
	if !check(c, http.StatusNotFound, err) {
		return
	}
	c.JSON(http.StatusOK, descriptors)
}

// Status handler returns the lifecycle state of the registry.
func (a *API) Status(c *gin.Context) {
	c.JSON(http.StatusOK, a.Registry.Status())
}

// Pending handler returns contributions still waiting for the registrar, in submission order.
func (a *API) Pending(c *gin.Context) {
	pending := []implementors.Contribution{}
	pending = append(pending, a.Registry.PendingContributions()...)
	c.JSON(http.StatusOK, pending)
}

// exclude returns the units to exclude for a request.
// An exclude parameter replaces the default, "?exclude=" excludes nothing.
func (a *API) exclude(c *gin.Context, opts Options) []implementors.Unit {
	if _, ok := c.GetQueryArray("exclude"); !ok {
		return a.Exclude
	}
	var units []implementors.Unit
	for _, u := range opts.Exclude {
		if u != "" {
			units = append(units, implementors.Unit(u))
		}
	}
	return units
}

func check(c *gin.Context, code int, err error, format ...any) (ok bool) {
	if err != nil && !c.IsAborted() {
		if len(format) > 0 {
			err = fmt.Errorf("%v: %w", fmt.Sprintf(format[0].(string), format[1:]...), err)
		}
		c.AbortWithStatusJSON(code, c.Error(err).JSON())
		log.V(1).Info("Abort request", "url", c.Request.URL, "code", code, "error", err.Error())
	}
	return err == nil && !c.IsAborted()
}
