package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
)

type orgApi struct {
	svc org.Service
}

func registerOrgAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc org.Service) {
	api := orgApi{svc: svc}

	sg := g.Group("/sites", jwt)
	sg.GET("", api.querySites)
	sg.POST("", api.createSite, nationalMiddleware())
	sg.GET("/:id", api.retrieveSite)

	gg := g.Group("/small-groups", jwt)
	gg.GET("", api.querySmallGroups)
	gg.POST("", api.createSmallGroup, nationalMiddleware())
	gg.GET("/:id", api.retrieveSmallGroup)
}

func (api *orgApi) createSite(ctx echo.Context) error {
	var data org.NewSite
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSite")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	site, err := api.svc.CreateSite(data)
	if err != nil {
		return errors.Wrap(err, "creating site")
	}
	return ctx.JSON(http.StatusCreated, site)
}

func (api *orgApi) querySites(ctx echo.Context) error {
	sites, err := api.svc.QuerySites()
	if err != nil {
		return errors.Wrap(err, "querying sites")
	}
	if sites == nil {
		sites = []org.Site{}
	}
	return ctx.JSON(http.StatusOK, sites)
}

func (api *orgApi) retrieveSite(ctx echo.Context) error {
	site, err := api.svc.GetSite(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == org.ErrSiteNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding site by ID")
	}
	return ctx.JSON(http.StatusOK, site)
}

func (api *orgApi) createSmallGroup(ctx echo.Context) error {
	var data org.NewSmallGroup
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSmallGroup")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	group, err := api.svc.CreateSmallGroup(data)
	if err != nil {
		return errors.Wrap(err, "creating small group")
	}
	return ctx.JSON(http.StatusCreated, group)
}

func (api *orgApi) querySmallGroups(ctx echo.Context) error {
	groups, err := api.svc.QuerySmallGroups()
	if err != nil {
		return errors.Wrap(err, "querying small groups")
	}
	if groups == nil {
		groups = []org.SmallGroup{}
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api *orgApi) retrieveSmallGroup(ctx echo.Context) error {
	group, err := api.svc.GetSmallGroup(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == org.ErrSmallGroupNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding small group by ID")
	}
	return ctx.JSON(http.StatusOK, group)
}
