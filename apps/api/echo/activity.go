package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/activity"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
)

type activityApi struct {
	svc    activity.Service
	orgSvc org.Service
}

func registerActivityAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc activity.Service, orgSvc org.Service) {
	api := activityApi{svc: svc, orgSvc: orgSvc}

	ag := g.Group("/activities", jwt)
	ag.GET("", api.query)
	ag.POST("", api.create)
	ag.POST("/suggest", api.suggest)
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

func (api *activityApi) create(ctx echo.Context) error {
	var data activity.NewActivity
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewActivity")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	actor, policy, err := actorAndPolicy(ctx, api.orgSvc)
	if err != nil {
		return err
	}
	scope := org.Scope{Level: data.Level, SiteID: data.SiteID, SmallGroupID: data.SmallGroupID}
	if !policy.CanEdit(actor, scope) {
		return errHttpForbidden
	}

	act, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating activity")
	}
	return ctx.JSON(http.StatusCreated, act)
}

func (api *activityApi) query(ctx echo.Context) error {
	sel, err := bindSelector(ctx)
	if err != nil {
		return err
	}
	actor, policy, err := actorAndPolicy(ctx, api.orgSvc)
	if err != nil {
		return err
	}

	acts, excluded, err := api.svc.Visible(policy, actor, sel, time.Now())
	if err != nil {
		return selectorError(err)
	}
	if acts == nil {
		acts = []activity.Activity{}
	}
	return ctx.JSON(http.StatusOK, ListResponse{Results: acts, Excluded: excluded})
}

func (api *activityApi) retrieve(ctx echo.Context) error {
	act, err := api.getVisible(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, act)
}

func (api *activityApi) update(ctx echo.Context) error {
	act, err := api.getVisible(ctx)
	if err != nil {
		return err
	}

	actor, policy, err := actorAndPolicy(ctx, api.orgSvc)
	if err != nil {
		return err
	}
	if !policy.CanEdit(actor, act) {
		return errHttpForbidden
	}

	var data activity.UpdateActivity
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateActivity")
	}
	if err = data.Validate(act); err != nil {
		return err
	}

	act, err = api.svc.Update(act.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating activity")
	}
	return ctx.JSON(http.StatusOK, act)
}

func (api *activityApi) destroy(ctx echo.Context) error {
	act, err := api.getVisible(ctx)
	if err != nil {
		return err
	}

	actor, policy, err := actorAndPolicy(ctx, api.orgSvc)
	if err != nil {
		return err
	}
	if !policy.CanEdit(actor, act) {
		return errHttpForbidden
	}

	if err = api.svc.Delete(act.ID); err != nil {
		return errors.Wrap(err, "deleting activity")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *activityApi) suggest(ctx echo.Context) error {
	var data activity.SuggestionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SuggestionRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	suggestions, err := api.svc.Suggest(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "suggesting activities")
	}
	return ctx.JSON(http.StatusOK, suggestions)
}

// getVisible fetches the activity and hides its existence (404) from actors
// who may not view it.
func (api *activityApi) getVisible(ctx echo.Context) (activity.Activity, error) {
	act, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == activity.ErrNotFound {
			return activity.Activity{}, errHttpNotFound
		}
		return activity.Activity{}, errors.Wrap(err, "finding activity by ID")
	}

	actor, policy, err := actorAndPolicy(ctx, api.orgSvc)
	if err != nil {
		return activity.Activity{}, err
	}
	if !policy.CanView(actor, act) {
		return activity.Activity{}, errHttpNotFound
	}
	return act, nil
}
