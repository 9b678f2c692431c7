package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/member"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
)

type memberApi struct {
	svc    member.Service
	orgSvc org.Service
}

func registerMemberAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc member.Service, orgSvc org.Service) {
	api := memberApi{svc: svc, orgSvc: orgSvc}

	mg := g.Group("/members", jwt)
	mg.GET("", api.query)
	mg.POST("", api.create)
	mg.GET("/:id", api.retrieve)
	mg.PUT("/:id", api.update)
	mg.DELETE("/:id", api.destroy)
}

func (api *memberApi) create(ctx echo.Context) error {
	var data member.NewMember
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMember")
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

	mbr, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating member")
	}
	return ctx.JSON(http.StatusCreated, mbr)
}

func (api *memberApi) query(ctx echo.Context) error {
	sel, err := bindSelector(ctx)
	if err != nil {
		return err
	}
	actor, policy, err := actorAndPolicy(ctx, api.orgSvc)
	if err != nil {
		return err
	}

	members, excluded, err := api.svc.Visible(policy, actor, sel, time.Now())
	if err != nil {
		return selectorError(err)
	}
	if members == nil {
		members = []member.Member{}
	}
	return ctx.JSON(http.StatusOK, ListResponse{Results: members, Excluded: excluded})
}

func (api *memberApi) retrieve(ctx echo.Context) error {
	mbr, err := api.getVisible(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mbr)
}

func (api *memberApi) update(ctx echo.Context) error {
	mbr, err := api.getVisible(ctx)
	if err != nil {
		return err
	}

	actor, policy, err := actorAndPolicy(ctx, api.orgSvc)
	if err != nil {
		return err
	}
	if !policy.CanEdit(actor, mbr) {
		return errHttpForbidden
	}

	var data member.UpdateMember
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMember")
	}
	if err = data.Validate(mbr); err != nil {
		return err
	}

	mbr, err = api.svc.Update(mbr.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating member")
	}
	return ctx.JSON(http.StatusOK, mbr)
}

func (api *memberApi) destroy(ctx echo.Context) error {
	mbr, err := api.getVisible(ctx)
	if err != nil {
		return err
	}

	actor, policy, err := actorAndPolicy(ctx, api.orgSvc)
	if err != nil {
		return err
	}
	if !policy.CanEdit(actor, mbr) {
		return errHttpForbidden
	}

	if err = api.svc.Delete(mbr.ID); err != nil {
		return errors.Wrap(err, "deleting member")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *memberApi) getVisible(ctx echo.Context) (member.Member, error) {
	mbr, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == member.ErrNotFound {
			return member.Member{}, errHttpNotFound
		}
		return member.Member{}, errors.Wrap(err, "finding member by ID")
	}

	actor, policy, err := actorAndPolicy(ctx, api.orgSvc)
	if err != nil {
		return member.Member{}, err
	}
	if !policy.CanView(actor, mbr) {
		return member.Member{}, errHttpNotFound
	}
	return mbr, nil
}
