package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/report"
)

type reportApi struct {
	svc    report.Service
	orgSvc org.Service
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc report.Service, orgSvc org.Service) {
	api := reportApi{svc: svc, orgSvc: orgSvc}

	rg := g.Group("/reports", jwt)
	rg.GET("", api.query)
	rg.POST("", api.create)
	rg.GET("/:id", api.retrieve)
	rg.PUT("/:id", api.update)
	rg.DELETE("/:id", api.destroy)
}

func (api *reportApi) create(ctx echo.Context) error {
	var data report.NewReport
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewReport")
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if data.SubmittedBy == "" {
		data.SubmittedBy = claims.Subject
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

	rpt, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating report")
	}
	return ctx.JSON(http.StatusCreated, rpt)
}

func (api *reportApi) query(ctx echo.Context) error {
	sel, err := bindSelector(ctx)
	if err != nil {
		return err
	}
	actor, policy, err := actorAndPolicy(ctx, api.orgSvc)
	if err != nil {
		return err
	}

	reports, excluded, err := api.svc.Visible(policy, actor, sel, time.Now())
	if err != nil {
		return selectorError(err)
	}
	if reports == nil {
		reports = []report.Report{}
	}
	return ctx.JSON(http.StatusOK, ListResponse{Results: reports, Excluded: excluded})
}

func (api *reportApi) retrieve(ctx echo.Context) error {
	rpt, err := api.getVisible(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rpt)
}

func (api *reportApi) update(ctx echo.Context) error {
	rpt, err := api.getVisible(ctx)
	if err != nil {
		return err
	}

	actor, policy, err := actorAndPolicy(ctx, api.orgSvc)
	if err != nil {
		return err
	}
	if !policy.CanEdit(actor, rpt) {
		return errHttpForbidden
	}

	var data report.UpdateReport
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateReport")
	}
	if err = data.Validate(rpt); err != nil {
		return err
	}

	rpt, err = api.svc.Update(rpt.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating report")
	}
	return ctx.JSON(http.StatusOK, rpt)
}

func (api *reportApi) destroy(ctx echo.Context) error {
	rpt, err := api.getVisible(ctx)
	if err != nil {
		return err
	}

	actor, policy, err := actorAndPolicy(ctx, api.orgSvc)
	if err != nil {
		return err
	}
	if !policy.CanEdit(actor, rpt) {
		return errHttpForbidden
	}

	if err = api.svc.Delete(rpt.ID); err != nil {
		return errors.Wrap(err, "deleting report")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *reportApi) getVisible(ctx echo.Context) (report.Report, error) {
	rpt, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == report.ErrNotFound {
			return report.Report{}, errHttpNotFound
		}
		return report.Report{}, errors.Wrap(err, "finding report by ID")
	}

	actor, policy, err := actorAndPolicy(ctx, api.orgSvc)
	if err != nil {
		return report.Report{}, err
	}
	if !policy.CanView(actor, rpt) {
		return report.Report{}, errHttpNotFound
	}
	return rpt, nil
}
