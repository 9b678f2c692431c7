package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/finance"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
)

type financeApi struct {
	svc    finance.Service
	orgSvc org.Service
}

// LedgerQuery binds the node identification params of the ledger endpoint.
// The window params ride along via WindowQuery.
type LedgerQuery struct {
	NodeType string `query:"node_type"`
	NodeID   string `query:"node_id"`
}

func registerFinanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc finance.Service, orgSvc org.Service) {
	api := financeApi{svc: svc, orgSvc: orgSvc}

	tg := g.Group("/transactions", jwt)
	tg.GET("", api.query)
	tg.POST("", api.create)
	tg.GET("/:id", api.retrieve)
	tg.DELETE("/:id", api.destroy)

	fg := g.Group("/finance", jwt)
	fg.GET("/ledger", api.ledger)
}

func (api *financeApi) create(ctx echo.Context) error {
	var data finance.NewTransaction
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTransaction")
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

	txn, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating transaction")
	}
	return ctx.JSON(http.StatusCreated, txn)
}

func (api *financeApi) query(ctx echo.Context) error {
	sel, err := bindSelector(ctx)
	if err != nil {
		return err
	}
	actor, policy, err := actorAndPolicy(ctx, api.orgSvc)
	if err != nil {
		return err
	}

	txns, excluded, err := api.svc.Visible(policy, actor, sel, time.Now())
	if err != nil {
		return selectorError(err)
	}
	if txns == nil {
		txns = []finance.Transaction{}
	}
	return ctx.JSON(http.StatusOK, ListResponse{Results: txns, Excluded: excluded})
}

func (api *financeApi) retrieve(ctx echo.Context) error {
	txn, err := api.getVisible(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, txn)
}

func (api *financeApi) destroy(ctx echo.Context) error {
	txn, err := api.getVisible(ctx)
	if err != nil {
		return err
	}

	actor, policy, err := actorAndPolicy(ctx, api.orgSvc)
	if err != nil {
		return err
	}
	if !policy.CanEdit(actor, txn) {
		return errHttpForbidden
	}

	if err = api.svc.Delete(txn.ID); err != nil {
		return errors.Wrap(err, "deleting transaction")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *financeApi) ledger(ctx echo.Context) error {
	var query LedgerQuery
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to LedgerQuery")
	}
	nodeType := org.Level(query.NodeType)
	switch nodeType {
	case org.LevelNational, org.LevelSite, org.LevelSmallGroup:
	default:
		return core.NewValidationError(nil, core.FieldError{Field: "node_type", Error: "must be one of national, site, small_group"})
	}
	if query.NodeID == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "node_id", Error: "this field is required"})
	}

	sel, err := bindSelector(ctx)
	if err != nil {
		return err
	}
	actor, policy, err := actorAndPolicy(ctx, api.orgSvc)
	if err != nil {
		return err
	}

	summary, err := api.svc.Ledger(policy, actor, sel, time.Now(), query.NodeID, nodeType)
	if err != nil {
		return selectorError(err)
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *financeApi) getVisible(ctx echo.Context) (finance.Transaction, error) {
	txn, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == finance.ErrNotFound {
			return finance.Transaction{}, errHttpNotFound
		}
		return finance.Transaction{}, errors.Wrap(err, "finding transaction by ID")
	}

	actor, policy, err := actorAndPolicy(ctx, api.orgSvc)
	if err != nil {
		return finance.Transaction{}, err
	}
	if !policy.CanView(actor, txn) {
		return finance.Transaction{}, errHttpNotFound
	}
	return txn, nil
}
