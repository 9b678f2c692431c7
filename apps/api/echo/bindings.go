package echoapi

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/temporal"
)

const dateParamLayout = "2006-01-02"

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	PasswordResetRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}

	DestroyMultipleRequest struct {
		IDs []string `query:"id"`
	}

	// ListResponse wraps window-filtered listings. Excluded counts the
	// records dropped for data-quality reasons rather than hidden by
	// permissions or the window itself.
	ListResponse struct {
		Results  interface{} `json:"results"`
		Excluded int         `json:"excluded"`
	}

	// WindowQuery binds the `window`, `from` and `to` query params shared by
	// every window-filtered listing.
	WindowQuery struct {
		Window string `query:"window"`
		From   string `query:"from"`
		To     string `query:"to"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Username = core.CleanString(lr.Username, true /* lower */)
	return core.Validate.Struct(lr)
}

func (pr *PasswordResetRequest) Validate() error {
	pr.Email = core.CleanString(pr.Email, true /* lower */)
	return core.Validate.Struct(pr)
}

// Selector converts the bound query params into a temporal.Selector.
// A missing window with explicit dates is treated as a custom window.
func (wq WindowQuery) Selector() (temporal.Selector, error) {
	sel := temporal.Selector{Window: temporal.Window(wq.Window)}
	if sel.Window == "" && wq.From != "" {
		sel.Window = temporal.WindowCustom
	}

	if wq.From != "" {
		from, err := time.Parse(dateParamLayout, wq.From)
		if err != nil {
			return temporal.Selector{}, core.NewValidationError(err, core.FieldError{Field: "from", Error: "invalid date, expected YYYY-MM-DD"})
		}
		sel.From = from
	}
	if wq.To != "" {
		to, err := time.Parse(dateParamLayout, wq.To)
		if err != nil {
			return temporal.Selector{}, core.NewValidationError(err, core.FieldError{Field: "to", Error: "invalid date, expected YYYY-MM-DD"})
		}
		sel.To = to
	}
	return sel, nil
}

func bindSelector(ctx echo.Context) (temporal.Selector, error) {
	var wq WindowQuery
	if err := ctx.Bind(&wq); err != nil {
		return temporal.Selector{}, err
	}
	return wq.Selector()
}

// selectorError converts window resolution errors into 400s instead of 500s.
func selectorError(err error) error {
	switch err {
	case temporal.ErrUnknownWindow, temporal.ErrInvalidRange, temporal.ErrMissingFrom:
		return core.NewValidationError(err, core.FieldError{Field: "window", Error: err.Error()})
	}
	return err
}
