package orderserver

import (
	"github.com/gin-gonic/gin"

	ordersapp "github.com/Apurer/go-gin-order-saga/internal/domains/orders/application"
	apierrors "github.com/Apurer/go-gin-order-saga/internal/shared/errors"
)

var orderResponder = apierrors.NewResponder(apierrors.WithMappers(
	apierrors.Typed(func(err *ordersapp.OrderNotFoundError) apierrors.ProblemDetail {
		return apierrors.NewNotFoundProblem("order", err.OrderID, err.Error())
	}),
	apierrors.Sentinel(ordersapp.ErrOrderNotFound, apierrors.ErrNotFound),
	apierrors.Sentinel(ordersapp.ErrInvalidInput, apierrors.ErrBadRequest),
))

// respondProblem writes a ProblemDetail through the order responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	orderResponder.Respond(c, problem)
}

// respondOrderServiceError turns application errors into RFC 7807 responses.
func respondOrderServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	orderResponder.RespondError(c, err)
}
