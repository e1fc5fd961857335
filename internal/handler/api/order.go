package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "lessonbook/internal/handler/dto/request"
	resdto "lessonbook/internal/handler/dto/response"
	"lessonbook/internal/handler/httperr"
	"lessonbook/internal/pkg/errs"
	"lessonbook/internal/usecase/commands"
	"lessonbook/internal/usecase/queries"
)

type OrderHandler struct {
	cmds commands.CheckoutCommands
	q    queries.OrderQueries
}

func NewOrderHandler(cmds commands.CheckoutCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{cmds: cmds, q: q}
}

// @Summary Checkout
// @Description Reserve seats for every line atomically and record the confirmed order
// @Tags orders
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Idempotency key (UUID); replaying the same key with the same body returns the prior order"
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 200 {object} resdto.OrderResponse "Replayed prior order"
// @Success 201 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /orders [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	idempotencyKey, err := parseIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid Idempotency-Key header", nil)
		return
	}
	var req reqdto.CheckoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Checkout(c.Request.Context(), req, idempotencyKey)
	if err != nil {
		h.abortCheckoutError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromOrderView(result.Order))
}

func (h *OrderHandler) abortCheckoutError(c *gin.Context, err error) {
	var lineErr *commands.LineError
	if errs.As(err, &lineErr) {
		detail := gin.H{"lessonId": lineErr.LessonID}
		switch {
		case errs.Is(err, errs.ErrLessonNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Lesson not found", detail)
		case errs.Is(err, errs.ErrInsufficientCapacity):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Insufficient capacity", detail)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Checkout failed", detail)
		}
		return
	}
	switch {
	case errs.Is(err, errs.ErrDuplicateLine):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Duplicate lesson in order lines", nil)
	case errs.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	case errs.Is(err, errs.ErrIdempotencyConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Idempotency key reused with a different request", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Checkout failed", nil)
	}
}

// @Summary Get order
// @Description Get a confirmed order with its lines
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, errs.ErrOrderNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load order", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

func parseIdempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	raw := c.GetHeader("Idempotency-Key")
	if raw == "" {
		return nil, nil
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &key, nil
}
