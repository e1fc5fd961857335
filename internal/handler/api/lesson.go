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

type LessonHandler struct {
	cmds commands.LessonCommands
	q    queries.LessonQueries
}

func NewLessonHandler(cmds commands.LessonCommands, q queries.LessonQueries) *LessonHandler {
	return &LessonHandler{cmds: cmds, q: q}
}

// @Summary Create lesson
// @Description Register a new lesson offering in the catalog
// @Tags lessons
// @Accept json
// @Produce json
// @Param request body reqdto.CreateLessonRequest true "Create lesson request"
// @Success 201 {object} resdto.LessonResponse
// @Failure 400 {object} httperr.Response
// @Router /lessons [post]
func (h *LessonHandler) Create(c *gin.Context) {
	var req reqdto.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Create(c.Request.Context(), req)
	if err != nil {
		if errs.Is(err, errs.ErrDomainValidation) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid lesson", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Create lesson failed", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), result.LessonID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load lesson", nil)
		return
	}
	res, err := resdto.FromLessonView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary List lessons
// @Description List catalog lessons, optionally filtered by subject or location substring
// @Tags lessons
// @Produce json
// @Param subject query string false "Subject filter (substring match)"
// @Param location query string false "Location filter (substring match)"
// @Success 200 {array} resdto.LessonResponse
// @Router /lessons [get]
func (h *LessonHandler) List(c *gin.Context) {
	var filter queries.LessonFilter
	if v, ok := c.GetQuery("subject"); ok {
		filter.Subject = &v
	}
	if v, ok := c.GetQuery("location"); ok {
		filter.Location = &v
	}
	views, err := h.q.List(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list lessons", nil)
		return
	}
	res, err := resdto.FromLessonViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get lesson
// @Description Get a lesson by ID
// @Tags lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} resdto.LessonResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /lessons/{id} [get]
func (h *LessonHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, errs.ErrLessonNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Lesson not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load lesson", nil)
		return
	}
	res, err := resdto.FromLessonView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Update lesson
// @Description Partially update lesson metadata; omitted fields keep their values
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path string true "Lesson ID"
// @Param request body reqdto.UpdateLessonRequest true "Update lesson request"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /lessons/{id} [put]
func (h *LessonHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateLessonRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	if err = h.cmds.Update(c.Request.Context(), id, req); err != nil {
		switch {
		case errs.Is(err, errs.ErrLessonNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Lesson not found", nil)
		case errs.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid lesson", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Update lesson failed", nil)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lesson updated"})
}

// @Summary Delete lesson
// @Description Delete a lesson that has no orders referencing it
// @Tags lessons
// @Param id path string true "Lesson ID"
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /lessons/{id} [delete]
func (h *LessonHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err = h.cmds.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errs.Is(err, errs.ErrLessonNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Lesson not found", nil)
		case errs.Is(err, errs.ErrLessonInUse):
			httperr.AbortWithError(c, http.StatusConflict, err, "Lesson has existing orders", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Delete lesson failed", nil)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lesson deleted"})
}
