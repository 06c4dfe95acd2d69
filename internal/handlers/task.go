package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/dto"
	apperrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/export"
	"github.com/yukikurage/task-tracker/internal/middleware"
	"github.com/yukikurage/task-tracker/internal/services"
	"github.com/yukikurage/task-tracker/internal/utils"
)

// TaskHandler serves the read-only task feed.
type TaskHandler struct {
	service  *services.TaskService
	exporter *export.CalendarExporter
}

func NewTaskHandler(service *services.TaskService, exporter *export.CalendarExporter) *TaskHandler {
	if exporter == nil {
		exporter = export.NewCalendarExporter("", "")
	}
	return &TaskHandler{
		service:  service,
		exporter: exporter,
	}
}

// ListTasks returns a page of tasks visible to the acting user
// Optional filters: pending=true, due=YYYY-MM-DD
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.RespondWithError(c, apperrors.Forbidden("No acting user"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	params := utils.GetPaginationParams(page, limit)

	pending, _ := strconv.ParseBool(c.Query("pending"))

	resp, err := h.service.ListTasks(services.ListTasksInput{
		ActingUserID: userID,
		PendingOnly:  pending,
		DueOn:        c.Query("due"),
		Page:         params.Page,
		PageSize:     params.Limit,
	})
	if err != nil {
		apperrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTask returns a single task
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.RespondWithError(c, apperrors.Forbidden("No acting user"))
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid task ID")
		return
	}

	row, err := h.service.GetTask(taskID, userID)
	if err != nil {
		apperrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

// ListUsers returns every user
func (h *TaskHandler) ListUsers(c *gin.Context) {
	users := h.service.Users()
	out := make([]dto.UserDTO, len(users))
	for i, user := range users {
		out[i] = dto.ToUserDTO(user)
	}

	c.JSON(http.StatusOK, gin.H{"users": out})
}

// Calendar renders every pending task as an iCalendar feed.
func (h *TaskHandler) Calendar(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.exporter.Write(&buf, h.service.Tasks()); err != nil {
		apperrors.RespondWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}
