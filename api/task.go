package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/katatrina/message-notifier/internal/worker"
)

type messageTaskResponse struct {
	TaskID      string     `json:"task_id"`
	Queue       string     `json:"queue"`
	State       string     `json:"state"`
	Retried     int        `json:"retried"`
	LastError   string     `json:"last_error,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// @Summary		Get the queued notification task of a message
// @Tags			messages
// @Produce		json
// @Param			messageID	path		string				true	"Message ID"
// @Success		200			{object}	messageTaskResponse	"Task state"
// @Failure		404			{object}	object				"No task for this message"
// @Router			/v1/messages/{messageID}/task [get]
func (server *Server) getMessageTask(c *gin.Context) {
	taskID := worker.TaskIDForMessage(c.Param("messageID"))

	info, err := server.taskInspector.GetTaskInfo(c.Request.Context(), worker.QueueCritical, taskID)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(ErrTaskNotFound))
			return
		}

		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	resp := messageTaskResponse{
		TaskID:    info.ID,
		Queue:     info.Queue,
		State:     info.State.String(),
		Retried:   info.Retried,
		LastError: info.LastErr,
	}
	if !info.CompletedAt.IsZero() {
		resp.CompletedAt = &info.CompletedAt
	}

	c.JSON(http.StatusOK, resp)
}
