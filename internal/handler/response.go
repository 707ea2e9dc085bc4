package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/faq-service/internal/service/types"
)

// Response 统一响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// success 成功响应
func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

// created 创建成功响应
func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "created", Data: data})
}

// validationError 负载不合法响应 (422)
func validationError(c *gin.Context, msg string) {
	c.JSON(http.StatusUnprocessableEntity, Response{Code: -1, Message: msg})
}

// errorResponse 按服务层错误类别映射状态码
func errorResponse(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrValidation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, types.ErrConflict):
		status = http.StatusConflict
	}
	c.JSON(status, Response{Code: -1, Message: err.Error()})
}
