package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/blog_web_server/internal/api/middleware"
	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/pkg/categorytree"
	"github.com/qs3c/blog_web_server/internal/pkg/logger"
	"github.com/qs3c/blog_web_server/internal/pkg/pagination"
	"github.com/qs3c/blog_web_server/internal/pkg/response"
	"github.com/qs3c/blog_web_server/internal/service"
)

// errorCode 把服务层和后端错误映射为响应码
func errorCode(err error) (int, string) {
	var apiErr *backend.APIError
	switch {
	case errors.Is(err, categorytree.ErrAlreadyFirst), errors.Is(err, categorytree.ErrAlreadyLast):
		return response.CodeConflict, err.Error()
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrUploadType),
		errors.Is(err, service.ErrUploadTooLarge):
		return response.CodeParamError, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return response.CodeAuthFailed, err.Error()
	case errors.Is(err, backend.ErrUnauthorized):
		return response.CodeAuthFailed, ""
	case errors.Is(err, service.ErrSelfModify):
		return response.CodePermissionDenied, err.Error()
	case errors.Is(err, backend.ErrForbidden):
		return response.CodePermissionDenied, ""
	case errors.Is(err, backend.ErrNotFound):
		return response.CodeResourceNotFound, ""
	case errors.Is(err, backend.ErrBadRequest) && errors.As(err, &apiErr):
		return response.CodeParamError, apiErr.Message
	}
	return response.CodeUpstreamError, ""
}

func respondError(c *gin.Context, err error) {
	respondErrorWithData(c, err, nil)
}

// respondErrorWithData 错误响应，data 为空时附带后端返回的字段错误
func respondErrorWithData(c *gin.Context, err error, data interface{}) {
	code, message := errorCode(err)

	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		middleware.ExpireSession(c)
		response.AuthRedirect(c, middleware.LoginURL("/admin"))
		return
	case code == response.CodeUpstreamError:
		logger.FromContext(c.Request.Context()).Error("backend request failed",
			"route", c.FullPath(), "error", err)
	}

	var apiErr *backend.APIError
	if data == nil && errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		data = apiErr.Fields
	}
	response.ErrorWithData(c, code, message, data)
}

// parseID 解析路径参数 :id
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ParamError(c, "无效的ID")
		return 0, false
	}
	return id, true
}

// pageParams 读取分页参数
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return pagination.Normalize(page, pageSize, pagination.DefaultPageSize)
}
