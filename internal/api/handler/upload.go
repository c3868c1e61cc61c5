package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/blog_web_server/internal/pkg/response"
	"github.com/qs3c/blog_web_server/internal/service"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// Image 上传图片
// POST /admin/api/uploads/images
func (h *UploadHandler) Image(c *gin.Context) {
	header, ok := formFile(c)
	if !ok {
		return
	}

	file, err := header.Open()
	if err != nil {
		response.ServerError(c, "读取文件失败")
		return
	}
	defer file.Close()

	result, err := h.uploadService.UploadImage(c.Request.Context(), header.Filename, header.Size, file)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "上传成功", result)
}

// Import 上传文章表格，异步导入，结果通过 websocket 推送
// POST /admin/api/imports/posts
func (h *UploadHandler) Import(c *gin.Context) {
	header, ok := formFile(c)
	if !ok {
		return
	}

	file, err := header.Open()
	if err != nil {
		response.ServerError(c, "读取文件失败")
		return
	}
	defer file.Close()

	job, err := h.uploadService.EnqueueImport(c.Request.Context(), header.Filename, header.Size, file)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "已开始导入", job)
}

// Export 导出文章表格，直接转发后端的文件流
// GET /admin/api/exports/posts?format=xlsx&status=published
func (h *UploadHandler) Export(c *gin.Context) {
	download, err := h.uploadService.Export(c.Request.Context(), c.Query("format"), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer download.Body.Close()

	filename := download.Filename
	if filename == "" {
		filename = "posts." + c.DefaultQuery("format", "xlsx")
	}
	contentType := download.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, download.ContentLength, contentType, download.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, filename),
	})
}

func formFile(c *gin.Context) (*multipart.FileHeader, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		response.ParamError(c, "请选择要上传的文件")
		return nil, false
	}
	return header, true
}
