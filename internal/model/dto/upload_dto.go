package dto

// UploadImageResponse 图片上传结果
type UploadImageResponse struct {
	URL string `json:"url"`
}

// ImportJobResponse 导入任务已入队
type ImportJobResponse struct {
	JobID string `json:"job_id"`
}

// ImportResult 后端导入接口返回
type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}
