package service

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidRequest     = errors.New("请求参数无效")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrSessionInvalid     = errors.New("登录凭证无效")
	ErrSelfModify         = errors.New("不能修改或删除自己的账号")
	ErrUploadTooLarge     = errors.New("文件大小超出限制")
	ErrUploadType         = errors.New("不支持的文件类型")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// validateStruct 校验请求体，失败时包装 ErrInvalidRequest
func validateStruct(req interface{}) error {
	if err := getValidator().Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

func validateID(name string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s must be > 0", ErrInvalidRequest, name)
	}
	return nil
}
