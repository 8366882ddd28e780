package response

import (
	"Tideline/internal/api/dto"
	"Tideline/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Kind:    "",
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, businessCode int, kind string, message string) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    businessCode,
		Kind:    kind,
		Message: message,
		Data:    nil,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, BadRequest, service.KindValidation, "参数错误")
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, BadRequest, service.KindValidation, "Json错误")
		return
	}

	meta, ok := service.ErrorMap[err]
	if !ok {
		meta = service.ErrorMeta{Code: InternalServerError, Kind: service.KindInternal}
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
	}
	Fail(c, meta.Code, meta.Kind, err.Error())
}
