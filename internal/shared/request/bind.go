// Package request chứa helpers bind + validate input cho handlers.
// Mọi DTO implement validation.Validatable (ozzo-validation); helper
// convert validation.Errors thành danh sách {field, message} cho client.
package request

import (
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"newsroom-backend/internal/shared/response"
	"newsroom-backend/internal/shared/utils"
)

// FieldError là một violation trên một field cụ thể
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// BindJSON parse body JSON vào dest rồi chạy Validate nếu có.
// Trả về false nếu đã respond lỗi (handler return ngay).
func BindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.BadRequest(c, "Invalid request body")
		return false
	}
	return validate(c, dest)
}

// BindQuery parse query string vào dest (form tags) rồi validate.
func BindQuery(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindQuery(dest); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return false
	}
	return validate(c, dest)
}

func validate(c *gin.Context, dest interface{}) bool {
	v, ok := dest.(validation.Validatable)
	if !ok {
		return true
	}

	err := v.Validate()
	if err == nil {
		return true
	}

	// validation.Errors là map field -> error; convert sang list ổn định
	if verrs, ok := err.(validation.Errors); ok {
		response.ErrorWithDetails(c, 400, "Validation failed", FieldErrors(verrs))
		return false
	}

	response.BadRequest(c, err.Error())
	return false
}

// FieldErrors flatten validation.Errors thành []FieldError, sort theo field
// để output deterministic.
func FieldErrors(verrs validation.Errors) []FieldError {
	fields := make([]string, 0, len(verrs))
	for f := range verrs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make([]FieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldError{Field: f, Message: verrs[f].Error()})
	}
	return out
}

// ParseIDParam parse route param thành uuid.UUID.
// Downstream code nhận typed ID, không phải string thô.
func ParseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.ErrorWithDetails(c, 400, "Validation failed", []FieldError{
			{Field: name, Message: "must be a valid UUID"},
		})
		return uuid.Nil, false
	}
	return id, true
}

// ParsePagination đọc page/limit từ query string và clamp về range hợp lệ
func ParsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	return utils.NormalizePagination(page, limit)
}
