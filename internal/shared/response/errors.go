package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"newsroom-backend/internal/shared/apperror"
	"newsroom-backend/pkg/jwt"
)

// PostgreSQL error codes được translate sang vocabulary ổn định,
// không leak engine error code ra client.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// includeDetails = true ngoài production: đính kèm underlying error
// vào details để debug. Set một lần lúc startup.
var includeDetails = true

// SetProductionMode ẩn error detail trong response khi chạy production
func SetProductionMode(production bool) {
	includeDetails = !production
}

// HandleError là error normalizer trung tâm: map mọi error từ
// service/repository layer sang {status, message} thống nhất.
func HandleError(c *gin.Context, err error) {
	status, message := Classify(err)

	// Unexpected errors: log server-side, client chỉ thấy generic message
	if status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("unhandled error")
	}

	if includeDetails && status == http.StatusInternalServerError {
		ErrorWithDetails(c, status, message, err.Error())
		return
	}

	Error(c, status, message)
}

// Classify trả về (httpStatus, message) cho một error.
// Tách riêng khỏi gin để test không cần HTTP context.
func Classify(err error) (int, string) {
	// 1. Domain error có explicit status
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}

	// 2. Row không tồn tại
	if errors.Is(err, pgx.ErrNoRows) {
		return http.StatusNotFound, "Record not found"
	}

	// 3. Database constraint violations
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return http.StatusConflict, "Duplicate entry: field already exists"
		case pgForeignKeyViolation:
			return http.StatusBadRequest, "Invalid reference to related record"
		case pgNotNullViolation:
			return http.StatusBadRequest, "Related record is required"
		default:
			return http.StatusBadRequest, "Database error occurred"
		}
	}

	// 4. Scan/decode lỗi ở data layer
	var scanErr pgx.ScanArgError
	if errors.As(err, &scanErr) {
		return http.StatusBadRequest, "Invalid data provided"
	}

	// 5. Token errors nổi lên muộn (vd: refresh flow trong service)
	if errors.Is(err, jwt.ErrExpiredToken) {
		return http.StatusUnauthorized, "Token expired"
	}
	if errors.Is(err, jwt.ErrInvalidToken) {
		return http.StatusUnauthorized, "Invalid token"
	}

	// 6. Upload bị từ chối bởi http layer (body quá lớn)
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusBadRequest, "File upload error: file too large"
	}

	return http.StatusInternalServerError, "Internal Server Error"
}
