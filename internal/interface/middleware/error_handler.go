package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
	"github.com/Radmir675/Divisions-sub000/pkg/logger"
)

// ErrorResponse はエラーレスポンス構造を定義します
type ErrorResponse struct {
	Error ErrorBody   `json:"error"`
	Meta  interface{} `json:"meta"`
}

// ErrorBody はエラー本体を定義します
type ErrorBody struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

// CustomHTTPErrorHandler はカスタムエラーハンドラーです
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		// 内部エラーの詳細はログのみに出力する
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.Error(c.Request().Context(), "internal error",
				zap.String("method", c.Request().Method),
				zap.String("route", c.Path()),
				zap.Error(appErr),
			)
		}

		writeError(c, appErr.HTTPStatus, ErrorBody{
			Code:    string(appErr.Code),
			Message: appErr.Message,
			Details: appErr.Details,
		})
		return
	}

	// Echo HTTPErrorの場合（ルート不一致、ボディ過大など）
	var he *echo.HTTPError
	if errors.As(err, &he) {
		writeError(c, he.Code, ErrorBody{
			Code:    string(codeForStatus(he.Code)),
			Message: fmt.Sprintf("%v", he.Message),
		})
		return
	}

	// 未知のエラー
	logger.Error(c.Request().Context(), "unknown error", zap.Error(err))

	writeError(c, http.StatusInternalServerError, ErrorBody{
		Code:    string(apperror.CodeInternalError),
		Message: "internal server error",
	})
}

func writeError(c echo.Context, status int, body ErrorBody) {
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, ErrorResponse{Error: body})
}

func codeForStatus(status int) apperror.ErrorCode {
	switch status {
	case http.StatusNotFound:
		return apperror.CodeNotFound
	case http.StatusConflict:
		return apperror.CodeConflict
	case http.StatusTooManyRequests:
		return apperror.CodeRateLimitExceeded
	case http.StatusServiceUnavailable:
		return apperror.CodeServiceUnavailable
	}
	if status >= http.StatusInternalServerError {
		return apperror.CodeInternalError
	}
	return apperror.CodeInvalidRequest
}
