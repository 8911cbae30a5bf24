package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Radmir675/Divisions-sub000/internal/domain/valueobject"
	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
)

// CustomValidator はEcho用のカスタムバリデーターです
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator は新しいCustomValidatorを作成します
func NewCustomValidator() *CustomValidator {
	v := validator.New()

	// エラーのフィールド名はJSONタグ名を使う
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// カスタムバリデーション登録
	_ = v.RegisterValidation("identifier", validateIdentifier)

	return &CustomValidator{validator: v}
}

// Validate はリクエストを検証します
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return cv.formatValidationErrors(err)
	}
	return nil
}

// formatValidationErrors はバリデーションエラーをフォーマットします
func (cv *CustomValidator) formatValidationErrors(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.NewValidationError(err.Error(), nil)
	}

	details := make([]apperror.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, apperror.FieldError{
			Field:   fieldName(e),
			Message: getValidationMessage(e),
		})
	}

	return apperror.NewValidationError("validation failed", details)
}

// fieldName は "locationIds[1]" のような要素単位の名前を親フィールド名に揃えます
func fieldName(e validator.FieldError) string {
	name := e.Field()
	if idx := strings.Index(name, "["); idx > 0 {
		return name[:idx]
	}
	return name
}

// validateIdentifier は部門Identifierのバリデーション
func validateIdentifier(fl validator.FieldLevel) bool {
	_, err := valueobject.NewIdentifier(fl.Field().String())
	return err == nil
}

// getValidationMessage はバリデーションエラーメッセージを返します
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "min":
		if e.Kind() == reflect.Slice {
			return "must contain at least " + e.Param() + " item(s)"
		}
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "uuid":
		return "must be a valid UUID"
	case "unique":
		return "must not contain duplicates"
	case "identifier":
		return "must be 3-150 latin letters or '-'"
	default:
		return "validation failed"
	}
}
