package presenter

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response は統一レスポンス構造を定義します
type Response struct {
	Data any `json:"data"`
	Meta any `json:"meta"`
}

// ListMeta は一覧レスポンスのメタ情報です
type ListMeta struct {
	Count int `json:"count"`
}

// OK は成功レスポンスを返します
func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Response{Data: data})
}

// Created は作成成功レスポンスを返します
func Created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, Response{Data: data})
}

// List は件数付きの一覧レスポンスを返します
func List(c echo.Context, items any, count int) error {
	return c.JSON(http.StatusOK, Response{
		Data: items,
		Meta: ListMeta{Count: count},
	})
}
