package utils

import (
	"github.com/kataras/iris/v12"
)

// Every handler answers with the same envelope, success or not. The frontend
// must never have to guess between a wrapped and a raw payload.

func JSONSuccess(ctx iris.Context, status int, data interface{}, message string) {
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{
		"success": true,
		"data":    data,
		"message": message,
	})
}

func JSONError(ctx iris.Context, status int, code, message string) {
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{
		"success": false,
		"error":   code,
		"message": message,
	})
}
