package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

func CreateError(status int, code, message string, ctx iris.Context) {
	JSONError(ctx, status, code, message)
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(iris.StatusInternalServerError, "Internal Server Error", "Something went wrong on our end.", ctx)
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, "Not Found", "Resource not found.", ctx)
}

func CreateForbidden(ctx iris.Context) {
	CreateError(iris.StatusForbidden, "Forbidden", "You are not allowed to perform this action.", ctx)
}

func CreateConflict(ctx iris.Context, message string) {
	CreateError(iris.StatusConflict, "Conflict", message, ctx)
}

// HandleValidationErrors renders body-binding failures as a 400 with the
// offending fields listed.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]iris.Map, 0, len(errs))
		for _, fieldErr := range errs {
			fields = append(fields, iris.Map{
				"field": fieldErr.Field(),
				"tag":   fieldErr.Tag(),
			})
		}
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{
			"success": false,
			"error":   "Validation Error",
			"message": "One or more fields failed to be validated.",
			"fields":  fields,
		})
		return
	}

	CreateError(iris.StatusBadRequest, "Validation Error", "Invalid request payload.", ctx)
}
