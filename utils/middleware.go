package utils

import (
	"strconv"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// UserIDMiddleware rejects requests whose {userId} path parameter does not
// match the ID inside the verified access token.
func UserIDMiddleware(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("userId")

	claims := jwt.Get(ctx).(*AccessToken)

	userID := strconv.FormatUint(uint64(claims.ID), 10)

	if userID != id {
		CreateForbidden(ctx)
		return
	}
	ctx.Next()
}
