package router

import (
	"net/http"

	"github.com/allowx-lab/backend/pkg/errorx"
	"github.com/allowx-lab/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		ctx := router.baseCtx

		var err error
		for _, before := range router.befores {
			ctx, err = before(ctx, ginCtx.Request)
			if err != nil {
				ginCtx.JSON(http.StatusOK, newErrorResponse(err))
				return
			}
		}

		var req Request
		switch method {
		case http.MethodGet:
			err = ginCtx.BindQuery(&req)
		default:
			err = ginCtx.BindJSON(&req)
		}
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
			ginCtx.JSON(http.StatusOK, newErrorResponse(
				errorx.New(errorx.BadRequest, "Cannot bind the request")))
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			ginCtx.JSON(http.StatusOK, newErrorResponse(err))
			return
		}

		ginCtx.JSON(http.StatusOK, newResponse(resp))
	}
}
