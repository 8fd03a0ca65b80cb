// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"cryptoassist-api/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	SetErrorHandler()

	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/",
				Handler: DashboardHandler(serverCtx),
			},
		},
	)

	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/coins",
				Handler: ListCoinsHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/coins/:symbol",
				Handler: GetCoinHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/coins/:symbol/news",
				Handler: GetCoinNewsHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/coins/:symbol/ask",
				Handler: AskHandler(serverCtx),
			},
		},
		rest.WithPrefix("/api"),
	)
}
