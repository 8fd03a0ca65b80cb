// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"cryptoassist-api/internal/logic"
	"cryptoassist-api/internal/svc"
	"cryptoassist-api/internal/types"

	"github.com/zeromicro/go-zero/rest/httpx"
)

func GetCoinNewsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CoinNewsRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, badRequest(err))
			return
		}

		l := logic.NewGetCoinNewsLogic(r.Context(), svcCtx)
		resp, err := l.GetCoinNews(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
