package handler

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"cryptoassist-api/internal/logic"
	"cryptoassist-api/internal/svc"
	"cryptoassist-api/internal/types"
)

//go:embed dashboard.html
var dashboardSource string

var dashboardPage = template.Must(template.New("dashboard").Parse(dashboardSource))

func DashboardHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.DashboardRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, badRequest(err))
			return
		}

		l := logic.NewDashboardLogic(r.Context(), svcCtx)
		view, err := l.Dashboard(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		var buf bytes.Buffer
		if err := dashboardPage.Execute(&buf, view); err != nil {
			logx.WithContext(r.Context()).Errorf("render dashboard: %v", err)
			http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
			return
		}

		status := http.StatusOK
		if view.Degraded {
			status = http.StatusBadGateway
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write(buf.Bytes())
	}
}
