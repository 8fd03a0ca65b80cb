package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"cryptoassist-api/internal/svc"
	"cryptoassist-api/internal/types"
	"cryptoassist-api/pkg/assistant"
)

type AskLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewAskLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AskLogic {
	return &AskLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Ask grounds the question on the coin's quote and top news. A news outage
// does not block the question; the context then reports no recent news.
func (l *AskLogic) Ask(req *types.AskRequest) (resp *types.AskResponse, err error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrInvalidRequest
	}

	snap, err := fetchSnapshot(l.ctx, l.svcCtx, req.Symbol)
	if err != nil {
		return nil, err
	}
	record, items := snap.record, snap.items
	if snap.newsErr != nil {
		l.Infof("asking without news for %s", record.Symbol)
	}

	cfg := l.svcCtx.Assistant.Config()
	contextBlock := assistant.AssembleContext(record, items, cfg.MaxNews)
	answer := l.svcCtx.Assistant.Ask(l.ctx, question, contextBlock, req.Format)

	resp = &types.AskResponse{
		Symbol:   record.Symbol,
		Question: question,
		Context:  contextBlock,
		Answer:   answer.OrFallback(cfg.FallbackMessage),
		Answered: answer.OK(),
		Model:    answer.Model,
	}
	if f := answer.Failure(); f != nil {
		resp.Reason = string(f.Reason)
		l.Errorf("assistant failed for %s: %v", record.Symbol, f)
	}
	return resp, nil
}
