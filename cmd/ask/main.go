package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/zeromicro/go-zero/core/logx"

	"cryptoassist-api/internal/cli"
	assistantpkg "cryptoassist-api/pkg/assistant"
	"cryptoassist-api/pkg/confkit"
	llmpkg "cryptoassist-api/pkg/llm"
	marketpkg "cryptoassist-api/pkg/market"
	_ "cryptoassist-api/pkg/market/coinmarketcap"
	newspkg "cryptoassist-api/pkg/news"
	_ "cryptoassist-api/pkg/news/cryptopanic"
)

func parseSymbols(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		field = strings.ToUpper(strings.TrimSpace(field))
		if field == "" {
			continue
		}
		if _, exists := seen[field]; exists {
			continue
		}
		seen[field] = struct{}{}
		out = append(out, field)
	}
	return out
}

func fatalf(format string, args ...interface{}) {
	logx.Errorf(format, args...)
	os.Exit(1)
}

type session struct {
	market    marketpkg.Provider
	news      newspkg.Provider
	assistant *assistantpkg.Assistant
	showNews  int
	format    string
	out       io.Writer
}

// run answers question for one symbol and prints the result.
func (s *session) run(ctx context.Context, symbol, question string) error {
	raw, err := s.market.GetCoinQuote(ctx, symbol)
	if err != nil {
		return fmt.Errorf("fetch %s quote: %w", symbol, err)
	}
	record := marketpkg.NormalizeCoin(raw)
	if record == nil {
		return fmt.Errorf("no market data for %s", symbol)
	}

	rawNews, err := s.news.GetNews(ctx, record.Symbol, "")
	if err != nil {
		logx.Errorf("fetch %s news: %v", record.Symbol, err)
		rawNews = nil
	}
	items := newspkg.Normalize(rawNews)

	cfg := s.assistant.Config()
	contextBlock := assistantpkg.AssembleContext(record, items, cfg.MaxNews)
	fmt.Fprintf(s.out, "%s\n\n", contextBlock)

	if s.showNews > 0 {
		for i, item := range newspkg.Top(items, s.showNews) {
			title, url := "", ""
			if item.Title != nil {
				title = *item.Title
			}
			if item.URL != nil {
				url = *item.URL
			}
			fmt.Fprintf(s.out, "%d. [%d] %s %s\n", i+1, item.Votes, title, url)
		}
		fmt.Fprintln(s.out)
	}

	if question == "" {
		return nil
	}
	answer := s.assistant.Ask(ctx, question, contextBlock, s.format)
	if f := answer.Failure(); f != nil {
		logx.Errorf("assistant failed for %s: %v", record.Symbol, f)
	}
	fmt.Fprintf(s.out, "**Response:**\n\n%s\n", answer.OrFallback(cfg.FallbackMessage))
	return nil
}

func main() {
	var (
		marketPath    = flag.String("market-config", "etc/market.yaml", "path to market provider configuration")
		newsPath      = flag.String("news-config", "etc/news.yaml", "path to news provider configuration")
		llmPath       = flag.String("llm-config", "etc/llm.yaml", "path to llm client configuration")
		assistantPath = flag.String("assistant-config", "etc/assistant.yaml", "path to assistant configuration")
		symbolsRaw    = flag.String("symbols", "BTC", "comma-separated list of coin symbols")
		question      = flag.String("q", "", "question to ask about each coin; empty prints the context only")
		format        = flag.String("format", "", "answer format, defaults to the assistant config")
		showNews      = flag.Int("news", 5, "number of ranked headlines to print")
	)
	flag.Parse()
	logx.MustSetup(logx.LogConf{})
	logx.DisableStat()

	symbols := parseSymbols(*symbolsRaw)
	if len(symbols) == 0 {
		fatalf("no symbols provided; use --symbols to specify at least one")
	}

	confkit.LoadDotenvOnce()

	marketCfg, err := marketpkg.LoadConfig(confkit.LocateFile(*marketPath))
	if err != nil {
		fatalf("load market config: %v", err)
	}
	marketProviders, err := marketCfg.BuildProviders()
	if err != nil {
		fatalf("build market providers: %v", err)
	}

	newsCfg, err := newspkg.LoadConfig(confkit.LocateFile(*newsPath))
	if err != nil {
		fatalf("load news config: %v", err)
	}
	newsProviders, err := newsCfg.BuildProviders()
	if err != nil {
		fatalf("build news providers: %v", err)
	}

	llmCfg, err := llmpkg.LoadConfig(confkit.LocateFile(*llmPath))
	if err != nil {
		fatalf("load llm config: %v", err)
	}
	llmClient, err := llmpkg.NewClient(llmCfg)
	if err != nil {
		fatalf("initialise llm client: %v", err)
	}
	defer func() {
		_ = llmClient.Close()
	}()

	assistantCfg, err := assistantpkg.LoadConfig(confkit.LocateFile(*assistantPath))
	if err != nil {
		fatalf("load assistant config: %v", err)
	}
	assistant, err := assistantpkg.New(llmClient, assistantCfg)
	if err != nil {
		fatalf("initialise assistant: %v", err)
	}
	cli.LogPromptSummary(assistant)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logx.Infof("received signal %s, cancelling", sig)
		cancel()
	}()

	s := &session{
		market:    marketProviders[marketCfg.DefaultName()],
		news:      newsProviders[newsCfg.DefaultName()],
		assistant: assistant,
		showNews:  *showNews,
		format:    *format,
		out:       os.Stdout,
	}
	for _, symbol := range symbols {
		if err := s.run(ctx, symbol, strings.TrimSpace(*question)); err != nil {
			fatalf("%v", err)
		}
	}
}
