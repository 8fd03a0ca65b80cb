package main

import (
	"flag"
	"fmt"

	"cryptoassist-api/internal/cli"
	"cryptoassist-api/internal/config"
	"cryptoassist-api/internal/handler"
	"cryptoassist-api/internal/svc"
	"cryptoassist-api/pkg/confkit"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"
)

var configFile = flag.String("f", "etc/dashboard.yaml", "the config file")

func main() {
	flag.Parse()

	cfg := config.MustLoad(confkit.LocateFile(*configFile))
	logx.MustSetup(cfg.Log)
	defer logx.Close()
	cli.LogConfigSummary(cfg)

	server := rest.MustNewServer(cfg.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(*cfg)
	defer ctx.Close()
	cli.LogPromptSummary(ctx.Assistant)
	handler.RegisterHandlers(server, ctx)

	fmt.Printf("Starting server at %s:%d...\n", cfg.Host, cfg.Port)
	server.Start()
}
