package main

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/failsight/internal/app"
	"github.com/maxbolgarin/failsight/internal/config"
	"github.com/maxbolgarin/logze/v2"
)

var (
	Version, Branch, Commit, BuildDate string
)

var (
	configPath = kingpin.Flag("config", "path to config file").Short('c').String()
	mode       = kingpin.Arg("mode", "run mode").Default("analyze").Enum("analyze", "extract", "serve")
)

func main() {
	kingpin.Parse()
	var err error
	ctx := contem.New(contem.WithLogger(logze.DefaultPtr()), contem.Exit(&err))
	defer ctx.Shutdown()
	err = run(ctx)
	if err != nil {
		logze.DefaultPtr().Error("cannot run", "error", err)
	}
}

func run(ctx contem.Context) error {
	logze.Init(logze.C().WithConsole().WithLevel(logze.LevelInfo))

	cfg, err := config.Load(*configPath)
	if err != nil {
		return erro.Wrap(err, "load config")
	}

	failsight, err := app.New(ctx, cfg)
	if err != nil {
		return erro.Wrap(err, "new app")
	}

	switch *mode {
	case "extract":
		return failsight.RunExtract(ctx)
	case "serve":
		return failsight.StartServer(ctx)
	default:
		return failsight.RunAnalysis(ctx)
	}
}
