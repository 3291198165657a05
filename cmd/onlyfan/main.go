package main

import (
	"context"
	"os"

	"github.com/kianlavi/onlyfan/internal/cli"
	"github.com/kianlavi/onlyfan/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	os.Exit(cli.Execute(context.Background(), cli.DefaultEnv(build), os.Args[1:]))
}
