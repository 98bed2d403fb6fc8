package main

import (
	"github.com/larsks/faultblink/internal/cli"
	"github.com/larsks/faultblink/internal/faultblink"
	_ "github.com/larsks/faultblink/internal/logsetup"
)

func main() {
	cli.StandardMain(
		"faultblink",
		func() cli.Configurable { return faultblink.NewConfig() },
		faultblink.NewHandler(nil),
	)
}
