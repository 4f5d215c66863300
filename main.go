package main

import (
	"github.com/skymkmk/domain-list-to-srs/cmd"

	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	cmd.Execute()
}
