package main

import (
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/thejimmylin/f5project/internal/scaffold"
)

var errArgs = errors.New("invalid number of arguments, usage: f5project create-project <dst>")

func main() {
	mustNil(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) error {
	if len(args) != 2 {
		return errArgs
	}

	task, dst := args[0], args[1]
	if task != "create-project" {
		fmt.Fprintf(stdout, "Unknown task: %s. `create-project` is the only task available.\n", task)
		return nil
	}

	created, err := scaffold.Create(dst)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	log.Info().Str("dst", dst).Strs("files", created).Msg("project created")
	return nil
}

func mustNil(err error) {
	if err != nil {
		stdlog.Panic(err)
	}
}
