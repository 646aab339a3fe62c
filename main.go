package main

import (
	"fmt"
	"os"

	"fjacquet/docfields/cmd/batch"
	"fjacquet/docfields/cmd/classify"
	"fjacquet/docfields/cmd/extract"
	"fjacquet/docfields/cmd/root"
	"fjacquet/docfields/cmd/serve"
	"fjacquet/docfields/internal/config"
)

func init() {
	// Load .env before viper reads the environment; a missing file is fine.
	if file, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", file, err)
	}

	root.Init()

	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
