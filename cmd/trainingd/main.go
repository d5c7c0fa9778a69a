package main

import (
	"log"

	"github.com/sheriffbukari/xtx-training/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
