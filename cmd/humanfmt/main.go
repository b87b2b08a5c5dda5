package main

import (
	"log"
	_ "time/tzdata"

	"github.com/spf13/cobra"
)

const (
	releaseVersion = "0.1.0"
	logDate        = "2006-01-02T15:04:05.000-07:00"
)

func main() {
	log.SetFlags(0)
	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}
