//go:build cli

package main

import (
	_ "retail.GO/cron/jobs"
	_ "retail.GO/custom"

	"retail.GO/cmd"
	"retail.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
