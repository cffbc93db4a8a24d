package main

import (
	"fmt"
	"os"

	"github.com/borgmon/prayer-bar/cmd/prayerbar/commands"

	_ "time/tzdata"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
