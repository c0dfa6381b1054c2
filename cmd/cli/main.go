// fightlog - Combat Log Replay Tool
//
// fightlog replays JSON-lines MUD combat logs in virtual time and summarizes
// each fight per actor. Logs can also be exported as plain text, forum markup
// or JSON statistics.
package main

import (
	"os"

	"github.com/ccollicutt/fightlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
