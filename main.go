// Package main is the entry point for the draftstats CLI tool, which turns
// esports match spreadsheets into per-champion draft statistics.
package main

import "github.com/pable/go-lol-draftstats/cmd"

func main() {
	cmd.Execute()
}
