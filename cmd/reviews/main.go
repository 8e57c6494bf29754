// Package main is the entry point for the reviews CLI.
package main

import (
	"go-review-analytics/internal/cli"
)

func main() {
	cli.Execute()
}
