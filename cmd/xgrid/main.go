// Package main provides the xgrid CLI.
package main

import "github.com/mesh-intelligence/xgrid/internal/cli"

func main() {
	cli.Execute()
}
