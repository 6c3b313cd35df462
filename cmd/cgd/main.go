package main

import "github.com/kadinelbak/CancerGrowthDynamics/internal/cli"

func main() {
	cli.Execute()
}
