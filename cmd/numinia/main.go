package main

import "github.com/numengames/numinia-core/internal/cli"

func main() {
	cli.Execute()
}
