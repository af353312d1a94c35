package main

import (
	"github.com/mchmarny/gradepoint/pkg/cli"
)

func main() {
	cli.Execute()
}
