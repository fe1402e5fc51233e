package main

import (
	"clinic-booking/cmd"

	_ "go.uber.org/automaxprocs"
)

func main() {
	cmd.Start()
}
