package main

import "github.com/ricardozepinto10/NextGenAcademy/internal/cli"

func main() {
	cli.Execute()
}
