package main

import (
	"github.com/voidwall/xabctl/cmd"
)

func main() {
	cmd.Execute()
}
