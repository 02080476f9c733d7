package main

import "github.com/dew667/rspfind/internal/cli"

func main() {
	cli.Execute()
}
