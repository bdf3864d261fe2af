package main

import "github.com/sybrenstuvel/gorsa/cmd/gorsa/cmd"

func main() {
	cmd.Execute()
}
