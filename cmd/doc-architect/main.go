package main

import "github.com/petrarca/doc-architect/internal/cmd"

func main() {
	cmd.Execute()
}
