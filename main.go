/*
Copyright 2024 topo-configgen contributors
*/

package main

import "github.com/nodeforge/topo-configgen/cmd"

func main() {
	cmd.Execute()
}
