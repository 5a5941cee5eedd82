/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/hance08/tally/cmd"

func main() {
	cmd.Execute()
}
