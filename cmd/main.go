package main

import (
	"fmt"

	"github.com/ostafen/wordfreq/cmd/cmd"
	"github.com/ostafen/wordfreq/internal/env"
)

func main() {
	PrintLogo()

	_ = cmd.Execute()
}

func PrintLogo() {
	fmt.Println("                         _  __                ")
	fmt.Println("__      _____  _ __ __| |/ _|_ __ ___  __ _ ")
	fmt.Println("\\ \\ /\\ / / _ \\| '__/ _` | |_| '__/ _ \\/ _` |")
	fmt.Println(" \\ V  V / (_) | | | (_| |  _| | |  __/ (_| |")
	fmt.Println("  \\_/\\_/ \\___/|_|  \\__,_|_| |_|  \\___|\\__, |")
	fmt.Println("                                         |_|")
	fmt.Println()
	fmt.Println("Parallel word frequency counter")
	fmt.Println()
	fmt.Printf("Version:   %s\n", env.Version)
	fmt.Printf("Commit:    %s\n", env.CommitHash)
	fmt.Printf("Build Time: %s\n", env.BuildTime)
	fmt.Println(" ")
}
