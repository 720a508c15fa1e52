// Package main provides the entry point for the Career Copilot server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "career_copilot",
	Short: "Career Copilot resume analysis",
	Long:  "Career Copilot analyzes a resume against a target role, builds a learning roadmap for the gaps, and generates cover letters and interview questions.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
