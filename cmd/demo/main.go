package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anatolykoptev/go-kit/env"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"studynotes/demo/client"
	"studynotes/demo/tui"
)

// flagDefaults reads the flag defaults from the environment.
func flagDefaults() (serverURL, outputDir string) {
	return env.Str("STUDYNOTES_URL", client.DefaultBaseURL), env.Str("STUDYNOTES_OUT", ".")
}

func main() {
	// Load environment
	_ = godotenv.Load()

	defServer, defOut := flagDefaults()
	serverURL := flag.String("server", defServer, "API server URL")
	videoURL := flag.String("url", "", "YouTube URL to pre-fill")
	outputDir := flag.String("out", defOut, "Directory for downloaded PDFs")
	flag.Parse()

	m := tui.NewModel(client.NewClient(*serverURL), *videoURL, *outputDir)
	program := tea.NewProgram(m)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
