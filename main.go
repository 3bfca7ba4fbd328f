package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"boliche/cmd"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := cmd.Run(ctx, os.Args[1:]); err != nil {
		log.Fatal("Application error: ", err)
	}
}
