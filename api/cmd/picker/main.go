// Command picker fills a bracket from a click file and saves it through the
// PickEm API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PickEm/api/picker"
	"PickEm/api/submit"

	"github.com/caarlos0/env/v11"
)

func main() {
	var cfg picker.Env
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var clicksPath, finalScore string
	var dryRun bool
	flag.StringVar(&cfg.APIURL, "api", cfg.APIURL, "PickEm API base URL")
	flag.StringVar(&cfg.Token, "token", cfg.Token, "bearer token (default $PICKEM_TOKEN)")
	flag.StringVar(&clicksPath, "clicks", "", "file of \"<game id> <top|bottom>\" lines")
	flag.StringVar(&finalScore, "final-score", "", "championship total points guess")
	flag.BoolVar(&dryRun, "dry-run", false, "replay clicks without submitting")
	flag.Parse()

	if clicksPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -clicks is required")
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, cfg, clicksPath, finalScore, dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg picker.Env, clicksPath, finalScore string, dryRun bool) error {
	f, err := os.Open(clicksPath)
	if err != nil {
		return err
	}
	defer f.Close()
	clicks, err := picker.ParseClicks(f)
	if err != nil {
		return err
	}

	client := &picker.Client{BaseURL: cfg.APIURL, Token: cfg.Token}
	state, err := client.Fetch(ctx)
	if err != nil {
		return err
	}
	if state.Locked && !dryRun {
		return fmt.Errorf("picks are locked")
	}
	b, err := state.Build()
	if err != nil {
		return err
	}

	applied, err := picker.Play(b, clicks)
	if err != nil {
		return err
	}
	fmt.Printf("Applied %d of %d clicks.\n", applied, len(clicks))
	if champ, ok := b.Champion(); ok {
		fmt.Printf("Champion: %s\n", champ.Name)
	}

	if finalScore == "" {
		finalScore = state.FinalScore
	}
	sub := b.CollectPicks(finalScore)
	if dryRun {
		fmt.Printf("Dry run: %d picks not submitted.\n", len(sub.Picks))
		return nil
	}

	notice := &submit.Notice{OnChange: func(text string, visible bool) {
		if visible {
			fmt.Println(text)
		}
	}}
	submitter := submit.Submitter{
		Transport: &submit.HTTPTransport{BaseURL: cfg.APIURL, Token: cfg.Token},
		Notifier:  notice,
	}

	select {
	case out := <-submitter.Go(ctx, sub):
		if !out.Success {
			if out.Err != nil {
				return fmt.Errorf("%s: %w", out.Message, out.Err)
			}
			return fmt.Errorf("%s", out.Message)
		}
	case <-time.After(30 * time.Second):
		return fmt.Errorf("submission timed out")
	}
	return nil
}
