package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/stratfolio/stratfolio/internal/config"
	"github.com/stratfolio/stratfolio/internal/logging"
	"github.com/stratfolio/stratfolio/internal/session"
	"log/slog"
)

const defaultAPIURL = "http://localhost:8080"

func main() {
	_ = godotenv.Load()

	risk := flag.Int("risk", 2, "risk tolerance (1=low, 2=medium, 3=high)")
	horizon := flag.Int("horizon", 10, "investment horizon in years")
	portfolio := flag.Float64("portfolio", 10000, "portfolio size in USD")
	flag.Parse()

	logger, err := logging.New(config.LoggingConfig{Level: slog.LevelWarn, Format: "text"})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}

	apiURL := os.Getenv("ADVISOR_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	client := session.NewHTTPClient(apiURL)
	controller := session.NewController(client, logger)

	if err := controller.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to start session:", err)
		os.Exit(1)
	}

	printLatest(controller, 0)

	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for controller.State() != session.StateSatisfied {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			return
		}

		seen := len(controller.Transcript())

		var err error
		switch controller.State() {
		case session.StateAwaitingFirstGoal:
			err = controller.SubmitGoal(ctx, input, *risk, *horizon, *portfolio)
		case session.StateAwaitingFeedback:
			err = controller.SubmitFeedback(ctx, input)
		default:
			fmt.Println("session is busy, try again")
			continue
		}

		if err != nil {
			var verr *session.ValidationError
			if errors.As(err, &verr) {
				fmt.Println("invalid input:", verr.Message)
				continue
			}
			// Transport and backend errors are already in the transcript.
		}

		printLatest(controller, seen)
	}
}

// printLatest shows every transcript turn added since the given offset.
func printLatest(c *session.Controller, since int) {
	turns := c.Transcript()
	for _, turn := range turns[since:] {
		switch turn.Kind {
		case session.TurnUser:
			// The user just typed this, no need to echo it.
		case session.TurnRecommendation:
			fmt.Println()
			fmt.Println(turn.Text)
			fmt.Printf("(recommendation %s: tell me what you think, or say you're satisfied)\n", turn.RecommendationID)
		case session.TurnError:
			fmt.Println("error:", turn.Text)
		default:
			fmt.Println(turn.Text)
		}
	}
}
