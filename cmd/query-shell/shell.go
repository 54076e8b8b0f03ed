package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"employee-query-workers/internal/assistant/engine"
	"employee-query-workers/internal/assistant/format"
	"employee-query-workers/internal/assistant/history"
)

const (
	welcome = "Welcome to the Company Database Assistant!\n" +
		"Type 'help' for available commands or 'exit' to quit."
	prompt = "\nWhat would you like to know? "

	historyCommand = "history"
	statsCommand   = "stats"
	historyLimit   = 10
)

type assistant interface {
	Process(ctx context.Context, text string) engine.Answer
	History(ctx context.Context, n int) ([]history.Entry, error)
	IntentCounts(ctx context.Context) (map[string]int64, error)
}

type shell struct {
	engine         assistant
	in             io.Reader
	out            io.Writer
	historyEnabled bool
}

// Run reads one query per line until exit, end of input or cancellation. Cancellation
// stops the loop even while it waits for input.
func (s *shell) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(s.out, welcome)

	lines, readErr := s.readLines(ctx)
	for {
		fmt.Fprint(s.out, prompt)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				return <-readErr
			}
			line = l
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case historyCommand:
			s.printHistory(ctx)
			continue
		case statsCommand:
			s.printStats(ctx)
			continue
		}

		answer := s.engine.Process(ctx, line)
		fmt.Fprintln(s.out, answer.Text)
		if answer.Exit {
			return nil
		}
	}
}

// readLines scans s.in on its own goroutine. The error channel receives the scan error
// once lines is closed at end of input.
func (s *shell) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
		close(lines)
	}()
	return lines, readErr
}

func (s *shell) printHistory(ctx context.Context) {
	if !s.historyEnabled {
		fmt.Fprintln(s.out, "Query history is not enabled.")
		return
	}
	entries, err := s.engine.History(ctx, historyLimit)
	if err != nil {
		fmt.Fprintln(s.out, format.Error("could not load query history"))
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "No queries yet.")
		return
	}
	fmt.Fprintln(s.out, "Recent queries:")
	for _, e := range entries {
		line := fmt.Sprintf("- %s  %s [%s]", e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Query, e.Intent)
		if e.ErrorCode != "" {
			line += " " + e.ErrorCode
		}
		fmt.Fprintln(s.out, line)
	}
}

func (s *shell) printStats(ctx context.Context) {
	if !s.historyEnabled {
		fmt.Fprintln(s.out, "Query history is not enabled.")
		return
	}
	counts, err := s.engine.IntentCounts(ctx)
	if err != nil {
		fmt.Fprintln(s.out, format.Error("could not load query statistics"))
		return
	}
	if len(counts) == 0 {
		fmt.Fprintln(s.out, "No queries yet.")
		return
	}

	intents := make([]string, 0, len(counts))
	for name := range counts {
		intents = append(intents, name)
	}
	sort.Slice(intents, func(i, j int) bool {
		if counts[intents[i]] != counts[intents[j]] {
			return counts[intents[i]] > counts[intents[j]]
		}
		return intents[i] < intents[j]
	})

	fmt.Fprintln(s.out, "Queries by intent:")
	for _, name := range intents {
		fmt.Fprintf(s.out, "- %s: %d\n", name, counts[name])
	}
}
