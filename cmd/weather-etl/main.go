package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/evanhutnik/weather-etl/internal/etl"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	args := os.Args[1:]
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: weather-etl <start> <end> <location> [<location>...] (dates as YYYYMMDD)")
		os.Exit(1)
	}

	start, end := args[0], args[1]
	for _, d := range []string{start, end} {
		if _, err := time.Parse("20060102", d); err != nil {
			fmt.Fprintf(os.Stderr, "invalid date %q, want YYYYMMDD\n", d)
			os.Exit(1)
		}
	}

	s := etl.New()
	s.Run(context.Background(), args[2:], start, end)
}
