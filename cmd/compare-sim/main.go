package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jasonjgarcia24/ultra-smart/internal/simulate"
)

// Default configuration constants.
const (
	defaultRunners      = 4
	defaultRequests     = 25
	defaultCourseLength = 250.0
	defaultSeed         = 42
	defaultTimeout      = 30 * time.Second
	defaultRunTimeout   = 10 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:8090", "Base URL of the comparison service")
		runners      = flag.Int("runners", defaultRunners, "Runners per comparison request")
		requests     = flag.Int("requests", defaultRequests, "Number of comparison requests to send")
		courseLength = flag.Float64("course-length", defaultCourseLength, "Course length in miles")
		seed         = flag.Int64("seed", defaultSeed, "Random seed for payload generation")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	res, err := simulate.Run(ctx, simulate.Config{
		BaseURL:      *baseURL,
		Runners:      *runners,
		Requests:     *requests,
		CourseLength: *courseLength,
		Seed:         *seed,
		Timeout:      *timeout,
	})
	if err != nil {
		os.Stderr.WriteString("simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	fmt.Println(res.Summary())
	if res.Failures > 0 || res.ShapeErrors > 0 {
		os.Exit(1)
	}
}
