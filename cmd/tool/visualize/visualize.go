package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/danl5/govote"
	"github.com/danl5/govote/pkg/config"
)

var (
	outputPath = flag.String("o", "./fsm_visual", "output path")
)

func main() {
	flag.Parse()

	p, err := govote.NewPoll(&govote.PollConfig{
		Config: config.Config{
			Duration:    time.Second,
			Probability: 1,
			Stations:    1,
		},
	}, slog.Default())
	if err != nil {
		panic(err)
	}
	visualStr := p.Visualize()

	f, err := os.OpenFile(*outputPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	_, err = f.WriteString(visualStr)
	if err != nil {
		panic(err)
	}

	fmt.Println("Visualization finished")
}
