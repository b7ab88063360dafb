package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/logging"
)

func main() {
	// Parse flags
	tourPath := flag.String("tour", "artifacts/best.json", "path to a saved tour artifact")
	tolerance := flag.Float64("tolerance", 1e-6, "allowed difference between saved and recomputed cost")
	delay := flag.Int("delay", 0, "replay the tour with this delay between steps in milliseconds")
	cols := flag.Int("cols", 60, "display width in characters")
	rows := flag.Int("rows", 24, "display height in characters")
	noDisplay := flag.Bool("no-display", false, "only print the check result")
	interactive := flag.Bool("interactive", false, "step through the tour on a full terminal screen")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	saved, err := logging.LoadTour(*tourPath)
	if err != nil {
		log.Error("loading tour", "path", *tourPath, "err", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded %s tour from run %s (%d generations, %d points)\n",
		saved.Label, saved.RunID, saved.Generations, len(saved.Points))

	check, err := Check(saved, *tolerance)
	if err != nil && !errors.Is(err, errCostMismatch) {
		log.Error("tour check failed", "err", err)
		os.Exit(1)
	}

	if !*noDisplay {
		display := NewDisplay(*cols, *rows, saved.Points)
		if *interactive {
			header := fmt.Sprintf("%s tour, run %s, cost %.2f", saved.Label, saved.RunID, saved.Cost)
			viewer, err := NewViewer(display, saved.Order, header)
			if err != nil {
				log.Error("opening screen", "err", err)
				os.Exit(1)
			}
			viewer.Run()
			viewer.Close()
		} else if *delay > 0 {
			frameDelay := time.Duration(*delay) * time.Millisecond
			for step := 1; step <= len(saved.Order); step++ {
				clearScreen()
				display.Render(os.Stdout, saved.Order[:step])
				time.Sleep(frameDelay)
			}
		} else {
			display.Render(os.Stdout, saved.Order)
		}
	}

	fmt.Println()
	fmt.Printf("  Saved cost:      %.4f\n", saved.Cost)
	fmt.Printf("  Recomputed cost: %.4f\n", check.Cost)
	fmt.Printf("  Path: %s\n", check.Path)
	if err != nil {
		log.Error("tour check failed", "err", err)
		os.Exit(1)
	}
	fmt.Println("  OK")
}

func clearScreen() {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", "cls")
	} else {
		cmd = exec.Command("clear")
	}
	cmd.Stdout = os.Stdout
	cmd.Run()
}
