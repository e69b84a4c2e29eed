package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"balllabel/pkg/config"
	"balllabel/pkg/frames"
	"balllabel/pkg/labeling"
	"balllabel/pkg/roi"
)

func main() {
	// The frames subcommand splits a video into training images; the
	// default (label) command runs the annotation loop.
	if len(os.Args) > 1 && os.Args[1] == "frames" {
		runFrames(os.Args[2:])
		return
	}

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "label" {
		args = args[1:]
	}
	runLabel(args)
}

func runLabel(args []string) {
	fs := flag.NewFlagSet("label", flag.ExitOnError)
	configPath := fs.String("config", "balllabel.yaml", "YAML configuration file (optional)")
	inputDir := fs.String("input", "", "Directory containing training images")
	outputFile := fs.String("output", "", "Output CSV filename")
	delimiter := fs.String("delimiter", "", "Output field delimiter (single character)")
	checkpoint := fs.Bool("checkpoint", false, "Flush the dataset to a checkpoint file after every image")
	overlayDir := fs.String("overlay-dir", "", "Directory for per-image polygon overlay SVGs")
	roiScript := fs.String("roi-script", "", "YAML polygon script for headless runs (skips the interactive window)")
	step := fs.Int("step", 0, "Initial crosshair step in pixels")
	fs.Parse(args)

	// Parse command line arguments on top of the config file
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *inputDir != "" {
		cfg.Input.Dir = *inputDir
	}
	if *outputFile != "" {
		cfg.Output.File = *outputFile
	}
	if *delimiter != "" {
		cfg.Output.Delimiter = *delimiter
	}
	if *checkpoint {
		cfg.Output.Checkpoint = true
	}
	if *overlayDir != "" {
		cfg.Output.OverlayDir = *overlayDir
	}
	if *roiScript != "" {
		cfg.Capture.ScriptFile = *roiScript
	}
	if *step > 0 {
		cfg.Capture.StepSize = *step
	}

	delim, err := cfg.DelimiterRune()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var capturer roi.Capturer
	if cfg.Capture.ScriptFile != "" {
		capturer, err = roi.LoadScript(cfg.Capture.ScriptFile)
		if err != nil {
			log.Fatalf("Failed to load roi script: %v", err)
		}
	} else {
		capturer = &roi.Interactive{
			WindowTitle: cfg.Capture.WindowTitle,
			Step:        cfg.Capture.StepSize,
		}
	}

	fmt.Println("================================")
	fmt.Println("BALL COLOR SAMPLE LABELING")
	fmt.Println("Draw one region of interest per image; enclosed pixels")
	fmt.Println("are appended to the training dataset.")
	fmt.Println("================================")

	labeler := labeling.NewLabeler(&labeling.Params{
		InputDir:   cfg.Input.Dir,
		OutputFile: cfg.Output.File,
		Capturer:   capturer,
		Delimiter:  delim,
		Checkpoint: cfg.Output.Checkpoint,
		OverlayDir: cfg.Output.OverlayDir,
	})

	if err := labeler.Process(); err != nil {
		log.Fatalf("Labeling failed: %v", err)
	}

	summary := labeler.Dataset().Summarize()
	fmt.Printf("\nLabeling completed successfully!\n")
	fmt.Printf("Dataset saved to: %s\n\n", cfg.Output.File)
	fmt.Printf("Dataset summary:\n")
	fmt.Printf("================\n")
	fmt.Printf("Samples: %d\n", summary.Rows)
	for c := range summary.Mean {
		fmt.Printf("Channel %d: mean %.2f, stddev %.2f\n", c, summary.Mean[c], summary.StdDev[c])
	}
}

func runFrames(args []string) {
	fs := flag.NewFlagSet("frames", flag.ExitOnError)
	configPath := fs.String("config", "balllabel.yaml", "YAML configuration file (optional)")
	video := fs.String("video", "", "Input video file")
	outDir := fs.String("out", "", "Directory to receive extracted frames")
	fps := fs.Int("fps", 0, "Frames per second to sample")
	maxWidth := fs.Int("max-width", 0, "Scale frames down to this width (0 keeps original size)")
	fs.Parse(args)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *fps > 0 {
		cfg.Frames.FPS = *fps
	}
	if *maxWidth > 0 {
		cfg.Frames.MaxWidth = *maxWidth
	}
	if *video == "" {
		fs.Usage()
		os.Exit(1)
	}
	dir := *outDir
	if dir == "" {
		dir = cfg.Input.Dir
	}

	fmt.Printf("Extracting frames from %s at %d fps...\n", *video, cfg.Frames.FPS)
	count, err := frames.Extract(context.Background(), frames.Options{
		Video:    *video,
		OutDir:   dir,
		FPS:      cfg.Frames.FPS,
		MaxWidth: cfg.Frames.MaxWidth,
	})
	if err != nil {
		log.Fatalf("Frame extraction failed: %v", err)
	}
	fmt.Printf("Wrote %d frames to %s\n", count, dir)
}
