package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/swdee/go-peoplecount"
	"github.com/swdee/go-peoplecount/internal/monitoring"
	"github.com/swdee/go-peoplecount/report"
	"github.com/swdee/go-peoplecount/store"
	"github.com/swdee/go-peoplecount/tracker"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	prototxt := flag.String("p", "../data/MobileNetSSD_deploy.prototxt", "Caffe 'deploy' prototxt file")
	modelFile := flag.String("m", "../data/MobileNetSSD_deploy.caffemodel", "Caffe pre-trained model file")
	input := flag.String("i", "", "Video file to count people in, leave empty to use the camera")
	output := flag.String("o", "", "Video file to write annotated frames to")
	confidence := flag.Float64("c", 0.4, "Minimum probability to filter weak detections")
	skipFrames := flag.Int("s", 30, "Number of frames between detections")
	labelFile := flag.String("l", "", "Text file containing model labels, defaults to the VOC labels")
	trackerKind := flag.String("t", string(peoplecount.TrackerMIL), "Tracker algorithm, mil|kcf|csrt")
	matching := flag.String("match", "greedy", "Identity matching algorithm, greedy|optimal")
	workers := flag.Int("w", 1, "Number of trackers to update concurrently")
	width := flag.Int("width", 500, "Width to resize frames to, 0 disables resizing")
	dbFile := flag.String("db", "", "SQLite database file to record runs and crossings in")
	chartFile := flag.String("chart", "", "PNG file to save a chart of In/Out totals to")
	httpAddr := flag.String("a", "", "HTTP address to stream annotated video on, format address:port")
	cpus := flag.String("cpus", "", "Comma delimited list of CPU cores to pin the program to, eg: 4,5,6,7")
	display := flag.Bool("display", false, "Show annotated frames in a window, press 'q' to quit")
	boxes := flag.Bool("boxes", false, "Draw the tracked bounding boxes")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	monitoring.SetDebug(*debug)

	if *cpus != "" {
		cores, err := peoplecount.ParseCores(*cpus)

		if err != nil {
			log.Fatalf("Invalid CPU cores: %v", err)
		}

		if err := peoplecount.SetCPUAffinity(peoplecount.CPUCoreMask(cores)); err != nil {
			log.Printf("Failed to set CPU Affinity: %v", err)
		}
	}

	cfg := peoplecount.DefaultConfig()
	cfg.Confidence = float32(*confidence)
	cfg.SkipFrames = *skipFrames
	cfg.Workers = *workers
	cfg.ResizeWidth = *width
	cfg.Tracker = peoplecount.TrackerKind(*trackerKind)
	cfg.DrawBoxes = *boxes

	var err error

	cfg.Matching, err = tracker.ParseMatchMode(*matching)

	if err != nil {
		log.Fatalf("Invalid match mode: %v", err)
	}

	if *labelFile != "" {
		cfg.Labels, err = peoplecount.LoadLabels(*labelFile)

		if err != nil {
			log.Fatalf("Error loading model labels: %v", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("[INFO] loading model...")

	det, err := peoplecount.NewSSDDetector(*prototxt, *modelFile, cfg.Labels)

	if err != nil {
		log.Fatalf("Error loading model: %v", err)
	}

	defer det.Close()

	factory, err := peoplecount.NewTrackerFactory(cfg.Tracker)

	if err != nil {
		log.Fatalf("Error creating tracker: %v", err)
	}

	if *input == "" {
		log.Printf("[INFO] starting video stream...")
	} else {
		log.Printf("[INFO] opening video file %s...", *input)
	}

	src, err := peoplecount.OpenSource(*input)

	if err != nil {
		log.Fatalf("Error opening video source: %v", err)
	}

	defer src.Close()

	opts := []peoplecount.RunnerOption{
		peoplecount.WithDisplay(*display),
	}

	if *input != "" {
		opts = append(opts, peoplecount.WithSourceName(*input))
	}

	if *output != "" {
		opts = append(opts, peoplecount.WithSink(peoplecount.VideoFileSink(*output)))
	}

	if *httpAddr != "" {
		stream := peoplecount.NewMJPEGStream()
		opts = append(opts, peoplecount.WithSink(stream.SinkFactory()))

		http.Handle("/stream", stream)

		go func() {
			log.Printf("Open browser and view video at http://%s/stream", *httpAddr)

			if err := http.ListenAndServe(*httpAddr, nil); err != nil {
				log.Printf("HTTP server stopped: %v", err)
			}
		}()
	}

	if *dbFile != "" {
		db, err := store.Open(*dbFile)

		if err != nil {
			log.Fatalf("Error opening database: %v", err)
		}

		defer db.Close()

		opts = append(opts, peoplecount.WithStore(db))
	}

	var series *report.Series

	if *chartFile != "" {
		series = report.NewSeries("People Count")
		opts = append(opts, peoplecount.WithSeries(series))
	}

	runner, err := peoplecount.NewRunner(cfg, src, det, factory, opts...)

	if err != nil {
		log.Fatalf("Error creating runner: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, runErr := runner.Run(ctx)

	log.Printf("[INFO] In: %d, Out: %d", res.In, res.Out)

	if series != nil && series.Len() > 0 {
		if err := series.Save(*chartFile); err != nil {
			log.Printf("Error saving chart: %v", err)
		} else {
			log.Printf("[INFO] chart saved to %s", *chartFile)
		}
	}

	if runErr != nil {
		log.Fatalf("Run %s failed: %v", res.RunID, runErr)
	}
}
