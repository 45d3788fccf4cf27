package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/kdimtricp/swingcore/internal/banding"
	"github.com/kdimtricp/swingcore/internal/biomechanics"
	"github.com/kdimtricp/swingcore/internal/posefile"
	"github.com/kdimtricp/swingcore/internal/session"
)

func main() {
	var (
		posePath  = flag.String("pose", "", "Path to the pose document (JSON)")
		hz        = flag.Float64("hz", 10, "Sampling rate in updates per second")
		threshold = flag.Float64("threshold", biomechanics.DefaultVisibilityThreshold, "Keypoint visibility threshold")
		bandsPath = flag.String("bands", "", "YAML band table overrides")
		asJSON    = flag.Bool("json", false, "Print one JSON update per line")
	)
	flag.Parse()

	if *posePath == "" {
		fmt.Println("Usage: analyze-pose -pose <pose.json> [-hz 10] [-threshold 0.8] [-bands bands.yaml] [-json]")
		os.Exit(1)
	}
	if *hz <= 0 {
		log.Fatalf("Invalid -hz %v", *hz)
	}

	file, err := os.Open(*posePath)
	if err != nil {
		log.Fatalf("Failed to open pose document: %v", err)
	}
	doc, err := posefile.Decode(file)
	file.Close()
	if err != nil {
		log.Fatalf("Failed to read pose document: %v", err)
	}

	registry := banding.DefaultRegistry()
	if *bandsPath != "" {
		registry, err = banding.LoadRegistryFile(*bandsPath)
		if err != nil {
			log.Fatalf("Failed to load bands: %v", err)
		}
	}

	cfg := session.DefaultConfig(*posePath, doc.Sequence)
	cfg.VisibilityThreshold = *threshold
	cfg.Registry = registry
	cfg.VideoSize = doc.VideoSize

	s, err := session.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	seq := s.Sequence()
	fmt.Printf("Pose document: %s\n", *posePath)
	fmt.Printf("Topology: %s, frames: %d, duration: %.2fs\n", seq.Topology().Name, seq.Len(), seq.Duration())
	if seq.Len() == 0 {
		return
	}

	updates, err := s.Sample(*hz)
	if err != nil {
		log.Fatalf("Failed to sample session: %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		for _, u := range updates {
			if err := enc.Encode(u); err != nil {
				log.Fatalf("Failed to encode update: %v", err)
			}
		}
		return
	}

	bar := pb.StartNew(len(updates))
	counts := make(map[string]map[banding.Status]int)
	for _, u := range updates {
		bar.Increment()
		fmt.Printf("\nt=%.2fs frame=%d (%.3fs)\n", u.Time, u.FrameIndex, u.FrameTime)
		metrics := append(u.Snapshot.Metrics(), biomechanics.NamedMetric{Name: biomechanics.LiveBalance, Value: u.LiveBalance})
		for _, m := range metrics {
			line := fmt.Sprintf("  %-18s %s", m.Name, m.Value)
			if view, ok := u.Statuses[m.Name]; ok {
				line += fmt.Sprintf(" [%s]", view.Status)
				if counts[m.Name] == nil {
					counts[m.Name] = make(map[banding.Status]int)
				}
				counts[m.Name][view.Status]++
			}
			fmt.Println(line)
		}
	}
	bar.Finish()

	fmt.Println("\nStatus summary:")
	fmt.Println(strings.Repeat("=", 40))
	for _, name := range registry.Names() {
		c, ok := counts[name]
		if !ok {
			continue
		}
		fmt.Printf("%-18s excellent=%d good=%d fair=%d needs_work=%d\n",
			name, c[banding.Excellent], c[banding.Good], c[banding.Fair], c[banding.NeedsWork])
	}
}
