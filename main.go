package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"SketchBoard/internal/config"
	sbnet "SketchBoard/internal/net"
	"SketchBoard/internal/state"
	"SketchBoard/internal/ui"
)

const browseTimeout = 3 * time.Second

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) > 1 && os.Args[1] == "browse" {
		runBrowse()
		return
	}
	runEditor()
}

func runEditor() {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}

	session := state.NewSession(cfg.SessionOptions())
	log.Printf("[SESSION] started %s with %q style", session.ID, cfg.Style)

	opts := ui.Options{ShowGrid: cfg.Grid}

	if cfg.Mirror.Enabled {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		mirror := sbnet.NewMirror()
		mirror.Publish(session.Surface())
		go mirror.Run(ctx)
		go func() {
			if err := mirror.ListenAndServe(ctx, cfg.Mirror.Port); err != nil {
				log.Printf("[MIRROR] disabled: %v", err)
			}
		}()
		opts.OnChange = mirror.Publish

		if cfg.Mirror.Advertise {
			server, err := sbnet.Advertise(cfg.Mirror.Instance, cfg.Mirror.Port)
			if err != nil {
				log.Printf("[MDNS] %v", err)
			} else {
				defer server.Shutdown()
			}
		}

		opts.ShareLink = sbnet.ShareURL(sbnet.ShareIP(ctx), cfg.Mirror.Port)
		log.Printf("[MIRROR] viewers can open %s", opts.ShareLink)
	}

	ui.RunApp(session, opts)
}

func runBrowse() {
	fmt.Println("Looking for SketchBoard mirrors...")
	found := 0
	err := sbnet.Browse(browseTimeout, func(s sbnet.Service) {
		found++
		fmt.Printf("%s\t%s\n", s.Instance, s.URL())
	})
	if err != nil {
		log.Fatalf("[MDNS] %v", err)
	}
	if found == 0 {
		fmt.Println("No mirrors found.")
	}
}
