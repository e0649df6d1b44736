package main

import (
	"flag"
	"log"

	"github.com/danmuck/grantwire/internal/config"
)

func main() {
	kind := flag.String("kind", "node", "config kind: node|solo")
	output := flag.String("output", "node.toml", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "node.toml", "config path for validation")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		cfg, err := config.LoadNodeConfig(*input)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Validated node %q config at %s (%d peers)", cfg.ProcessID, *input, len(cfg.Peers))
		return
	}

	if err := config.WriteTemplate(*output, *kind, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s config template to %s", *kind, *output)
}
