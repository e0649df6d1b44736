package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "node":
		return nodeTemplate, nil
	case "solo":
		return soloTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const nodeTemplate = `process_id = "1"
listen = ":7071"

[log]
level = "info"
timestamp = true

[[peers]]
process_id = "2"
addr = "localhost:7072"

[[peers]]
process_id = "3"
addr = "localhost:7073"
`

const soloTemplate = `process_id = "1"
listen = ":7070"

[log]
level = "debug"
`
