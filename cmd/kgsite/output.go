package main

import (
	"io"

	json "github.com/goccy/go-json"
)

func printJSON(w io.Writer, v any) error {
	gson, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(gson, '\n'))
	return err
}
