// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Command imageorient prints the EXIF orientation and display transform of JPEG and PNG files.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/bep/imageorient"
	"github.com/hashicorp/go-multierror"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("imageorient: ")
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

type fileResult struct {
	Path        string            `json:"path"`
	Format      string            `json:"format"`
	Orientation int               `json:"orientation"`
	Name        string            `json:"name"`
	Resolved    bool              `json:"resolved"`
	Transform   string            `json:"transform"`
	CSS         string            `json:"css"`
	Tags        map[string]string `json:"tags,omitempty"`
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("imageorient", flag.ContinueOnError)
	var (
		mimeType = fs.String("type", "", "MIME type of the files (default: from the file extension)")
		asJSON   = fs.Bool("json", false, "print one JSON object per file")
		strict   = fs.Bool("strict", false, "fail if any file could not be decoded")
		verbose  = fs.Bool("v", false, "log warnings")
		timeout  = fs.Duration("timeout", 0, "max time to spend on one file (0 means no limit)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("no files given")
	}

	opts := imageorient.Options{Timeout: *timeout}
	if *verbose {
		opts.Warnf = log.Printf
	}
	dec := imageorient.New(opts)

	enc := json.NewEncoder(out)

	var result *multierror.Error
	for _, path := range fs.Args() {
		typ := *mimeType
		if typ == "" {
			typ = mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
		}

		res, err := decodeFile(dec, path, typ)
		if err != nil {
			if *strict {
				result = multierror.Append(result, fmt.Errorf("%s: %w", path, err))
			} else if *verbose {
				log.Printf("%s: %v", path, err)
			}
		}

		fr := fileResult{
			Path:        path,
			Format:      res.Format.String(),
			Orientation: int(res.Orientation),
			Name:        res.Orientation.String(),
			Resolved:    res.Resolved,
			Transform:   res.Transform().String(),
			CSS:         res.Transform().CSS(),
		}

		if *asJSON {
			fr.Tags = res.Tags
			if err := enc.Encode(fr); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(out, "%s\t%d\t%s\t%s\n", fr.Path, fr.Orientation, fr.Name, fr.CSS); err != nil {
			return err
		}
	}

	return result.ErrorOrNil()
}

func decodeFile(dec *imageorient.Decoder, path, mimeType string) (imageorient.DecodeResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return imageorient.DecodeResult{Orientation: imageorient.DefaultOrientation}, &imageorient.ReadError{Err: err}
	}
	defer f.Close()
	return dec.Decode(f, mimeType)
}
