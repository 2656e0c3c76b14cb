// Command minify writes minified copies of the quiz page assets. With no
// flags it rebuilds dist/ from templates/ and static/; with -input, -output
// and -type it minifies a single file.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"
)

// mediaTypes maps a -type value or file extension to its minifier media type.
var mediaTypes = map[string]string{
	"css":  "text/css",
	"html": "text/html",
	"js":   "application/javascript",
	"json": "application/json",
}

func main() {
	var (
		inputFile  = flag.String("input", "", "Input file path")
		outputFile = flag.String("output", "", "Output file path")
		fileType   = flag.String("type", "", "File type (css, js, html or json)")
		distDir    = flag.String("dist", "dist", "Output directory when building every asset")
	)
	flag.Parse()

	m := newMinifier()

	if *inputFile == "" && *outputFile == "" {
		if err := buildDist(m, *distDir, "templates", "static"); err != nil {
			log.Fatalf("Failed to build %s: %v", *distDir, err)
		}
		fmt.Printf("Minified assets are in the '%s' directory\n", *distDir)
		return
	}

	if *inputFile == "" || *outputFile == "" || *fileType == "" {
		log.Fatal("Usage: go run ./cmd/minify [-dist=<dir>] | -input=<file> -output=<file> -type=<css|js|html|json>")
	}
	mediaType, ok := mediaTypes[strings.ToLower(*fileType)]
	if !ok {
		log.Fatalf("Unsupported file type: %s (supported: css, js, html, json)", *fileType)
	}
	if _, err := minifyFile(m, *inputFile, *outputFile, mediaType); err != nil {
		log.Fatalf("Failed to minify %s: %v", *inputFile, err)
	}
	fmt.Printf("Successfully minified %s -> %s\n", *inputFile, *outputFile)
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add("text/html", &html.Minifier{
		TemplateDelims:   html.GoTemplateDelims,
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	m.AddFunc("application/javascript", js.Minify)
	m.AddFunc("application/json", json.Minify)
	return m
}

// buildDist minifies every known asset under each source directory into distDir,
// keeping relative paths. Files with other extensions are skipped.
func buildDist(m *minify.M, distDir string, sources ...string) error {
	for _, src := range sources {
		err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			mediaType, ok := mediaTypes[strings.TrimPrefix(filepath.Ext(path), ".")]
			if !ok {
				return nil
			}
			rel, err := filepath.Rel(filepath.Dir(src), path)
			if err != nil {
				return err
			}
			saved, err := minifyFile(m, path, filepath.Join(distDir, rel), mediaType)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d bytes saved\n", path, saved)
			return nil
		})
		if err != nil {
			return fmt.Errorf("minify %s: %w", src, err)
		}
	}
	return nil
}

// minifyFile writes the minified form of srcPath to dstPath and returns the
// number of bytes saved.
func minifyFile(m *minify.M, srcPath, dstPath, mediaType string) (int, error) {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return 0, err
	}

	minified, err := m.Bytes(mediaType, src)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(dstPath, minified, 0644); err != nil {
		return 0, err
	}
	return len(src) - len(minified), nil
}
