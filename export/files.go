package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pthm-cable/relief/terrain"
)

// Options selects which artifacts WriteFiles produces.
type Options struct {
	Mesh       MeshOptions
	WriteMesh  bool
	NormalMap  bool
	HeightMap  bool
	HeightTIFF bool
	CellsCSV   bool
	Binary     bool
}

// WriteFiles writes every selected artifact as dir/base.<ext> and returns
// the paths it created. dir is created if missing.
func WriteFiles(dir, base string, f *terrain.HeightField, opts Options) ([]string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	type artifact struct {
		enabled bool
		ext     string
		write   func(io.Writer) error
	}
	artifacts := []artifact{
		{opts.WriteMesh, ".obj", func(w io.Writer) error { return WriteOBJ(w, f, opts.Mesh) }},
		{opts.NormalMap, ".ppm", func(w io.Writer) error { return WriteNormalMap(w, f, opts.Binary) }},
		{opts.HeightMap, ".pgm", func(w io.Writer) error { return WriteHeightMap(w, f, opts.Binary) }},
		{opts.HeightTIFF, ".tiff", func(w io.Writer) error { return WriteHeightTIFF(w, f) }},
		{opts.CellsCSV, ".csv", func(w io.Writer) error { return WriteCellsCSV(w, f) }},
	}

	var written []string
	for _, a := range artifacts {
		if !a.enabled {
			continue
		}
		path := filepath.Join(dir, base+a.ext)
		if err := writeFile(path, a.write); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}
	return nil
}
