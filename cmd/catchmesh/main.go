// Command catchmesh converts a plain-text catchment geometry file into an
// ESMF Unstructured Mesh NetCDF file.
//
// Input format is one record per line: an integer UID, a tab, and a WKT
// POLYGON or MULTIPOLYGON literal. This is a minimal, dependency-free
// stand-in for the shapefile/geodatabase readers a production ingestion
// pipeline would use (reading those formats is out of scope here).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/nhd-mesh/catchmesh/internal/geom"
	"github.com/nhd-mesh/catchmesh/pkg/catchmesh"
)

func main() {
	in := flag.String("in", "", "path to the input UID\\tWKT file")
	out := flag.String("out", "", "path to write the ESMF mesh NetCDF file")
	uidField := flag.String("uid-field", "uid", "name of the output UID variable")
	nodeThreshold := flag.Int("node-threshold", 0, "split any polygon above this vertex count into a grid (0 disables)")
	splitInteriors := flag.Bool("split-interiors", false, "split holed polygons into hole-free pieces before assembly")
	allowMultipart := flag.Bool("allow-multipart", true, "accept MultiPolygon records")
	destCRS := flag.String("dest-crs", "", "target CRS passed to the pipeline; this command supplies no reprojector, so geometries are not reprojected")
	srcCRS := flag.String("src-crs", "", "source CRS of the input geometries")
	workers := flag.Int("workers", 1, "number of simulated SPMD ranks")
	withConnectivity := flag.Bool("with-connectivity", false, "compute neighbor adjacency (requires -workers=1)")
	polygonBreakValue := flag.Int("polygon-break-value", -8, "sentinel separating multipart face pieces in elementConn")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: catchmesh -in records.txt -out mesh.nc")
		os.Exit(2)
	}

	records, err := readRecords(*in)
	if err != nil {
		log.Fatalf("read %s: %v", *in, err)
	}

	opts := catchmesh.DefaultOptions()
	opts.FaceUIDName = *uidField
	opts.NodeThreshold = *nodeThreshold
	opts.SplitInteriors = *splitInteriors
	opts.AllowMultipart = *allowMultipart
	opts.SrcCRS = *srcCRS
	opts.DestCRS = *destCRS
	opts.Workers = *workers
	opts.WithConnectivity = *withConnectivity
	opts.PolygonBreakValue = int32(*polygonBreakValue)

	src := catchmesh.SliceSource{Records: records}
	result, err := catchmesh.Convert(src, *out, opts)
	if err != nil {
		log.Fatalf("convert: %v", err)
	}

	log.Printf("wrote %s (%d records)", result.Path, len(records))
	if opts.WithConnectivity {
		log.Printf("found %d neighbor pairs", len(result.Connectivity))
	}
}

// readRecords reads "uid\tWKT" lines from path, skipping blank lines and
// lines starting with '#'.
func readRecords(path string) ([]catchmesh.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []catchmesh.Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"uid\\tWKT\", got %q", lineNo, line)
		}
		uid, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: parse uid: %w", lineNo, err)
		}
		g, err := geom.ParseWKT(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, catchmesh.Record{UID: uid, Geom: g})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
