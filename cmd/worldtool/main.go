package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/urfave/cli/v2"

	"github.com/freshvoxel/engine/internal/engine/voxel"
	"github.com/freshvoxel/engine/internal/engine/world"
	"github.com/freshvoxel/engine/internal/engine/world/gen"
)

func main() {
	app := &cli.App{
		Name:  "worldtool",
		Usage: "inspect, generate and recompress voxel world saves",
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "print header and chunk statistics for a save file",
				ArgsUsage: "<save file>",
				Action:    runInfo,
			},
			{
				Name:      "generate",
				Usage:     "generate a square region of chunks and write a save file",
				ArgsUsage: "<save file>",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "seed", Value: 12345, Usage: "generation seed"},
					&cli.StringFlag{Name: "generator", Value: "terrain", Usage: "terrain, biome or flat"},
					&cli.IntFlag{Name: "radius", Value: 4, Usage: "chunk radius around the origin"},
				},
				Action: runGenerate,
			},
			{
				Name:      "compress",
				Usage:     "gzip a raw save file",
				ArgsUsage: "<save file>",
				Action:    runCompress,
			},
			{
				Name:      "decompress",
				Usage:     "un-gzip a compressed save file",
				ArgsUsage: "<save file.gz>",
				Action:    runDecompress,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openSave(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return struct {
		io.Reader
		io.Closer
	}{gz, f}, nil
}

func runInfo(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("need a save file to inspect")
	}
	path := c.Args().Get(0)

	r, err := openSave(path)
	if err != nil {
		return err
	}
	defer r.Close()

	info, err := world.ReadInfo(r)
	if err != nil {
		return err
	}

	fmt.Printf("version:      %d\n", info.Version)
	fmt.Printf("chunks:       %d\n", info.ChunkCount)
	fmt.Printf("solid voxels: %d\n", info.SolidVoxels)

	types := make([]voxel.Type, 0, len(info.TypeCounts))
	for t := range info.TypeCounts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		return info.TypeCounts[types[i]] > info.TypeCounts[types[j]]
	})
	for _, t := range types {
		fmt.Printf("  %-12s %d\n", t, info.TypeCounts[t])
	}
	if len(info.Positions) > 0 {
		minX, minZ := info.Positions[0].X, info.Positions[0].Z
		maxX, maxZ := minX, minZ
		for _, p := range info.Positions[1:] {
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minZ, maxZ = min(minZ, p.Z), max(maxZ, p.Z)
		}
		fmt.Printf("bounds:       (%d,%d) to (%d,%d)\n", minX, minZ, maxX, maxZ)
	}
	return nil
}

func runGenerate(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("need an output file")
	}
	path := c.Args().Get(0)

	w := world.New(gen.New(c.String("generator"), c.Int64("seed")))
	radius := c.Int("radius")
	for x := -radius; x <= radius; x++ {
		for z := -radius; z <= radius; z++ {
			w.LoadChunk(voxel.ChunkPos{X: x, Z: z})
		}
	}

	if err := world.SaveFile(w, path); err != nil {
		return err
	}
	fmt.Printf("wrote %d chunks to %s\n", w.ChunkCount(), path)
	return nil
}

func runCompress(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("need a save file to compress")
	}
	src := c.Args().Get(0)
	if strings.HasSuffix(src, ".gz") {
		return fmt.Errorf("%s is already compressed", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(src + ".gz")
	if err != nil {
		return err
	}
	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		out.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func runDecompress(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("need a save file to decompress")
	}
	src := c.Args().Get(0)
	if !strings.HasSuffix(src, ".gz") {
		return fmt.Errorf("%s does not look compressed", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	gz, err := gzip.NewReader(in)
	if err != nil {
		return err
	}

	out, err := os.Create(strings.TrimSuffix(src, ".gz"))
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, gz); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
