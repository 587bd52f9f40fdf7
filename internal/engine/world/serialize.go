package world

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/freshvoxel/engine/internal/engine/voxel"
)

// World save format: 4-byte magic "FVEW", uint32 version, uint32 chunk
// count, then per chunk int32 X, int32 Z followed by ChunkHeight×ChunkSize×
// ChunkSize records of (type byte, light byte) in y,z,x order. All integers
// little-endian. Files ending in .gz wrap the identical stream in gzip.
const (
	saveMagic   = "FVEW"
	saveVersion = 1

	chunkRecordBytes = voxel.ChunkVolume * 2
)

// Save writes every loaded chunk to w in the FVEW format. Chunks are written
// in sorted position order so identical worlds serialize identically.
func Save(world *World, w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(saveMagic); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}

	positions := make([]voxel.ChunkPos, 0, world.ChunkCount())
	world.EachChunk(func(pos voxel.ChunkPos, _ *voxel.Chunk) {
		positions = append(positions, pos)
	})
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].X != positions[j].X {
			return positions[i].X < positions[j].X
		}
		return positions[i].Z < positions[j].Z
	})

	header := []uint32{saveVersion, uint32(len(positions))}
	if err := binary.Write(bw, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]byte, chunkRecordBytes)
	for _, pos := range positions {
		chunk, ok := world.Chunk(pos)
		if !ok {
			continue
		}
		if err := binary.Write(bw, binary.LittleEndian, [2]int32{int32(pos.X), int32(pos.Z)}); err != nil {
			return fmt.Errorf("write chunk position: %w", err)
		}
		encodeChunk(chunk, record)
		if _, err := bw.Write(record); err != nil {
			return fmt.Errorf("write chunk %v: %w", pos, err)
		}
	}
	return bw.Flush()
}

// Load reads a FVEW stream into the world, replacing any chunks at the
// recorded positions and regenerating their meshes.
func Load(world *World, r io.Reader) error {
	br := bufio.NewReader(r)

	magic := make([]byte, 4)
	if _, err := io.ReadFull(br, magic); err != nil {
		return fmt.Errorf("read magic: %w", err)
	}
	if string(magic) != saveMagic {
		return fmt.Errorf("bad magic %q, want %q", magic, saveMagic)
	}

	var header [2]uint32
	if err := binary.Read(br, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if header[0] != saveVersion {
		return fmt.Errorf("unsupported world version %d", header[0])
	}

	record := make([]byte, chunkRecordBytes)
	for i := uint32(0); i < header[1]; i++ {
		var rawPos [2]int32
		if err := binary.Read(br, binary.LittleEndian, &rawPos); err != nil {
			return fmt.Errorf("read chunk position: %w", err)
		}
		if _, err := io.ReadFull(br, record); err != nil {
			return fmt.Errorf("read chunk voxels: %w", err)
		}

		pos := voxel.ChunkPos{X: int(rawPos[0]), Z: int(rawPos[1])}
		chunk := voxel.NewChunk(pos)
		decodeChunk(chunk, record)
		chunk.GenerateMeshWithNeighbors(world)

		world.mu.Lock()
		world.chunks[pos] = chunk
		world.mu.Unlock()
	}
	return nil
}

func encodeChunk(c *voxel.Chunk, record []byte) {
	i := 0
	for y := 0; y < voxel.ChunkHeight; y++ {
		for z := 0; z < voxel.ChunkSize; z++ {
			for x := 0; x < voxel.ChunkSize; x++ {
				v := c.At(x, y, z)
				record[i] = byte(v.Type)
				record[i+1] = v.Light
				i += 2
			}
		}
	}
}

func decodeChunk(c *voxel.Chunk, record []byte) {
	i := 0
	for y := 0; y < voxel.ChunkHeight; y++ {
		for z := 0; z < voxel.ChunkSize; z++ {
			for x := 0; x < voxel.ChunkSize; x++ {
				c.Set(x, y, z, voxel.Voxel{Type: voxel.Type(record[i]), Light: record[i+1]})
				i += 2
			}
		}
	}
}

// SaveFile writes the world to path, gzip-compressing when the name ends
// in .gz.
func SaveFile(world *World, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create save file: %w", err)
	}

	var w io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(f)
		w = gz
	}
	if err := Save(world, w); err != nil {
		f.Close()
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			f.Close()
			return fmt.Errorf("close gzip stream: %w", err)
		}
	}
	return f.Close()
}

// LoadFile reads a world save from path, transparently decompressing .gz
// files.
func LoadFile(world *World, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open save file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return Load(world, r)
}

// SaveInfo summarizes a world save without materializing chunks.
type SaveInfo struct {
	Version     uint32
	ChunkCount  uint32
	Positions   []voxel.ChunkPos
	SolidVoxels uint64
	TypeCounts  map[voxel.Type]uint64
}

// ReadInfo scans a FVEW stream and reports its header and per-chunk
// positions plus the total solid voxel count.
func ReadInfo(r io.Reader) (*SaveInfo, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, 4)
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if string(magic) != saveMagic {
		return nil, fmt.Errorf("bad magic %q, want %q", magic, saveMagic)
	}

	var header [2]uint32
	if err := binary.Read(br, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	info := &SaveInfo{
		Version:    header[0],
		ChunkCount: header[1],
		TypeCounts: make(map[voxel.Type]uint64),
	}

	record := make([]byte, chunkRecordBytes)
	for i := uint32(0); i < info.ChunkCount; i++ {
		var rawPos [2]int32
		if err := binary.Read(br, binary.LittleEndian, &rawPos); err != nil {
			return nil, fmt.Errorf("read chunk position: %w", err)
		}
		if _, err := io.ReadFull(br, record); err != nil {
			return nil, fmt.Errorf("read chunk voxels: %w", err)
		}
		info.Positions = append(info.Positions, voxel.ChunkPos{X: int(rawPos[0]), Z: int(rawPos[1])})
		for j := 0; j < len(record); j += 2 {
			if t := voxel.Type(record[j]); t != voxel.Air {
				info.SolidVoxels++
				info.TypeCounts[t]++
			}
		}
	}
	return info, nil
}
