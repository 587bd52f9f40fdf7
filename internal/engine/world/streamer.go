package world

import (
	"container/heap"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/atomic"

	"github.com/freshvoxel/engine/internal/engine/voxel"
)

// loadRequest queues a chunk for loading; priority is the Chebyshev ring
// distance from the player, so closer rings load first.
type loadRequest struct {
	pos      voxel.ChunkPos
	priority int
}

// loadHeap is a min-heap of loadRequests ordered by priority.
type loadHeap []loadRequest

func (h loadHeap) Len() int           { return len(h) }
func (h loadHeap) Less(i, j int) bool { return h[i].priority < h[j].priority }
func (h loadHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *loadHeap) Push(x any)        { *h = append(*h, x.(loadRequest)) }
func (h *loadHeap) Pop() any {
	old := *h
	n := len(old)
	req := old[n-1]
	*h = old[:n-1]
	return req
}

// Streamer loads chunks around the player and unloads distant ones so memory
// stays bounded in an unbounded world.
//
// All chunk materialization happens synchronously on the goroutine calling
// ProcessLoadQueue. The background goroutine only idles today; the queue and
// pending set are mutex-guarded so it can take over generation later without
// changing the contract.
type Streamer struct {
	world *World
	log   *slog.Logger

	viewDistance    int
	maxLoadedChunks int
	chunksPerFrame  int

	mu      sync.Mutex
	queue   loadHeap
	pending map[voxel.ChunkPos]struct{}
	unload  []voxel.ChunkPos

	lastPlayerChunk voxel.ChunkPos
	hasLast         bool

	running *atomic.Bool
	done    chan struct{}
}

// NewStreamer creates a Streamer for the given world and starts its
// background goroutine. Close must be called to stop it.
func NewStreamer(w *World, log *slog.Logger) *Streamer {
	s := &Streamer{
		world:           w,
		log:             log,
		viewDistance:    8,
		maxLoadedChunks: 1000,
		chunksPerFrame:  2,
		pending:         make(map[voxel.ChunkPos]struct{}),
		running:         atomic.NewBool(true),
		done:            make(chan struct{}),
	}
	go s.generationLoop()
	return s
}

// SetViewDistance sets the load radius in chunks, clamped to [1, 64].
func (s *Streamer) SetViewDistance(chunks int) {
	s.viewDistance = min(max(chunks, 1), 64)
}

// ViewDistance returns the load radius in chunks.
func (s *Streamer) ViewDistance() int { return s.viewDistance }

// SetMaxLoadedChunks caps the loaded-chunk count before unloading turns
// more aggressive.
func (s *Streamer) SetMaxLoadedChunks(n int) { s.maxLoadedChunks = n }

// SetChunksPerFrame caps how many chunks ProcessLoadQueue materializes per
// call.
func (s *Streamer) SetChunksPerFrame(n int) { s.chunksPerFrame = max(n, 1) }

// Update recomputes the load and unload sets when the player has crossed a
// chunk boundary since the last call, then processes the load queue. Calls
// within the same chunk only drain the queue.
func (s *Streamer) Update(playerPos mgl32.Vec3) {
	playerChunk := chunkAt(playerPos)
	if !s.hasLast || playerChunk != s.lastPlayerChunk {
		s.lastPlayerChunk = playerChunk
		s.hasLast = true
		s.queueLoads(playerChunk)
		s.queueUnloads(playerChunk)
	}
	s.ProcessLoadQueue()
}

// queueLoads enqueues all unloaded chunks within the view distance, walking
// outward ring by ring so nearby chunks carry higher priority.
func (s *Streamer) queueLoads(playerChunk voxel.ChunkPos) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for radius := 0; radius <= s.viewDistance; radius++ {
		for x := -radius; x <= radius; x++ {
			for z := -radius; z <= radius; z++ {
				if max(abs(x), abs(z)) != radius {
					continue
				}
				pos := voxel.ChunkPos{X: playerChunk.X + x, Z: playerChunk.Z + z}
				if _, loaded := s.world.Chunk(pos); loaded {
					continue
				}
				if _, queued := s.pending[pos]; queued {
					continue
				}
				heap.Push(&s.queue, loadRequest{pos: pos, priority: radius})
				s.pending[pos] = struct{}{}
			}
		}
	}
}

// queueUnloads marks loaded chunks beyond the view distance plus a small
// buffer for unload. Over the loaded-chunk cap the buffer shrinks.
func (s *Streamer) queueUnloads(playerChunk voxel.ChunkPos) {
	unloadDistance := float64(s.viewDistance) + 2
	if s.world.ChunkCount() > s.maxLoadedChunks {
		unloadDistance = float64(s.viewDistance) + 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.unload = s.unload[:0]
	s.world.EachChunk(func(pos voxel.ChunkPos, _ *voxel.Chunk) {
		if chunkDistance(pos, playerChunk) > unloadDistance {
			s.unload = append(s.unload, pos)
		}
	})
}

// ProcessLoadQueue materializes up to chunksPerFrame queued loads through
// World.LoadChunk and then drains the entire unload list. Call once per
// frame.
func (s *Streamer) ProcessLoadQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()

	processed := 0
	for s.queue.Len() > 0 && processed < s.chunksPerFrame {
		req := heap.Pop(&s.queue).(loadRequest)
		delete(s.pending, req.pos)
		s.world.LoadChunk(req.pos)
		processed++
	}

	for _, pos := range s.unload {
		s.world.UnloadChunk(pos)
	}
	s.unload = s.unload[:0]
}

// PendingLoads returns how many chunks are queued for loading.
func (s *Streamer) PendingLoads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// IsChunkLoaded reports whether the chunk at pos is loaded.
func (s *Streamer) IsChunkLoaded(pos voxel.ChunkPos) bool {
	_, ok := s.world.Chunk(pos)
	return ok
}

// LoadedChunkCount returns the world's loaded-chunk count.
func (s *Streamer) LoadedChunkCount() int { return s.world.ChunkCount() }

// Close stops the background goroutine and waits for it to exit. Safe to
// call more than once.
func (s *Streamer) Close() {
	if !s.running.Swap(false) {
		return
	}
	<-s.done
}

// generationLoop is a placeholder for asynchronous chunk pre-generation.
// It idles until Close flips the run flag; world mutation stays on the
// ProcessLoadQueue caller.
func (s *Streamer) generationLoop() {
	defer close(s.done)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for s.running.Load() {
		<-ticker.C
	}
}

func chunkAt(pos mgl32.Vec3) voxel.ChunkPos {
	return voxel.ChunkPosAt(voxel.WorldPos{
		X: int(math.Floor(float64(pos.X()))),
		Z: int(math.Floor(float64(pos.Z()))),
	})
}

func chunkDistance(a, b voxel.ChunkPos) float64 {
	dx := float64(a.X - b.X)
	dz := float64(a.Z - b.Z)
	return math.Sqrt(dx*dx + dz*dz)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
