package feed

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aidmqan/mqan-console/internal/models"
)

// Pools the synthetic events draw from.
var (
	Hospitals     = []string{"Metro General", "Central Medical", "University Medical", "Regional Health", "Community Hospital"}
	Actions       = []string{"Test Started", "Test Completed", "Sample Received", "Analysis Running", "Quality Check"}
	BatchPrefixes = []string{"MG", "CM", "UM", "RH", "CH"}
	Statuses      = []string{"success", "warning", "info"}
)

const (
	nodeCount = 12
	maxBatch  = 999
)

// Generator synthesizes monitor activity. With a fixed seed the sequence of
// events, including their IDs, is reproducible.
type Generator struct {
	mu  sync.Mutex
	src *rand.ChaCha8
	rng *rand.Rand
	seq uint64
	now func() time.Time
}

// NewGenerator creates a generator. A zero seed derives one from the clock.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	src := rand.NewChaCha8(key)
	return &Generator{
		src: src,
		rng: rand.New(src),
		now: time.Now,
	}
}

// Next returns a new event with the next sequence number.
func (g *Generator) Next() models.Activity {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		id = uuid.New()
	}
	return models.Activity{
		ID:        id.String(),
		Seq:       g.seq,
		Hospital:  pick(g.rng, Hospitals),
		Node:      fmt.Sprintf("Node %d", g.rng.IntN(nodeCount)+1),
		Action:    pick(g.rng, Actions),
		Batch:     fmt.Sprintf("%s-2024-%03d", pick(g.rng, BatchPrefixes), g.rng.IntN(maxBatch)+1),
		Timestamp: g.now(),
		Status:    pick(g.rng, Statuses),
	}
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.IntN(len(pool))]
}
