// internal/watcher/poller.go
package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"maps"
	"sync"
	"time"

	"github.com/jackchuka/reponest/internal/model"
	"github.com/jackchuka/reponest/internal/status"
)

// pollConcurrency bounds how many repositories are re-read per cycle at
// once.
const pollConcurrency = 4

// Poller monitors repositories by re-reading their state on an interval
// instead of using fsnotify. A change is detected by comparing a
// fingerprint of the extracted state against the last one seen.
type Poller struct {
	reader   status.Reader
	interval time.Duration
	events   chan Event
	repos    map[string]string // path -> fingerprint of last state
	mu       sync.RWMutex
}

// Event reports that a watched repository's state changed. Info is the
// freshly extracted state, so receivers do not need a second read.
type Event struct {
	RepoPath string
	Time     time.Time
	Info     model.Info
}

func NewPoller(reader status.Reader, interval time.Duration) *Poller {
	if interval < time.Second {
		interval = time.Second
	}
	return &Poller{
		reader:   reader,
		interval: interval,
		events:   make(chan Event, 100),
		repos:    make(map[string]string),
	}
}

func (p *Poller) Events() <-chan Event {
	return p.events
}

func (p *Poller) Watch(repoPath string) error {
	p.mu.RLock()
	_, exists := p.repos[repoPath]
	p.mu.RUnlock()

	if exists {
		return nil
	}

	// Prime the fingerprint outside the lock (reads the repository)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	fp := fingerprint(p.reader.Read(ctx, repoPath))

	p.mu.Lock()
	// Double-check after acquiring write lock
	if _, exists := p.repos[repoPath]; !exists {
		p.repos[repoPath] = fp
	}
	p.mu.Unlock()
	return nil
}

func (p *Poller) Unwatch(repoPath string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.repos, repoPath)
}

func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	// Snapshot current repos and fingerprints under the lock
	p.mu.RLock()
	snapshot := make(map[string]string, len(p.repos))
	maps.Copy(snapshot, p.repos)
	p.mu.RUnlock()

	type change struct {
		path     string
		newPrint string
		info     model.Info
	}

	var (
		changes []change
		mu      sync.Mutex
		wg      sync.WaitGroup
	)

	sem := make(chan struct{}, pollConcurrency)

	for repoPath, lastPrint := range snapshot {
		wg.Add(1)
		go func(path, last string) {
			defer wg.Done()

			// Respect context cancellation while waiting for semaphore
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			readCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			info := p.reader.Read(readCtx, path)
			current := fingerprint(info)
			if current == "" {
				return // read failed, skip to avoid phantom changes
			}
			if current != last {
				mu.Lock()
				changes = append(changes, change{path: path, newPrint: current, info: info})
				mu.Unlock()
			}
		}(repoPath, lastPrint)
	}

	wg.Wait()

	if len(changes) == 0 {
		return
	}

	// Emit events, only updating fingerprints for successfully sent
	// events. If the channel is full, the old fingerprint is kept so the
	// change is re-detected on the next poll cycle.
	p.mu.Lock()
	for _, c := range changes {
		select {
		case p.events <- Event{RepoPath: c.path, Time: time.Now(), Info: c.info}:
			if _, ok := p.repos[c.path]; ok {
				p.repos[c.path] = c.newPrint
			}
		default:
			// Channel full, keep old fingerprint so change is re-detected next cycle
		}
	}

	p.mu.Unlock()
}

// fingerprint reduces an extracted state to a comparable string. Failed
// reads get an empty fingerprint so they never register as changes.
func fingerprint(info model.Info) string {
	if info.Err != nil {
		return ""
	}
	data, err := json.Marshal(info)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (p *Poller) Close() error {
	close(p.events)
	return nil
}
