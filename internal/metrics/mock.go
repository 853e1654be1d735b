package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	seeks            map[string]int
	bookmarksAdded   map[string]int
	bookmarksRemoved int
	autoplayStarts   int
	storageFailures  map[string]int
	notifSent        int
	notifFailed      int
	reportsExported  map[string]int
	seekPosition     float64
	bookmarkCount    int
	liveFieldTime    float64
	startupTime      float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		seeks:           make(map[string]int),
		bookmarksAdded:  make(map[string]int),
		storageFailures: make(map[string]int),
		reportsExported: make(map[string]int),
	}
}

func (m *Mock) IncSeeks(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seeks[source]++
}

func (m *Mock) IncBookmarksAdded(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookmarksAdded[kind]++
}

func (m *Mock) IncBookmarksRemoved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookmarksRemoved++
}

func (m *Mock) IncAutoplayStarts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoplayStarts++
}

func (m *Mock) IncStorageFailures(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storageFailures[op]++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) IncReportsExported(format string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reportsExported[format]++
}

func (m *Mock) SetSeekPosition(fieldSeconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekPosition = fieldSeconds
}

func (m *Mock) SetBookmarkCount(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookmarkCount = count
}

func (m *Mock) SetLiveFieldTime(fieldSeconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.liveFieldTime = fieldSeconds
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Seeks returns how many seeks were recorded for the given source.
func (m *Mock) Seeks(source string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seeks[source]
}

// BookmarksAdded returns how many bookmarks of the given type were recorded.
func (m *Mock) BookmarksAdded(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookmarksAdded[kind]
}

// BookmarksRemoved returns the number of times IncBookmarksRemoved was called.
func (m *Mock) BookmarksRemoved() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookmarksRemoved
}

// AutoplayStarts returns the number of times IncAutoplayStarts was called.
func (m *Mock) AutoplayStarts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.autoplayStarts
}

// StorageFailures returns the number of failures recorded for op.
func (m *Mock) StorageFailures(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storageFailures[op]
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}

// ReportsExported returns how many reports were exported in the given format.
func (m *Mock) ReportsExported(format string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reportsExported[format]
}

// SeekPosition returns the last value passed to SetSeekPosition.
func (m *Mock) SeekPosition() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seekPosition
}

// BookmarkCount returns the last value passed to SetBookmarkCount.
func (m *Mock) BookmarkCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookmarkCount
}

// LiveFieldTime returns the last value passed to SetLiveFieldTime.
func (m *Mock) LiveFieldTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.liveFieldTime
}
