package storage

// Prefix namespaces every key written by the match clock.
const Prefix = "ftt_"

// Key is a semantic storage key without the namespace prefix.
type Key string

const (
	KeyFirstHalfHour    Key = "t1h"
	KeyFirstHalfMinute  Key = "t1m"
	KeySecondHalfHour   Key = "t2h"
	KeySecondHalfMinute Key = "t2m"
	KeySeekPosition     Key = "seek_position"
	KeyTeamAName        Key = "team_a"
	KeyTeamBName        Key = "team_b"
	KeyTeamAColor       Key = "color_a"
	KeyTeamBColor       Key = "color_b"
	KeyFirstHalfEnd     Key = "first_half_end"
	KeySecondHalfEnd    Key = "second_half_end"
	KeyBookmarks        Key = "bookmarks"
)

// Backend selects the KeyValueStore implementation.
type Backend string

const (
	BackendSQL    Backend = "sql"
	BackendBolt   Backend = "bolt"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

// Namespaced returns the key as it is written to the backend.
func (k Key) Namespaced() string {
	return Prefix + string(k)
}

// AllKeys lists every key the match clock persists.
func AllKeys() []Key {
	return []Key{
		KeyFirstHalfHour, KeyFirstHalfMinute, KeySecondHalfHour, KeySecondHalfMinute,
		KeySeekPosition, KeyTeamAName, KeyTeamBName, KeyTeamAColor, KeyTeamBColor,
		KeyFirstHalfEnd, KeySecondHalfEnd, KeyBookmarks,
	}
}
