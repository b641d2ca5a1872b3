// Package roster reads the externally maintained student roster. Entries are
// pre-seeded by the hostel administration; this service never writes them.
package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound reports that no roster entry exists for a roll number.
var ErrNotFound = errors.New("roster: entry not found")

// Entry holds the pre-verified identity fields for one roll number.
type Entry struct {
	FullName string
	Gender   string
}

// Roster looks up pre-registered students by roll number.
type Roster interface {
	Lookup(ctx context.Context, rollNo string) (Entry, error)
}

// RedisRoster reads entries stored as JSON under student:<roll_no> keys.
type RedisRoster struct {
	rdb *redis.Client
}

func NewRedisRoster(rdb *redis.Client) *RedisRoster {
	return &RedisRoster{rdb: rdb}
}

func (r *RedisRoster) Lookup(ctx context.Context, rollNo string) (Entry, error) {
	key := fmt.Sprintf("student:%s", rollNo)
	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return ParseEntry([]byte(raw))
}

// ParseEntry decodes a roster document. The seeding process has stored the
// name under either "full_name" or "name" over time; both are accepted.
func ParseEntry(raw []byte) (Entry, error) {
	var doc struct {
		Name     string `json:"name"`
		FullName string `json:"full_name"`
		Gender   string `json:"gender"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Entry{}, err
	}
	name := doc.FullName
	if name == "" {
		name = doc.Name
	}
	return Entry{FullName: name, Gender: doc.Gender}, nil
}
