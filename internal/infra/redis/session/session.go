package infra_session_cache

import (
	"time"

	"github.com/go-redis/redis"

	"github.com/MachariaP/RiffTrax-v2/internal/model"
)

// Driver remembers which room a session joined. The binding expires on
// its own so abandoned sessions don't pile up.
type Driver struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func New(client *redis.Client, key string, ttl time.Duration) *Driver {
	return &Driver{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (d *Driver) Bind(userID model.UserID, code string) error {
	fullKey := d.getFullKey(string(userID))
	err := d.client.Set(fullKey, code, d.ttl).Err()
	if err != nil {
		return err
	}

	return nil
}

// BoundRoom returns the joined room code, empty string when none.
func (d *Driver) BoundRoom(userID model.UserID) (string, error) {
	fullKey := d.getFullKey(string(userID))

	val, err := d.client.Get(fullKey).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}

	return val, nil
}

func (d *Driver) Unbind(userID model.UserID) error {
	fullKey := d.getFullKey(string(userID))
	return d.client.Del(fullKey).Err()
}

func (d *Driver) getFullKey(key string) string {
	if d.key != "" {
		return d.key + ":" + key
	}
	return key
}
