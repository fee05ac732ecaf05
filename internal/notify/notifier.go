package notify

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Logger provides minimal logging required by the notifier.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Notifier fans out an opaque "this list changed" signal after every
// successful mutation. The signal carries the slug and nothing else;
// subscribers always re-fetch the projection, so a duplicate or lost signal
// can only delay convergence, never corrupt it.
type Notifier interface {
	WishlistChanged(ctx context.Context, slug string)
}

// RedisNotifier publishes change signals through Redis pub/sub so that
// viewers connected to one process still learn about writes committed by
// another.
type RedisNotifier struct {
	RDB     *redis.Client
	Channel string
	Logger  Logger
}

func NewRedisNotifier(rdb *redis.Client, logger Logger) *RedisNotifier {
	return &RedisNotifier{RDB: rdb, Channel: "wishlist_changes", Logger: logger}
}

func (n *RedisNotifier) WishlistChanged(ctx context.Context, slug string) {
	if err := n.RDB.Publish(ctx, n.Channel, slug).Err(); err != nil && n.Logger != nil {
		n.Logger.Errorf("notify publish slug=%s: %v", slug, err)
	}
}

// Listen subscribes to the change channel and returns a stream of slugs.
// The stream closes when ctx is canceled.
func (n *RedisNotifier) Listen(ctx context.Context) <-chan string {
	out := make(chan string, 16)
	pubsub := n.RDB.Subscribe(ctx, n.Channel)
	go func() {
		defer close(out)
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				default:
					// slow consumer; dropping is safe, the next signal
					// triggers the same full re-fetch
				}
			}
		}
	}()
	return out
}

// LocalNotifier is an in-process notifier used when Redis is not configured
// and in tests. Delivery is best-effort, same as the Redis path.
type LocalNotifier struct {
	mu   sync.Mutex
	subs []chan string
}

func NewLocalNotifier() *LocalNotifier {
	return &LocalNotifier{}
}

func (n *LocalNotifier) WishlistChanged(_ context.Context, slug string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, sub := range n.subs {
		select {
		case sub <- slug:
		default:
		}
	}
}

// Listen registers a subscriber stream, closed when ctx is canceled.
func (n *LocalNotifier) Listen(ctx context.Context) <-chan string {
	sub := make(chan string, 16)
	n.mu.Lock()
	n.subs = append(n.subs, sub)
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.mu.Lock()
		for i, s := range n.subs {
			if s == sub {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				break
			}
		}
		n.mu.Unlock()
		close(sub)
	}()
	return sub
}
