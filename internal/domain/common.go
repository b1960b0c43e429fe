package domain

import (
	"context"
	"errors"
	"sync"

	"github.com/guildkit/backend/internal/domain/notification/event"
	"github.com/guildkit/backend/internal/repository"
	"github.com/guildkit/backend/pkg/errorx"
	"github.com/guildkit/backend/pkg/pubsub"
	"github.com/guildkit/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"
)

// maxApplyAttempts bounds how many times one apply re-reads and recomputes
// after losing a version race before giving up.
const maxApplyAttempts = 3

// errNoChange is returned by a transition step to report that the entity is
// already in the requested terminal state. The apply helper treats it as a
// no-op success and skips the write, which makes duplicate expire triggers
// harmless.
var errNoChange = errors.New("no change")

// entityLocks serializes same-entity applies inside one process so that
// self-contention does not burn version-conflict retries. The version
// condition on the write remains the actual invariant enforcer; these locks
// do nothing for other processes.
type entityLocks struct {
	mutexes *xsync.MapOf[string, *sync.Mutex]
}

func newEntityLocks() *entityLocks {
	return &entityLocks{mutexes: xsync.NewMapOf[*sync.Mutex]()}
}

func (l *entityLocks) lock(id string) func() {
	m, _ := l.mutexes.LoadOrCompute(id, func() *sync.Mutex { return &sync.Mutex{} })
	m.Lock()
	return m.Unlock
}

type lifecycleEntity interface {
	EntityVersion() int64
	BumpVersion()
}

// applyWithRetry runs one optimistic-concurrency apply: load the record,
// run the transition step on it, and persist conditioned on the loaded
// version. Losing the version race re-reads and recomputes from scratch, up
// to maxApplyAttempts. The step's events are returned only after a
// successful write, never speculatively.
func applyWithRetry[T any, PT interface {
	*T
	lifecycleEntity
}](
	ctx context.Context,
	locks *entityLocks,
	kind, id string,
	get func(context.Context, string) (*T, error),
	update func(context.Context, *T, int64) error,
	step func(PT) ([]event.Event, error),
) (*T, []event.Event, error) {
	unlock := locks.lock(id)
	defer unlock()

	for attempt := 0; attempt < maxApplyAttempts; attempt++ {
		record, err := get(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, errorx.New(errorx.NotFound, "Not found %s", kind)
			}

			xcontext.Logger(ctx).Errorf("Cannot get %s %s: %v", kind, id, err)
			return nil, nil, errorx.Unknown
		}

		base := PT(record).EntityVersion()
		events, err := step(PT(record))
		if err != nil {
			if errors.Is(err, errNoChange) {
				return record, nil, nil
			}

			return nil, nil, err
		}

		PT(record).BumpVersion()
		err = update(ctx, record, base)
		if err == nil {
			return record, events, nil
		}

		if errors.Is(err, repository.ErrVersionConflict) {
			xcontext.Logger(ctx).Debugf("Version conflict on %s %s (attempt %d)", kind, id, attempt+1)
			continue
		}

		xcontext.Logger(ctx).Errorf("Cannot update %s %s: %v", kind, id, err)
		return nil, nil, errorx.Unknown
	}

	return nil, nil, errorx.New(errorx.Contention, "Too many concurrent updates, please retry")
}

// eventEmitter publishes lifecycle events to the notification sink. Emission
// is fire and forget: a publish failure is logged, never surfaced to the
// caller whose state change already persisted.
type eventEmitter struct {
	publisher pubsub.Publisher
}

func (e *eventEmitter) emit(ctx context.Context, guildID int64, events ...event.Event) {
	if e.publisher == nil {
		return
	}

	for _, ev := range events {
		pack, err := event.New(ev, event.Metadata{GuildID: guildID}).Pack()
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal %s event: %v", ev.Op(), err)
			continue
		}

		topic := xcontext.Configs(ctx).Kafka.EventTopic
		if err := e.publisher.Publish(ctx, topic, pack); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot publish %s event: %v", ev.Op(), err)
		}
	}
}

// isSystemActor reports whether this apply originates from the scheduler
// rather than a user. Scheduler-driven transitions bypass actor permission
// guards.
func isSystemActor(ctx context.Context) bool {
	return xcontext.RequestUserID(ctx) == 0
}
