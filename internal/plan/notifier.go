package plan

import "sync"

const (
	defaultSubscriberCapacity = 64
	defaultBacklogLimit       = 32
)

// ChangeKind names the mutation a Change describes.
type ChangeKind string

const (
	ChangeItemAdded    ChangeKind = "item_added"
	ChangeItemUpdated  ChangeKind = "item_updated"
	ChangeItemRemoved  ChangeKind = "item_removed"
	ChangeDayReordered ChangeKind = "day_reordered"
	ChangeThemeSet     ChangeKind = "theme_set"
	ChangeCatalogSet   ChangeKind = "catalog_set"
	ChangePlanCleared  ChangeKind = "plan_cleared"
	ChangePlanReplaced ChangeKind = "plan_replaced"
)

// Change is one store mutation notification. Day and ItemID are set when the
// mutation targets a specific day or item.
type Change struct {
	Kind   ChangeKind
	Day    Day
	ItemID string
}

// Subscription is an active change feed.
type Subscription struct {
	Changes <-chan Change
	cancel  func()
}

// Close terminates the subscription.
func (s Subscription) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// notifyLogger records dropped-notification diagnostics. It matches the
// Printf signature shared by the logging adapters.
type notifyLogger interface {
	Printf(format string, args ...any)
}

// notifier fans store changes out to UI subscribers over bounded channels.
// Changes published before the first subscriber attaches are buffered so a
// late-mounting surface still sees them.
type notifier struct {
	mu           sync.RWMutex
	subscribers  map[*subscriber]struct{}
	backlog      []Change
	channelSize  int
	backlogLimit int
	logger       notifyLogger
}

func newNotifier(logger notifyLogger) *notifier {
	return &notifier{
		subscribers:  map[*subscriber]struct{}{},
		channelSize:  defaultSubscriberCapacity,
		backlogLimit: defaultBacklogLimit,
		logger:       logger,
	}
}

// subscribe registers a change feed and flushes any backlog into it.
func (n *notifier) subscribe() Subscription {
	sub := newSubscriber(n.channelSize, n.logger)
	var backlog []Change
	n.mu.Lock()
	n.subscribers[sub] = struct{}{}
	if len(n.backlog) > 0 {
		backlog = append(backlog, n.backlog...)
		n.backlog = nil
	}
	n.mu.Unlock()
	for _, change := range backlog {
		sub.deliver(change)
	}
	return Subscription{
		Changes: sub.channel(),
		cancel: func() {
			n.removeSubscriber(sub)
		},
	}
}

// publish delivers the change to every subscriber, or buffers it when none
// are attached yet.
func (n *notifier) publish(change Change) {
	n.mu.RLock()
	subs := make([]*subscriber, 0, len(n.subscribers))
	for sub := range n.subscribers {
		subs = append(subs, sub)
	}
	n.mu.RUnlock()
	if len(subs) == 0 {
		n.bufferChange(change)
		return
	}
	for _, sub := range subs {
		sub.deliver(change)
	}
}

func (n *notifier) bufferChange(change Change) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.backlog) >= n.backlogLimit {
		n.backlog = n.backlog[1:]
		if n.logger != nil {
			n.logger.Printf("plan: change backlog drop (limit %d)", n.backlogLimit)
		}
	}
	n.backlog = append(n.backlog, change)
}

func (n *notifier) removeSubscriber(sub *subscriber) {
	n.mu.Lock()
	delete(n.subscribers, sub)
	n.mu.Unlock()
	sub.close()
}

type subscriber struct {
	ch      chan Change
	logger  notifyLogger
	closed  bool
	closeMu sync.Mutex
}

func newSubscriber(capacity int, logger notifyLogger) *subscriber {
	if capacity <= 0 {
		capacity = defaultSubscriberCapacity
	}
	return &subscriber{
		ch:     make(chan Change, capacity),
		logger: logger,
	}
}

func (s *subscriber) channel() <-chan Change {
	return s.ch
}

// deliver enqueues the change, dropping the oldest queued change when the
// subscriber is full. A slow surface misses intermediate states, never the
// latest one.
func (s *subscriber) deliver(change Change) {
	if s.isClosed() {
		return
	}
	select {
	case s.ch <- change:
	default:
		oldest := <-s.ch
		s.ch <- change
		if s.logger != nil {
			s.logger.Printf("plan: dropped %s notification (queue overflow)", oldest.Kind)
		}
	}
}

func (s *subscriber) close() {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

func (s *subscriber) isClosed() bool {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	return s.closed
}
