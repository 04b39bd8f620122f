package notifications

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/shared"
)

var mentionPattern = regexp.MustCompile(`@(\w+)`)

const (
	TitleMention = "You were mentioned"
	TitleThread  = "New comment in thread"
)

// CommentEvent describes a comment that was just added to a node.
type CommentEvent struct {
	NodeID        string
	Comment       canvas.Comment
	Prior         []canvas.Comment
	CurrentUserID string
}

// CommentNotifier derives mention and thread notifications from comments.
type CommentNotifier struct {
	users  UserDirectory
	sink   Notifier
	ids    shared.IDGenerator
	now    func() time.Time
	logger *zap.Logger
}

func NewCommentNotifier(users UserDirectory, sink Notifier, ids shared.IDGenerator, logger *zap.Logger) *CommentNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentNotifier{users: users, sink: sink, ids: ids, now: time.Now, logger: logger}
}

// WithClock replaces the timestamp source.
func (c *CommentNotifier) WithClock(now func() time.Time) *CommentNotifier {
	c.now = now
	return c
}

// OnComment emits one mention notification per distinct resolvable user
// mentioned in the text, then one thread notification per earlier participant
// other than the author and the current user. It returns what was emitted.
func (c *CommentNotifier) OnComment(ctx context.Context, ev CommentEvent) ([]Notification, error) {
	out := append(c.mentions(ev), c.thread(ev)...)
	for _, n := range out {
		if err := c.sink.Notify(ctx, n); err != nil {
			return out, err
		}
	}
	if len(out) > 0 {
		c.logger.Debug("comment notifications emitted",
			zap.String("node_id", ev.NodeID),
			zap.Int("count", len(out)),
		)
	}
	return out, nil
}

// Mentions returns the users referenced by @tokens in text, in order of first
// appearance.
func Mentions(text string, users UserDirectory) []User {
	seen := make(map[string]bool)
	var out []User
	for _, m := range mentionPattern.FindAllStringSubmatch(text, -1) {
		u, ok := users.Resolve(m[1])
		if !ok || seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		out = append(out, u)
	}
	return out
}

func (c *CommentNotifier) mentions(ev CommentEvent) []Notification {
	var out []Notification
	for _, u := range Mentions(ev.Comment.Text, c.users) {
		out = append(out, Notification{
			ID:          c.ids.NewID("n-mention"),
			Kind:        KindContributor,
			Title:       TitleMention,
			Message:     fmt.Sprintf("%s mentioned you in a comment: %q", ev.Comment.AuthorName, ev.Comment.Text),
			Timestamp:   c.now(),
			RecipientID: u.ID,
		})
	}
	return out
}

func (c *CommentNotifier) thread(ev CommentEvent) []Notification {
	seen := make(map[string]bool)
	var out []Notification
	for _, prior := range ev.Prior {
		uid := prior.AuthorID
		if uid == "" || uid == ev.Comment.AuthorID || uid == ev.CurrentUserID || seen[uid] {
			continue
		}
		seen[uid] = true
		out = append(out, Notification{
			ID:          c.ids.NewID("n-thread"),
			Kind:        KindContributor,
			Title:       TitleThread,
			Message:     fmt.Sprintf("%s commented on a discussion you're part of: %q", ev.Comment.AuthorName, ev.NodeID),
			Timestamp:   c.now(),
			RecipientID: uid,
		})
	}
	return out
}
