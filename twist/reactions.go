package twist

import (
	"context"

	"github.com/kbukum/twistkit/request"
	"github.com/kbukum/twistkit/validation"
)

// Reactions adds, removes and lists emoji reactions.
type Reactions struct {
	s request.Session
}

// ReactionTarget names the object a reaction belongs to. Exactly one field
// must be set.
type ReactionTarget struct {
	ThreadID  int64
	CommentID int64
	MessageID int64
}

func (r ReactionTarget) params(v *validation.Validator) request.Params {
	p := request.Params{}
	p.SetIf(r.ThreadID != 0, "threadId", r.ThreadID)
	p.SetIf(r.CommentID != 0, "commentId", r.CommentID)
	p.SetIf(r.MessageID != 0, "messageId", r.MessageID)
	v.Custom(len(p) == 1, "target", "exactly one of threadId, commentId or messageId is required")
	return p
}

// DescribeAdd describes Add without sending it.
func (r *Reactions) DescribeAdd(target ReactionTarget, reaction string) request.Descriptor[any] {
	v := validation.New().Required("reaction", reaction)
	params := target.params(v).Set("reaction", reaction)
	return describeAck(v3+"reactions/add", params, v)
}

// Add reacts to the target with an emoji.
func (r *Reactions) Add(ctx context.Context, target ReactionTarget, reaction string) error {
	return ack(ctx, r.s, r.DescribeAdd(target, reaction))
}

// DescribeRemove describes Remove without sending it.
func (r *Reactions) DescribeRemove(target ReactionTarget, reaction string) request.Descriptor[any] {
	v := validation.New().Required("reaction", reaction)
	params := target.params(v).Set("reaction", reaction)
	return describeAck(v3+"reactions/remove", params, v)
}

// Remove withdraws the session user's reaction from the target.
func (r *Reactions) Remove(ctx context.Context, target ReactionTarget, reaction string) error {
	return ack(ctx, r.s, r.DescribeRemove(target, reaction))
}

// DescribeGet describes Get without sending it.
func (r *Reactions) DescribeGet(target ReactionTarget) request.Descriptor[ReactionSet] {
	v := validation.New()
	return get[ReactionSet](v3+"reactions/get", target.params(v), v)
}

// Get lists the reactions on the target.
func (r *Reactions) Get(ctx context.Context, target ReactionTarget) (ReactionSet, error) {
	return request.Do(ctx, r.s, r.DescribeGet(target))
}
