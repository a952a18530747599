// Package batch coalesces several API calls into one physical request to
// the batch endpoint and routes each reply item back to its caller.
//
// Calls are added in order with Add, which returns a Pending handle. Execute
// sends them all at once; afterwards every handle holds either its decoded
// value or its own error. One item failing never affects its siblings.
//
//	b := batch.New(session)
//	ch := batch.Add(b, client.Channels.DescribeGetChannel(1))
//	th := batch.Add(b, client.Threads.DescribeGetThreads(1, nil))
//	if _, err := b.Execute(ctx); err != nil {
//		return err
//	}
//	channel, err := ch.Result()
//
// Reply items are matched to calls by position. The endpoint guarantees that
// order; a reply with the wrong number of items fails the whole batch.
package batch
