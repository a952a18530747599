// Package twist is the entry point of the SDK: a Client configured from
// config.Client, exposing one resource client per API area.
//
// Every resource operation comes in two forms. X(ctx, ...) performs the
// call now and returns the decoded value. DescribeX(...) only describes the
// call, for use with a batch:
//
//	c, err := twist.New(cfg)
//	channels, err := c.Channels.GetChannels(ctx, workspaceID, nil)
//
//	b := c.NewBatch()
//	general := batch.Add(b, c.Channels.DescribeGetChannel(1))
//	random := batch.Add(b, c.Channels.DescribeGetChannel(2))
//	_, err = b.Execute(ctx)
//
// Argument errors found while describing a call are reported when it runs,
// as a KindUsage error.
package twist
