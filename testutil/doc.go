// Package testutil provides a fake Twist API for tests.
//
// FakeAPI is a gin engine behind an httptest.Server. Tests register JSON
// routes on it, point a client at URL(), and inspect what was received:
//
//	api := testutil.NewFakeAPI(t)
//	api.JSON(http.MethodGet, "/v3/channels/getone", http.StatusOK, gin.H{"id": 1, "name": "general"})
//	client := twist.New(api.Config())
//
// The batch endpoints (/v3/batch and /v4/batch) are real: each item is
// dispatched through the same router and its reply packed into the batch
// result, so batched and direct calls hit the same handlers.
package testutil
