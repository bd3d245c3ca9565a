package client

import (
	"context"

	"github.com/htz-portal/portal-api/querycache"
)

// The synchronization contract: a role mutation affects the role list, the
// role stats and the role badges on the user list; a user mutation affects
// the user list and the per-role user counts. Mutations invalidate the
// dependent queries and kick a background refetch — the caller is never
// blocked on convergence.

func (c *Client) syncAfterRoleMutation() {
	c.cache.Invalidate(KeyRoleList)
	c.cache.Invalidate(KeyRoleStats)
	go c.refetch(KeyRoleList, func(ctx context.Context) (interface{}, error) {
		return c.Roles().fetchList(ctx)
	})
	go c.refetch(KeyRoleStats, func(ctx context.Context) (interface{}, error) {
		return c.Roles().fetchStats(ctx)
	})
}

func (c *Client) syncAfterUserMutation() {
	c.cache.Invalidate(KeyUserList)
	c.cache.Invalidate(KeyRoleStats)
	go c.refetch(KeyUserList, func(ctx context.Context) (interface{}, error) {
		return c.Users().fetchList(ctx)
	})
	go c.refetch(KeyRoleStats, func(ctx context.Context) (interface{}, error) {
		return c.Roles().fetchStats(ctx)
	})
}

// refetch drives one stale -> refetching -> fresh cycle. BeginRefetch
// coalesces concurrent attempts on the same key.
func (c *Client) refetch(key querycache.Key, fetch func(context.Context) (interface{}, error)) {
	if !c.cache.BeginRefetch(key) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()
	value, err := fetch(ctx)
	if err != nil {
		c.cache.Abort(key)
		return
	}
	c.cache.Complete(key, value)
}
