package discord

import "sync"

// channelCache memoizes channel name to ID lookups per guild, so update
// fan-out doesn't hit the guild channel listing on every send. Entries
// are dropped when a send through them fails.
type channelCache struct {
	mu     sync.RWMutex
	guilds map[string]map[string]string
}

func newChannelCache() *channelCache {
	return &channelCache{
		guilds: make(map[string]map[string]string),
	}
}

func (c *channelCache) Get(guildID, channelName string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.guilds[guildID][channelName]
	return id, ok
}

func (c *channelCache) Set(guildID, channelName, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	byName, ok := c.guilds[guildID]
	if !ok {
		byName = make(map[string]string)
		c.guilds[guildID] = byName
	}
	byName[channelName] = id
}

func (c *channelCache) Invalidate(guildID, channelName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.guilds[guildID], channelName)
}
