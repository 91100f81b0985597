// Package cache provides a small fixed-capacity LRU used to memoize rendered
// markdown previews.
package cache

import (
	"container/list"
)

type LRU struct {
	capacity  int
	evictList *list.List
	items     map[string]*list.Element
}

type entry struct {
	key   string
	value string
}

func New(capacity int) *LRU {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU{
		capacity:  capacity,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}
}

func (c *LRU) Get(key string) (string, bool) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		return ele.Value.(*entry).value, true
	}
	return "", false
}

func (c *LRU) Put(key, value string) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		ele.Value.(*entry).value = value
		return
	}

	ele := c.evictList.PushFront(&entry{key, value})
	c.items[key] = ele

	if c.evictList.Len() > c.capacity {
		c.removeOldest()
	}
}

func (c *LRU) Len() int {
	return c.evictList.Len()
}

func (c *LRU) removeOldest() {
	ele := c.evictList.Back()
	if ele != nil {
		c.evictList.Remove(ele)
		delete(c.items, ele.Value.(*entry).key)
	}
}
