package test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"mealmaster.app/planner/internal/data"
	"mealmaster.app/planner/internal/exceptions"
)

// MemoryRepository is an in-process stand-in for the DynamoDB repositories,
// used by service tests that should not need DynamoDB Local.
type MemoryRepository[T interface{}, I interface{}] struct {
	Name     string
	OnCreate func(input I, createTime time.Time, pk string, sk string) T
	OnUpdate func(item T, input I) T
	// IndexOf returns the secondary index hash and sort values of an item.
	IndexOf func(item T) (string, string)

	mutex sync.Mutex
	items map[string]map[string]T
}

func (mr *MemoryRepository[T, I]) _partition(accountId string) map[string]T {
	if mr.items == nil {
		mr.items = make(map[string]map[string]T)
	}
	pk := fmt.Sprintf("%s:%s", accountId, mr.Name)
	partition, ok := mr.items[pk]
	if !ok {
		partition = make(map[string]T)
		mr.items[pk] = partition
	}
	return partition
}

func (mr *MemoryRepository[T, I]) List(ctx context.Context, accountId string, params data.QueryParams) (data.QueryResults[T], error) {
	mr.mutex.Lock()
	defer mr.mutex.Unlock()
	partition := mr._partition(accountId)
	keys := maps.Keys(partition)
	slices.Sort(keys)
	items := make([]T, 0, len(keys))
	for _, key := range keys {
		items = append(items, partition[key])
	}
	return data.QueryResults[T]{Items: items}, nil
}

func (mr *MemoryRepository[T, I]) ListByIndex(ctx context.Context, hash string, indexName string, params data.QueryParams) (data.QueryResults[T], error) {
	mr.mutex.Lock()
	defer mr.mutex.Unlock()
	type sorted struct {
		key  string
		item T
	}
	var found []sorted
	for _, partition := range mr.items {
		for sk, item := range partition {
			indexHash, indexSort := mr.IndexOf(item)
			if indexHash != hash {
				continue
			}
			if params.HasRange() && (indexSort < params.RangeStart || indexSort > params.RangeEnd) {
				continue
			}
			found = append(found, sorted{key: indexSort + "#" + sk, item: item})
		}
	}
	slices.SortFunc(found, func(a, b sorted) int {
		return strings.Compare(a.key, b.key)
	})
	items := make([]T, len(found))
	for i, f := range found {
		items[i] = f.item
	}
	return data.QueryResults[T]{Items: items}, nil
}

func (mr *MemoryRepository[T, I]) Get(ctx context.Context, accountId string, itemId string) (T, error) {
	mr.mutex.Lock()
	defer mr.mutex.Unlock()
	item, ok := mr._partition(accountId)[itemId]
	if !ok {
		return item, exceptions.NotFound(strings.ToLower(mr.Name), itemId)
	}
	return item, nil
}

func (mr *MemoryRepository[T, I]) BatchGet(ctx context.Context, accountId string, itemIds []string) ([]T, error) {
	mr.mutex.Lock()
	defer mr.mutex.Unlock()
	partition := mr._partition(accountId)
	items := make([]T, 0, len(itemIds))
	seen := make(map[string]bool, len(itemIds))
	for _, itemId := range itemIds {
		if item, ok := partition[itemId]; ok && !seen[itemId] {
			seen[itemId] = true
			items = append(items, item)
		}
	}
	return items, nil
}

func (mr *MemoryRepository[T, I]) Create(ctx context.Context, accountId string, input I) (T, error) {
	return mr.CreateWithItemId(ctx, accountId, input, uuid.NewString())
}

func (mr *MemoryRepository[T, I]) CreateWithItemId(ctx context.Context, accountId string, input I, itemId string) (T, error) {
	mr.mutex.Lock()
	defer mr.mutex.Unlock()
	partition := mr._partition(accountId)
	if existing, ok := partition[itemId]; ok {
		return existing, exceptions.Conflict(strings.ToLower(mr.Name), itemId)
	}
	item := mr.OnCreate(input, time.Now(), fmt.Sprintf("%s:%s", accountId, mr.Name), itemId)
	partition[itemId] = item
	return item, nil
}

func (mr *MemoryRepository[T, I]) Update(ctx context.Context, accountId string, itemId string, input I) (T, error) {
	mr.mutex.Lock()
	defer mr.mutex.Unlock()
	partition := mr._partition(accountId)
	item, ok := partition[itemId]
	if !ok {
		return item, exceptions.NotFound(strings.ToLower(mr.Name), itemId)
	}
	item = mr.OnUpdate(item, input)
	partition[itemId] = item
	return item, nil
}

func (mr *MemoryRepository[T, I]) Delete(ctx context.Context, accountId string, itemId string) error {
	mr.mutex.Lock()
	defer mr.mutex.Unlock()
	delete(mr._partition(accountId), itemId)
	return nil
}

// Take removes an item and returns it, or a NotFoundError if it is gone.
func (mr *MemoryRepository[T, I]) Take(ctx context.Context, accountId string, itemId string) (T, error) {
	mr.mutex.Lock()
	defer mr.mutex.Unlock()
	partition := mr._partition(accountId)
	item, ok := partition[itemId]
	if !ok {
		return item, exceptions.NotFound(strings.ToLower(mr.Name), itemId)
	}
	delete(partition, itemId)
	return item, nil
}

// Len counts the items stored for an account.
func (mr *MemoryRepository[T, I]) Len(accountId string) int {
	mr.mutex.Lock()
	defer mr.mutex.Unlock()
	return len(mr._partition(accountId))
}
