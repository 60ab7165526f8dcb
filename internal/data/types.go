package data

import "context"

// Site wide partition owner for items that are not scoped to a single account.
const GLOBAL_ACCOUNT = "Global"

type QueryParams struct {
	Limit     int    `json:"limit"`
	NextToken []byte `json:"nextToken"`
	// Inclusive bounds on the index sort key, only applied when both are set.
	RangeStart string `json:"-"`
	RangeEnd   string `json:"-"`
}

func (q *QueryParams) GetLimit() *int32 {
	limit := int32(q.Limit)
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return &limit
}

func (q *QueryParams) HasRange() bool {
	return q.RangeStart != "" && q.RangeEnd != ""
}

type QueryResults[T interface{}] struct {
	Items     []T    `json:"items"`
	NextToken []byte `json:"nextToken"`
}

type Repository[T interface{}, I interface{}] interface {
	List(ctx context.Context, accountId string, params QueryParams) (QueryResults[T], error)
	ListByIndex(ctx context.Context, hash string, indexName string, params QueryParams) (QueryResults[T], error)
	Get(ctx context.Context, accountId string, itemId string) (T, error)
	// BatchGet returns the items that exist among itemIds, in no set order.
	BatchGet(ctx context.Context, accountId string, itemIds []string) ([]T, error)
	Create(ctx context.Context, accountId string, input I) (T, error)
	CreateWithItemId(ctx context.Context, accountId string, input I, itemId string) (T, error)
	Update(ctx context.Context, accountId string, itemId string, input I) (T, error)
	Delete(ctx context.Context, accountId string, itemId string) error
}

// Drain keeps following next tokens until the repository runs dry.
func Drain[T interface{}](params QueryParams, page func(QueryParams) (QueryResults[T], error)) ([]T, error) {
	items := make([]T, 0)
	for {
		results, err := page(params)
		if err != nil {
			return nil, err
		}
		items = append(items, results.Items...)
		if len(results.NextToken) == 0 {
			return items, nil
		}
		params.NextToken = results.NextToken
	}
}
