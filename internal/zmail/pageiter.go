package zmail

// PageIterator walks a start/limit paginated endpoint until a short page
// signals the end of results.
type PageIterator[T any] struct {
	fetch    func(start, limit int) ([]T, error)
	pageSize int
}

// NewPageIterator creates an iterator over a paginated fetch function
func NewPageIterator[T any](fetch func(start, limit int) ([]T, error), pageSize int) *PageIterator[T] {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &PageIterator[T]{fetch: fetch, pageSize: pageSize}
}

// FetchAll accumulates every page into one slice
func (it *PageIterator[T]) FetchAll() ([]T, error) {
	var all []T
	start := 1
	for {
		page, err := it.fetch(start, it.pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < it.pageSize {
			return all, nil
		}
		start += it.pageSize
	}
}

// Each invokes fn for every item, stopping early if fn returns false
func (it *PageIterator[T]) Each(fn func(item T) bool) error {
	start := 1
	for {
		page, err := it.fetch(start, it.pageSize)
		if err != nil {
			return err
		}
		for _, item := range page {
			if !fn(item) {
				return nil
			}
		}
		if len(page) < it.pageSize {
			return nil
		}
		start += it.pageSize
	}
}
