package vector

import "context"

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getMultiFn func(ctx context.Context, keys []string) ([][]byte, error)
	hGetAllFn  func(ctx context.Context, key string) (map[string]string, error)
	scanFn     func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockStore) GetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if m.getMultiFn != nil {
		return m.getMultiFn(ctx, keys)
	}
	return make([][]byte, len(keys)), nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hGetAllFn != nil {
		return m.hGetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}
