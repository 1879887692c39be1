package linode

import (
	"context"
)

// MockClient is a mock implementation of Client for tests. Each method
// delegates to the corresponding Func field.
type MockClient struct {
	CreateInstanceFunc func(ctx context.Context, opts CreateOptions) (*Instance, error)
	GetInstanceFunc    func(ctx context.Context, id string) (*Instance, error)
	RebootInstanceFunc func(ctx context.Context, id string) error
	ListRegionsFunc    func(ctx context.Context) ([]Region, error)
	ListTypesFunc      func(ctx context.Context) ([]InstanceType, error)
	ListImagesFunc     func(ctx context.Context) ([]Image, error)
}

func (m *MockClient) CreateInstance(ctx context.Context, opts CreateOptions) (*Instance, error) {
	return m.CreateInstanceFunc(ctx, opts)
}

func (m *MockClient) GetInstance(ctx context.Context, id string) (*Instance, error) {
	return m.GetInstanceFunc(ctx, id)
}

func (m *MockClient) RebootInstance(ctx context.Context, id string) error {
	return m.RebootInstanceFunc(ctx, id)
}

func (m *MockClient) ListRegions(ctx context.Context) ([]Region, error) {
	return m.ListRegionsFunc(ctx)
}

func (m *MockClient) ListTypes(ctx context.Context) ([]InstanceType, error) {
	return m.ListTypesFunc(ctx)
}

func (m *MockClient) ListImages(ctx context.Context) ([]Image, error) {
	return m.ListImagesFunc(ctx)
}
