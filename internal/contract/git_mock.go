package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is an autogenerated mock type for the GitClient type.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the contract.GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	var mockArgs []any
	mockArgs = append(mockArgs, ctx, repoPath)
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetYearLog implements the contract.GitClient interface.
func (m *MockGitClient) GetYearLog(ctx context.Context, repoPath string, authorEmail string, year int) ([]byte, error) {
	ret := m.Called(ctx, repoPath, authorEmail, year)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetYearFileLog implements the contract.GitClient interface.
func (m *MockGitClient) GetYearFileLog(ctx context.Context, repoPath string, authorEmail string, year int) ([]byte, error) {
	ret := m.Called(ctx, repoPath, authorEmail, year)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetConfigValue implements the contract.GitClient interface.
func (m *MockGitClient) GetConfigValue(ctx context.Context, key string) (string, error) {
	ret := m.Called(ctx, key)
	value, _ := ret.Get(0).(string)
	return value, ret.Error(1)
}

// GetRepoHash implements the contract.GitClient interface.
func (m *MockGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	hash, _ := ret.Get(0).(string)
	return hash, ret.Error(1)
}
