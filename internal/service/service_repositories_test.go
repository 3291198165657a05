package service

import (
	"context"
	"testing"

	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/mock"
	"github.com/kianlavi/onlyfan/internal/store"
	"github.com/kianlavi/onlyfan/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRepositoryService_EnsureRepositories(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := mock.NewMockRepositoryRegistry(ctrl)
	svc := NewRepositoryService(registry, logger.Nop())

	gomock.InOrder(
		registry.EXPECT().EnsureRepository(gomock.Any(), models.Repository{FullName: "org/site", Name: "site", Private: false}),
		registry.EXPECT().EnsureRepository(gomock.Any(), models.Repository{FullName: "org/secret", Name: "secret", Private: true}),
		registry.EXPECT().EnsureRepository(gomock.Any(), models.Repository{FullName: "org/docs", Name: "docs", Private: false}),
	)

	err := svc.EnsureRepositories(context.Background(), []string{"org/site", "org/secret"}, []string{"org/site", "org/docs"})
	require.NoError(t, err)
}

func TestRepositoryService_EnsureRepositoriesInvalidName(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewRepositoryService(mock.NewMockRepositoryRegistry(ctrl), logger.Nop())

	for _, name := range []string{"", "org", "org/", "/repo"} {
		err := svc.EnsureRepositories(context.Background(), []string{name}, nil)
		assert.ErrorIs(t, err, ErrValidation, "name %q", name)
	}
}

func TestRepositoryService_GetRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := mock.NewMockRepositoryRegistry(ctrl)
	svc := NewRepositoryService(registry, logger.Nop())

	registry.EXPECT().GetRepository(gomock.Any(), "org/site").Return(models.Repository{FullName: "org/site"}, nil)
	registry.EXPECT().GetRepository(gomock.Any(), "org/none").Return(models.Repository{}, store.ErrRepositoryNotFound)

	repo, err := svc.GetRepository(context.Background(), "org/site")
	require.NoError(t, err)
	assert.Equal(t, "org/site", repo.FullName)

	_, err = svc.GetRepository(context.Background(), "org/none")
	assert.ErrorIs(t, err, ErrRepositoryNotFound)
}
