package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/config"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/store"
)

func memoryConfig() *config.Config {
	return &config.Config{
		App:   config.AppConfig{Name: "library-catalog-test", Environment: "test", Port: "0"},
		Store: config.StoreConfig{Driver: config.StoreDriverMemory},
	}
}

func TestNewContainer_MemoryDriver(t *testing.T) {
	c, err := NewContainer(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer c.Cleanup()

	assert.Nil(t, c.DB)
	assert.IsType(t, &store.Memory{}, c.Store)
	assert.NotNil(t, c.BookHandler)
	assert.NotNil(t, c.ReviewHandler)
	assert.NoError(t, c.HealthCheck(context.Background()))
}

func TestNewContainer_ServicesShareStore(t *testing.T) {
	c, err := NewContainer(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer c.Cleanup()

	ctx := context.Background()
	book, err := c.BookService.Create(ctx, model.BookRequest{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)

	reviews, err := c.ReviewService.GetByBookID(ctx, book.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	view, err := c.BookService.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Nil(t, view.AverageRating)
}
