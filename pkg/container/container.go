package container

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"library-backend/internal/config"
	"library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"

	"library-backend/internal/domains/author"
	authorHandler "library-backend/internal/domains/author/handler"
	authorRepo "library-backend/internal/domains/author/repository"
	authorService "library-backend/internal/domains/author/service"

	"library-backend/internal/domains/book"
	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"

	"library-backend/internal/domains/contact"
	contactHandler "library-backend/internal/domains/contact/handler"
	contactRepo "library-backend/internal/domains/contact/repository"
	contactService "library-backend/internal/domains/contact/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup; nothing holds package-level state.
type Container struct {
	Config     *config.Config
	Mongo      *database.Mongo
	Redis      *redis.Client // nil when rate limiting is disabled
	JWTManager *jwt.Manager

	AuthorRepo  author.Repository
	BookRepo    book.Repository
	ContactRepo contact.Repository

	AuthorService  author.Service
	BookService    book.Service
	ContactService contact.Service

	AuthorHandler  *authorHandler.AuthorHandler
	BookHandler    *bookHandler.BookHandler
	ContactHandler *contactHandler.ContactHandler
}

// NewContainer initializes the dependency graph in order: config, then
// infrastructure, then repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	c.Config = cfg

	ctx := context.Background()

	mongoDB, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	c.Mongo = mongoDB

	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := mongoDB.EnsureIndexes(indexCtx); err != nil {
		return nil, err
	}

	if cfg.RateLimit.Enabled {
		rdb, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			// The limiter fails open anyway; running without it beats
			// refusing to start.
			logger.Warn("redis unavailable, rate limiting disabled", err)
		} else {
			c.Redis = rdb
		}
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	c.AuthorRepo = authorRepo.NewMongoRepository(mongoDB.DB)
	c.BookRepo = bookRepo.NewMongoRepository(mongoDB.DB)
	c.ContactRepo = contactRepo.NewMongoRepository(mongoDB.DB)

	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.BookService = bookService.NewBookService(c.BookRepo)
	c.ContactService = contactService.NewContactService(c.ContactRepo)

	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.ContactHandler = contactHandler.NewContactHandler(c.ContactService)

	return c, nil
}

// Cleanup releases infrastructure connections on shutdown.
func (c *Container) Cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("failed to close redis client", err)
		}
	}
	if c.Mongo != nil {
		if err := c.Mongo.Close(ctx); err != nil {
			logger.Error("failed to disconnect mongodb", err)
		}
	}
}
