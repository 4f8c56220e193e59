package container

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"newsroom-backend/internal/config"
	infraCache "newsroom-backend/internal/infrastructure/cache"
	"newsroom-backend/internal/infrastructure/database"
	"newsroom-backend/internal/infrastructure/queue"
	"newsroom-backend/internal/infrastructure/storage"
	"newsroom-backend/pkg/cache"
	"newsroom-backend/pkg/jwt"
	"newsroom-backend/pkg/metrics"

	article "newsroom-backend/internal/domains/article"
	articleHandler "newsroom-backend/internal/domains/article/handler"
	articleRepo "newsroom-backend/internal/domains/article/repository"
	articleService "newsroom-backend/internal/domains/article/service"
	category "newsroom-backend/internal/domains/category"
	categoryHandler "newsroom-backend/internal/domains/category/handler"
	categoryRepo "newsroom-backend/internal/domains/category/repository"
	categoryService "newsroom-backend/internal/domains/category/service"
	comment "newsroom-backend/internal/domains/comment"
	commentHandler "newsroom-backend/internal/domains/comment/handler"
	commentRepo "newsroom-backend/internal/domains/comment/repository"
	commentService "newsroom-backend/internal/domains/comment/service"
	media "newsroom-backend/internal/domains/media"
	mediaHandler "newsroom-backend/internal/domains/media/handler"
	mediaRepo "newsroom-backend/internal/domains/media/repository"
	mediaService "newsroom-backend/internal/domains/media/service"
	tag "newsroom-backend/internal/domains/tag"
	tagHandler "newsroom-backend/internal/domains/tag/handler"
	tagRepo "newsroom-backend/internal/domains/tag/repository"
	tagService "newsroom-backend/internal/domains/tag/service"
	user "newsroom-backend/internal/domains/user"
	userHandler "newsroom-backend/internal/domains/user/handler"
	userRepo "newsroom-backend/internal/domains/user/repository"
	userService "newsroom-backend/internal/domains/user/service"
)

// Container là root của dependency graph.
// Thứ tự build: config → infrastructure → repositories → services → handlers.
type Container struct {
	// Infrastructure - singleton, shared cho mọi domain
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    storage.ObjectStorage
	Queue      *queue.Client
	JWTManager *jwt.Manager
	Metrics    *metrics.Collector

	// Repositories
	UserRepo     user.Repository
	ArticleRepo  article.Repository
	CategoryRepo category.Repository
	TagRepo      tag.Repository
	CommentRepo  comment.Repository
	MediaRepo    media.Repository

	// Services
	UserService     user.Service
	ArticleService  article.Service
	CategoryService category.Service
	TagService      tag.Service
	CommentService  comment.Service
	MediaService    media.Service

	// Handlers
	UserHandler     *userHandler.UserHandler
	ArticleHandler  *articleHandler.ArticleHandler
	CategoryHandler *categoryHandler.CategoryHandler
	TagHandler      *tagHandler.TagHandler
	CommentHandler  *commentHandler.CommentHandler
	MediaHandler    *mediaHandler.MediaHandler
}

// NewContainer build toàn bộ dependency graph.
// Fail fast: infrastructure nào connect không được là dừng startup
// (trừ Redis - cache down vẫn serve được, chỉ chậm hơn).
func NewContainer() (*Container, error) {
	log.Info().Msg("🔧 Initializing container...")

	c := &Container{}

	// Config trước tiên - không phụ thuộc gì
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("env", cfg.App.Environment).Msg("📋 Config loaded")

	// PostgreSQL với retry + backoff, rồi chạy migrations
	db := database.NewPostgresDB(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.URL()); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	c.DB = db
	log.Info().Msg("🗄️ Database connected, migrations applied")

	// Redis - failure non-critical, cache layer degrade về DB reads
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(context.Background()); err != nil {
		log.Warn().Err(err).Msg("⚠️ Redis connection failed (non-critical)")
	} else {
		log.Info().Msg("🔴 Redis connected")
	}
	c.Cache = redisCache

	// MinIO - media upload không hoạt động thiếu storage
	objectStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = objectStorage
	log.Info().Str("bucket", cfg.MinIO.Bucket).Msg("📁 Object storage ready")

	// Asynq client cho background tasks
	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	c.JWTManager = jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	c.Metrics = metrics.NewCollector()

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("🎉 Container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache)
	c.ArticleRepo = articleRepo.NewPostgresRepository(pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.TagRepo = tagRepo.NewPostgresRepository(pool)
	c.CommentRepo = commentRepo.NewPostgresRepository(pool)
	c.MediaRepo = mediaRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.MediaRepo, // MediaKeyLister: gom storage keys trước khi hard delete
		c.Queue,
		c.JWTManager,
	)
	c.ArticleService = articleService.NewArticleService(c.ArticleRepo)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.Cache)
	c.TagService = tagService.NewTagService(c.TagRepo)
	c.CommentService = commentService.NewCommentService(
		c.CommentRepo,
		articleChecker{c.ArticleRepo},
	)
	c.MediaService = mediaService.NewMediaService(
		c.MediaRepo,
		c.Storage,
		mediaService.UploadLimits{
			MaxSizeBytes: c.Config.Upload.MaxSizeBytes,
			Allowed:      c.Config.Upload.Allowed,
		},
		c.Metrics,
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.ArticleHandler = articleHandler.NewArticleHandler(c.ArticleService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.TagHandler = tagHandler.NewTagHandler(c.TagService)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)
	c.MediaHandler = mediaHandler.NewMediaHandler(c.MediaService, c.Config.Upload.MaxSizeBytes)
}

// articleChecker adapt article.Repository vào comment.ArticleChecker
type articleChecker struct {
	repo article.Repository
}

func (a articleChecker) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return a.repo.Exists(ctx, id)
}

// Cleanup đóng mọi resource theo thứ tự ngược với khởi tạo
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container...")

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close queue client")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok && rc != nil {
		if err := rc.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("✅ Cleanup complete")
}
