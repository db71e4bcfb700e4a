package api

import (
	"github.com/gin-gonic/gin"

	"github.com/stylesync/stylesync/internal/api/handler"
	"github.com/stylesync/stylesync/internal/api/middleware"
	"github.com/stylesync/stylesync/internal/repository"
	"github.com/stylesync/stylesync/internal/service"
	"github.com/stylesync/stylesync/internal/storage"
)

// RouterDeps bundles everything the router wires into handlers.
type RouterDeps struct {
	LookService   *service.LookService
	TrendsService *service.TrendsService
	ProfileRepo   *repository.ProfileRepository
	FavoriteRepo  *repository.FavoriteRepository
	Store         storage.ObjectStorage
	CORS          middleware.CORSConfig
}

// SetupRouter configures the Gin router with all routes.
// Parameters:
//   - deps: services and repositories the handlers need.
//   - mode: Gin mode, "release", "test" or debug by default.
// Returns:
//   - *gin.Engine: configured router.
func SetupRouter(deps RouterDeps, mode string) *gin.Engine {
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORS(deps.CORS))

	healthHandler := handler.NewHealthHandler()
	lookHandler := handler.NewLookHandler(deps.LookService, deps.ProfileRepo)
	imageHandler := handler.NewLookImageHandler(deps.Store)
	trendsHandler := handler.NewTrendsHandler(deps.TrendsService, deps.ProfileRepo)
	profileHandler := handler.NewProfileHandler(deps.ProfileRepo)
	favoriteHandler := handler.NewFavoriteHandler(deps.FavoriteRepo)

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	{
		// Look generation
		v1.POST("/looks", lookHandler.GenerateLook)
		v1.POST("/looks/batch", lookHandler.GenerateLooks)
		v1.GET("/looks/:id/image", imageHandler.GetImage)
		v1.DELETE("/looks/:id/image", imageHandler.DeleteImage)

		// Trends
		v1.GET("/trends", trendsHandler.GetTrends)

		// Profile
		v1.GET("/profile", profileHandler.GetProfile)
		v1.PUT("/profile", profileHandler.PutProfile)

		// Favorites
		v1.GET("/favorites", favoriteHandler.ListFavorites)
		v1.GET("/favorites/tags", favoriteHandler.ListTags)
		v1.POST("/favorites/toggle", favoriteHandler.ToggleFavorite)
		v1.PATCH("/favorites/:id/note", favoriteHandler.UpdateNote)
		v1.DELETE("/favorites/:id", favoriteHandler.DeleteFavorite)
	}

	return r
}
