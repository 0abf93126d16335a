package handlers

import (
	"github.com/SAP-F-2025/sat-practice-service/internal/services"
	"github.com/SAP-F-2025/sat-practice-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	questionHandler *QuestionHandler
	importHandler   *ImportHandler
	catalogHandler  *CatalogHandler
	health          gin.HandlerFunc
}

func NewHandlerManager(
	serviceManager *services.ServiceManager,
	db Pinger,
	dataFile string,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		questionHandler: NewQuestionHandler(serviceManager.Question, serviceManager.Export, logger),
		importHandler:   NewImportHandler(serviceManager.Import, dataFile, logger),
		catalogHandler:  NewCatalogHandler(serviceManager.Catalog, logger),
		health:          HealthCheck(db),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/health", hm.health)

		questions := api.Group("/questions")
		{
			questions.GET("", hm.questionHandler.ListQuestions)
			questions.GET("/filters", hm.questionHandler.GetFilters)
			questions.GET("/export", hm.questionHandler.ExportQuestions)
			questions.GET("/by-question-id/:questionId", hm.questionHandler.GetQuestionByQuestionID)
			questions.GET("/:id", hm.questionHandler.GetQuestion)
			questions.GET("/:id/rendered", hm.questionHandler.GetRenderedQuestion)
			questions.POST("/bulk-load", hm.importHandler.BulkLoad)
		}

		api.GET("/skills", hm.catalogHandler.GetSkills)
		api.GET("/modules", hm.catalogHandler.GetModules)
	}
}

// NewRouter builds the gin engine with the shared middleware stack
func NewRouter(hm *HandlerManager, logger utils.Logger, production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = 32 << 20
	router.Use(
		gin.Recovery(),
		utils.RequestID(),
		utils.ContextLogger(logger),
		utils.LoggerMiddleware(logger),
		CORSMiddleware(),
	)

	hm.SetupRoutes(router)
	return router
}

// CORSMiddleware allows the browser client to call the API from another origin
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+utils.RequestIDHeader)
		c.Header("Access-Control-Expose-Headers", "Content-Disposition, "+utils.RequestIDHeader)
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
