package main

import (
	"os"
	"strconv"
	"ustory/cmd/internal/domain/postgres"
	"ustory/cmd/internal/domain/postgres/repository"
	handler2 "ustory/cmd/internal/http/handler"
	authmw "ustory/cmd/internal/http/middleware"
	"ustory/cmd/internal/infrastructure/token"
	"ustory/cmd/internal/service"
	"ustory/cmd/internal/utils/uid"
	"ustory/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Loads from .env when present, real env vars otherwise
	if err := godotenv.Load(); err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	uid.Init(machineID())

	salt := os.Getenv("JWT_SALT")
	if salt == "" {
		panic("JWT_SALT is not set")
	}

	db, err := postgres.Init()
	if err != nil {
		panic(err)
	}

	// Gettings repos
	userRepo := repository.NewUserRepository(db)
	diaryRepo := repository.NewDiaryRepository(db)
	pageRepo := repository.NewPageRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)
	friendRepo := repository.NewFriendRepository(db)

	tokens := token.NewProvider(salt)

	// Getting services
	userService := service.NewUserService(userRepo, tokens, validate)
	diaryService := service.NewDiaryService(diaryRepo, userRepo, validate)
	pageService := service.NewPageService(pageRepo, diaryRepo, noticeRepo, validate)
	commentService := service.NewCommentService(commentRepo, pageRepo, noticeRepo, validate)
	noticeService := service.NewNoticeService(noticeRepo, userRepo, pageRepo, validate)
	friendService := service.NewFriendService(friendRepo, userRepo, noticeRepo)

	// Gettings handler
	userRoutes := handler2.NewUserDefault(userService)
	diaryRoutes := handler2.NewDiaryDefault(diaryService, pageService)
	pageRoutes := handler2.NewPageDefault(pageService)
	commentRoutes := handler2.NewCommentDefault(commentService)
	noticeRoutes := handler2.NewNoticeDefault(noticeService)
	friendRoutes := handler2.NewFriendDefault(friendService)

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("2M"))

	auth := authmw.NewAuthMiddleware(&authmw.AuthMiddlewareConfig{
		UserRepo: userRepo,
		Tokens:   tokens,
	})

	// Users
	e.POST("/api/users", userRoutes.SignUp)
	e.POST("/api/users/login", userRoutes.Login)
	e.POST("/api/users/check-email", userRoutes.CheckEmail)
	e.GET("/api/users/me", userRoutes.GetMe, auth)
	e.DELETE("/api/users/me", userRoutes.Withdraw, auth)
	e.GET("/api/users/:id", userRoutes.GetUser, auth)

	// Diaries
	diaries := e.Group("/api/diaries", auth)
	diaries.POST("", diaryRoutes.CreateDiary)
	diaries.GET("", diaryRoutes.SearchDiaries)
	diaries.GET("/:id", diaryRoutes.GetDiary)
	diaries.PUT("/:id", diaryRoutes.UpdateDiary)
	diaries.DELETE("/:id", diaryRoutes.DeleteDiary)
	diaries.GET("/:id/users", diaryRoutes.GetMembers)
	diaries.GET("/:id/pages", diaryRoutes.GetPages)

	// Pages
	pages := e.Group("/api/pages", auth)
	pages.POST("", pageRoutes.CreatePage)
	pages.GET("/:id", pageRoutes.GetPage)
	pages.PUT("/:id", pageRoutes.UpdatePage)
	pages.DELETE("/:id", pageRoutes.DeletePage)

	// Comments
	e.GET("/comment/paper/:paperId/comment/:commentId", commentRoutes.GetComment)
	e.GET("/comment/paper/:paperId", commentRoutes.GetComments, auth)
	e.POST("/comment", commentRoutes.CreateComment, auth)
	e.PUT("/comment/:commentId", commentRoutes.UpdateComment, auth)
	e.DELETE("/comment/:commentId", commentRoutes.DeleteComment, auth)

	// Notices
	notices := e.Group("/notice", auth)
	notices.GET("", noticeRoutes.GetNotices)
	notices.POST("", noticeRoutes.SendNotice)
	notices.DELETE("", noticeRoutes.DeleteAllNotices)
	notices.DELETE("/:noticeId", noticeRoutes.DeleteNotice)
	notices.POST("/selected", noticeRoutes.DeleteSelected)

	// Friends
	e.POST("/friend/:userId", friendRoutes.SendRequest, auth)
	e.POST("/friend/:userId/approve", friendRoutes.AcceptRequest, auth)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	if err := e.Start(":" + port()); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
}

func machineID() int64 {
	raw := os.Getenv("MACHINE_ID")
	if raw == "" {
		return 1
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Fatalf("invalid MACHINE_ID %q: %v", raw, err)
	}
	return id
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "7070"
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
