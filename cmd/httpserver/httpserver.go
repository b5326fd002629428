// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/ledger/internal/accountdelivery"
	"github.com/go-petr/ledger/internal/accountrepo"
	"github.com/go-petr/ledger/internal/accountservice"
	"github.com/go-petr/ledger/internal/balancedelivery"
	"github.com/go-petr/ledger/internal/balancerepo"
	"github.com/go-petr/ledger/internal/balanceservice"
	"github.com/go-petr/ledger/internal/journaldelivery"
	"github.com/go-petr/ledger/internal/journalrepo"
	"github.com/go-petr/ledger/internal/journalservice"
	"github.com/go-petr/ledger/internal/middleware"
	"github.com/go-petr/ledger/internal/sessiondelivery"
	"github.com/go-petr/ledger/internal/sessionrepo"
	"github.com/go-petr/ledger/internal/sessionservice"
	"github.com/go-petr/ledger/internal/transactiondelivery"
	"github.com/go-petr/ledger/internal/transactionrepo"
	"github.com/go-petr/ledger/internal/transactionservice"
	"github.com/go-petr/ledger/internal/userdelivery"
	"github.com/go-petr/ledger/internal/userrepo"
	"github.com/go-petr/ledger/internal/userservice"
	"github.com/go-petr/ledger/pkg/configpkg"
	"github.com/go-petr/ledger/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB         *sql.DB
	Engine     *gin.Engine
	Config     configpkg.Config
	TokenMaker tokenpkg.Maker
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	journalRepo := journalrepo.NewRepoPGS(conn)
	balanceRepo := balancerepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.New(config.TokenType, config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	userService := userservice.New(userRepo)
	accountService := accountservice.New(accountRepo)
	transactionService := transactionservice.New(transactionRepo)
	journalService := journalservice.New(journalRepo)
	balanceService := balanceservice.New(balanceRepo)

	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	userHandler := userdelivery.NewHandler(userService, sessionService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)
	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	journalHandler := journaldelivery.NewHandler(journalService)
	balanceHandler := balancedelivery.NewHandler(balanceService)

	lim, err := middleware.NewLimiter(config.RateLimit)
	if err != nil {
		return nil, errors.New("cannot create rate limiter")
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("accounttype", accountdelivery.ValidAccountType)
		if err != nil {
			return nil, errors.New("cannot register account type validator")
		}
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(config.CORSAllowedOrigins))
	engine.Use(middleware.RateLimit(lim))

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := engine.Group("/api").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts", accountHandler.List)
	authRoutes.GET("/accounts/:id", accountHandler.Get)
	authRoutes.PUT("/accounts/:id", accountHandler.Update)
	authRoutes.DELETE("/accounts/:id", accountHandler.Delete)

	authRoutes.POST("/transactions", transactionHandler.Create)
	authRoutes.GET("/transactions", transactionHandler.List)
	authRoutes.GET("/transactions/:id", transactionHandler.Get)
	authRoutes.DELETE("/transactions/:id", transactionHandler.Delete)

	authRoutes.GET("/journal", journalHandler.List)
	authRoutes.GET("/journal/:id", journalHandler.Get)

	authRoutes.GET("/export-balance", balanceHandler.Export)

	server := &Server{
		DB:         conn,
		Engine:     engine,
		Config:     config,
		TokenMaker: tokenMaker,
	}

	return server, nil
}
