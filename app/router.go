// Package app wires the HTTP surface: middleware, routes and the
// request logger
package app

import (
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"revas/exchange-api/app/auth"
	"revas/exchange-api/app/location"
	"revas/exchange-api/app/product"
	"revas/exchange-api/app/profile"
	"revas/exchange-api/app/root"
	"revas/exchange-api/app/waitlist"
	"revas/exchange-api/internal"
	"revas/exchange-api/pkg/middleware"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

func NewRouter(d *internal.Deps) *gin.Engine {
	makeLogger()

	store := persist.NewMemoryStore(time.Minute)
	cacheFor := func(sec int) gin.HandlerFunc {
		return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
	}

	origins := viper.GetStringSlice("host.cors")
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	authRequired := middleware.NewAuthMiddleware(d.DB, d.Tokens)
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: viper.GetInt("security.rate_limit"),
	})

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/check		-> Health check with a JSON body
		m.GET("/check", root.Check)
	}

	a := m.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/signup	-> Creates an unverified user and mails a code
		a.POST("/signup", func(c *gin.Context) { auth.Signup(c, d) })

		// POST /api/auth/verify-email	-> Consumes a verification code
		a.POST("/verify-email", func(c *gin.Context) { auth.VerifyEmail(c, d) })

		// POST /api/auth/resend-token	-> Replaces the code and resends the mail
		a.POST("/resend-token", func(c *gin.Context) { auth.ResendCode(c, d) })

		// POST /api/auth/login		-> Issues the token pair as cookies
		a.POST("/login", func(c *gin.Context) { auth.Login(c, d) })

		// GET /api/auth/refresh-token	-> Rotates the access token
		a.GET("/refresh-token", func(c *gin.Context) { auth.RefreshToken(c, d) })

		// GET /api/auth/logout		-> Clears the token cookies
		a.GET("/logout", auth.Logout)
	}

	p := m.Group("/profile", authRequired)
	{
		// POST /api/profile/create-profile	-> Creates the caller's profile
		p.POST("/create-profile", func(c *gin.Context) { profile.Create(c, d) })

		// GET /api/profile/get-profile		-> Returns the caller's profile
		p.GET("/get-profile", func(c *gin.Context) { profile.Fetch(c, d) })

		// PATCH /api/profile/edit-profile	-> Partially updates the caller's profile
		p.PATCH("/edit-profile", func(c *gin.Context) { profile.Edit(c, d) })

		// DELETE /api/profile/delete-profile	-> Deletes the caller's profile
		p.DELETE("/delete-profile", func(c *gin.Context) { profile.Delete(c, d) })
	}

	pr := m.Group("/products")
	{
		// GET /api/products/product?product_id= -> Returns a single listing
		pr.GET("/product", func(c *gin.Context) { product.Fetch(c, d) })

		// GET /api/products/all-product	-> Returns every listing
		pr.GET("/all-product", cacheFor(30), func(c *gin.Context) { product.ListAll(c, d) })

		// GET /api/products/catalog		-> Returns the known product names
		pr.GET("/catalog", cacheFor(5*60), func(c *gin.Context) { product.Catalog(c, d) })

		// POST /api/products/product		-> Creates a listing
		pr.POST("/product", authRequired, func(c *gin.Context) { product.Create(c, d) })

		// PATCH /api/products/product?product_id= -> Updates an owned listing
		pr.PATCH("/product", authRequired, func(c *gin.Context) { product.Edit(c, d) })

		// DELETE /api/products/product?product_id= -> Deletes an owned listing
		pr.DELETE("/product", authRequired, func(c *gin.Context) { product.Delete(c, d) })
	}

	w := m.Group("/waitlist", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/waitlist		-> Adds an email to the waitlist
		w.POST("", func(c *gin.Context) { waitlist.Create(c, d) })
	}

	l := m.Group("/location")
	{
		// GET /api/location/countries	-> Lists all countries
		l.GET("/countries", cacheFor(10*60), func(c *gin.Context) { location.Countries(c, d) })

		// GET /api/location/states?country_id= -> Lists the states of a country
		l.GET("/states", cacheFor(10*60), func(c *gin.Context) { location.States(c, d) })
	}

	return router
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(logLevel())
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func logLevel() zapcore.Level {
	switch viper.GetString("app.log_level") {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
