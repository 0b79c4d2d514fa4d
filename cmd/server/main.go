package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/reelcult/cultfilm-backend/server/handler"
	"github.com/reelcult/cultfilm-backend/server/middlewares"
	"github.com/reelcult/cultfilm-backend/utils"
	"github.com/reelcult/cultfilm-backend/utils/dotenv"
	Flag "github.com/reelcult/cultfilm-backend/utils/flag"
	Logger "github.com/reelcult/cultfilm-backend/utils/log"
)

func main() {
	Flag.ParseFlags()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		panic(fmt.Sprintf("fail to connect to database: %s", err))
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		panic(fmt.Sprintf("fail to migrate database: %s", err))
	}

	var sessions utils.SessionStore
	if *Flag.NoAuth {
		sessions = utils.NewFakeSessionStore()
	} else {
		sessions = utils.NewRedisSessionStore(os.Getenv("REDIS_ADDR"), os.Getenv("REDIS_PASS"))
	}
	middlewares.Setup(sessions)

	router := gin.Default()
	router.Use(cors.Default())

	// Add a debug route for testing and health check
	router.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusAccepted, "pong")
	})

	handler.New(db, sessions).RegisterRoutes(router)

	Logger.LogV2.Info(fmt.Sprint("===== Cultfilm Server Started ====="))
	router.Run(":8080")
}
