package main

import (
	"fmt"
	"os"

	"github.com/reelcult/cultfilm-backend/moviedata"
	"github.com/reelcult/cultfilm-backend/utils"
	"github.com/reelcult/cultfilm-backend/utils/dotenv"
	Flag "github.com/reelcult/cultfilm-backend/utils/flag"
	Logger "github.com/reelcult/cultfilm-backend/utils/log"
)

// One-shot job that syncs the movie catalog from the upstream API. Run from
// cron or by hand after catalog updates; re-runs are idempotent.
func main() {
	Flag.ParseFlags()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	catalogUrl := os.Getenv("CATALOG_API_URL")
	if catalogUrl == "" {
		panic("CATALOG_API_URL is required")
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		panic(fmt.Sprintf("fail to connect to database: %s", err))
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		panic(fmt.Sprintf("fail to migrate database: %s", err))
	}

	importer := moviedata.Importer{
		DB:     db,
		Client: moviedata.NewCatalogClient(catalogUrl, os.Getenv("CATALOG_API_KEY")),
	}
	if err := importer.ImportAll(); err != nil {
		Logger.LogV2.Errorf("catalog import failed", err)
		os.Exit(1)
	}
}
