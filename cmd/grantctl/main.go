package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"folio/internal/catalog"
	"folio/internal/config"
	"folio/internal/db"
	"folio/internal/services"
	"folio/internal/utils/logger"

	"github.com/joho/godotenv"
)

// grantctl issues resource grants directly against the database, for
// operators working outside the HTTP API.
func main() {
	log := logger.New("grantctl")

	accessKey := flag.String("key", "", "access key of the grantee (AIR-XXXXXXXX)")
	resourceID := flag.String("resource", "", "resource id to grant, or * for all")
	flag.Parse()

	if *accessKey == "" || *resourceID == "" {
		flag.Usage()
		os.Exit(2)
	}

	if !catalog.KnownResource(*resourceID) {
		log.Error("Unknown resource id", fmt.Errorf("%q is not in the catalog", *resourceID))
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration", err)
		os.Exit(1)
	}

	if err := db.Connect(cfg); err != nil {
		log.Error("Failed to connect to database", err)
		os.Exit(1)
	}
	defer db.Close()

	store := services.NewGormProfileStore(db.GetDB())
	grants := services.NewGrantService(store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	label, err := grants.Issue(ctx, *accessKey, *resourceID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccessKeyNotFound):
			log.Error("Access key not found", err)
		case errors.Is(err, services.ErrGrantConflict):
			log.Error("Grant conflicted with a concurrent change, retry", err)
		default:
			log.Error("Failed to issue grant", err)
		}
		os.Exit(1)
	}

	log.Success("Access to %s granted to %s", *resourceID, label)
}
