package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/lumaclean/wfm-backend-go/internal/config"
	appHTTP "github.com/lumaclean/wfm-backend-go/internal/handler/http"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/cache"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/cron"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/database"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/jwt"
	fsRepo "github.com/lumaclean/wfm-backend-go/internal/repository/firestore"
	aggregateService "github.com/lumaclean/wfm-backend-go/internal/service/aggregate"
	serviceAuth "github.com/lumaclean/wfm-backend-go/internal/service/auth"
	billingService "github.com/lumaclean/wfm-backend-go/internal/service/billing"
	catalogService "github.com/lumaclean/wfm-backend-go/internal/service/catalog"
	employeeService "github.com/lumaclean/wfm-backend-go/internal/service/employee"
	exportService "github.com/lumaclean/wfm-backend-go/internal/service/export"
	ratingService "github.com/lumaclean/wfm-backend-go/internal/service/rating"
	ticketService "github.com/lumaclean/wfm-backend-go/internal/service/ticket"
	timesheetService "github.com/lumaclean/wfm-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()
	db, err := database.NewFirestoreDB(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
	if err != nil {
		fmt.Println("Error connecting to Firestore:", err)
		return
	}
	defer db.Close()

	worksiteRepo := fsRepo.NewWorksiteRepository(db)
	employeeRepo := fsRepo.NewEmployeeRepository(db, cfg.Roster.DefaultHourlyCost)
	timesheetRepo := fsRepo.NewTimesheetRepository(db)
	ticketRepo := fsRepo.NewTicketRepository(db)
	productRepo := fsRepo.NewProductRepository(db)

	reportStore, err := cache.NewSQLiteStore(cfg.Reports.CachePath)
	if err != nil {
		log.Fatal("Failed to open annual report cache:", err)
	}
	defer reportStore.Close()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	catalogSvc := catalogService.NewCatalogService(worksiteRepo, cfg.Roster.CacheTTL, time.Now)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, cfg.Roster.DefaultHourlyCost, cfg.App.CompanyName, cfg.Roster.CacheTTL, time.Now)
	timesheetSvc := timesheetService.NewTimesheetService(timesheetRepo)
	authSvc := serviceAuth.NewAuthService(employeeSvc, JWTService, cfg.Roster.AdminUsers)
	aggregator := aggregateService.NewAggregateService(
		employeeSvc,
		timesheetRepo,
		cfg.Aggregation.BatchSize,
		cfg.Aggregation.BatchDelay,
		aggregateService.DefaultSleeper,
	)
	billingSvc := billingService.NewBillingService(
		catalogSvc,
		employeeSvc,
		aggregator,
		reportStore,
		cfg.Reports.StaleAfter,
		time.Now,
	)
	exportSvc := exportService.NewExportService(billingSvc)
	ticketSvc := ticketService.NewTicketService(ticketRepo, time.Now)
	ratingSvc := ratingService.NewRatingService(productRepo, time.Now)

	scheduler := cron.NewScheduler()
	cron.NewReportCacheJobs(billingSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(authSvc)
	catalogHandler := appHTTP.NewCatalogHandler(catalogSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	reportHandler := appHTTP.NewReportHandler(billingSvc, exportSvc)
	ticketHandler := appHTTP.NewTicketHandler(ticketSvc)
	ratingHandler := appHTTP.NewRatingHandler(ratingSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppEnv:         cfg.App.Env,
			FrontendOrigin: cfg.App.FrontendOrigin,
		},
		JWTService,
		authHandler,
		catalogHandler,
		employeeHandler,
		timesheetHandler,
		reportHandler,
		ticketHandler,
		ratingHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
