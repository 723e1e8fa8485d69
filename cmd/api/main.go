package main

import (
	"fmt"
	"net/http"

	"github.com/clockwork-hr/timeclock-backend-go/internal/config"
	appHTTP "github.com/clockwork-hr/timeclock-backend-go/internal/handler/http"
	"github.com/clockwork-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/clockwork-hr/timeclock-backend-go/internal/pkg/jwt"
	"github.com/clockwork-hr/timeclock-backend-go/internal/repository/postgresql"
	timeclockService "github.com/clockwork-hr/timeclock-backend-go/internal/service/timeclock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	dayRepo := postgresql.NewDayRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	timeclockSvc := timeclockService.NewTimeclockService(dayRepo, employeeRepo)

	timeclockHandler := appHTTP.NewTimeclockHandler(timeclockSvc)

	router := appHTTP.NewRouter(
		JWTService,
		timeclockHandler,
		cfg.App.AllowedOrigins,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
