package main

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"wishlyBack/internal/handlers"
	"wishlyBack/internal/notify"
	"wishlyBack/internal/repositories"
	"wishlyBack/internal/services"
	"wishlyBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB
	tokens   *utils.Manager
	hub      *ListHub

	userHandler     *handlers.UserHandler
	wishlistHandler *handlers.WishlistHandler
	itemHandler     *handlers.ItemHandler
	commentHandler  *handlers.CommentHandler
	scraperHandler  *handlers.ScraperHandler
	templateHandler *handlers.TemplateHandler
}

func initializeApp(db *sql.DB, notifier notify.Notifier, tokens *utils.Manager, errorLog, infoLog *log.Logger) *application {
	// Repositories
	userRepo := &repositories.UserRepository{DB: db}
	wishlistRepo := &repositories.WishlistRepository{DB: db}
	itemRepo := &repositories.ItemRepository{DB: db}
	reservationRepo := &repositories.ReservationRepository{DB: db}
	contributionRepo := &repositories.ContributionRepository{DB: db}
	commentRepo := &repositories.CommentRepository{DB: db}

	// Services
	userService := &services.UserService{UserRepo: userRepo, Tokens: tokens}
	wishlistService := &services.WishlistService{
		WishlistRepo: wishlistRepo,
		ItemRepo:     itemRepo,
		CommentRepo:  commentRepo,
		Notifier:     notifier,
	}
	itemService := &services.ItemService{
		ItemRepo:     itemRepo,
		WishlistRepo: wishlistRepo,
		Notifier:     notifier,
	}
	reservationService := &services.ReservationService{
		ReservationRepo: reservationRepo,
		ItemRepo:        itemRepo,
		WishlistRepo:    wishlistRepo,
		Notifier:        notifier,
	}
	contributionService := &services.ContributionService{
		ContributionRepo: contributionRepo,
		ItemRepo:         itemRepo,
		WishlistRepo:     wishlistRepo,
		Notifier:         notifier,
	}
	commentService := &services.CommentService{
		CommentRepo:  commentRepo,
		ItemRepo:     itemRepo,
		WishlistRepo: wishlistRepo,
		Notifier:     notifier,
	}
	scraperService := services.NewScraperService()
	templateService := &services.TemplateService{}

	return &application{
		errorLog: errorLog,
		infoLog:  infoLog,
		db:       db,
		tokens:   tokens,
		userHandler: &handlers.UserHandler{Service: userService},
		wishlistHandler: &handlers.WishlistHandler{Service: wishlistService},
		itemHandler: &handlers.ItemHandler{
			Items:         itemService,
			Reservations:  reservationService,
			Contributions: contributionService,
		},
		commentHandler:  &handlers.CommentHandler{Service: commentService},
		scraperHandler:  &handlers.ScraperHandler{Service: scraperService},
		templateHandler: &handlers.TemplateHandler{Service: templateService},
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func runMigrations(db *sql.DB, path string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+path, "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}

// stdLogger adapts the log.Logger pair to the notify.Logger interface.
type stdLogger struct {
	info *log.Logger
	err  *log.Logger
}

func (l stdLogger) Infof(format string, args ...interface{}) {
	l.info.Printf(format, args...)
}

func (l stdLogger) Errorf(format string, args ...interface{}) {
	l.err.Printf(format, args...)
}
